package midi

import "testing"

func TestIsValidDeltaTime(t *testing.T) {
	if !IsValidDeltaTime(0) {
		t.Errorf("0 should be a valid delta-time")
	}
	if !IsValidDeltaTime(MaxVLQValue) {
		t.Errorf("MaxVLQValue should be a valid delta-time")
	}
	if IsValidDeltaTime(-1) {
		t.Errorf("-1 should not be a valid delta-time")
	}
	if IsValidDeltaTime(MaxVLQValue + 1) {
		t.Errorf("MaxVLQValue+1 should not be a valid delta-time")
	}
}

func TestClampDeltaTime(t *testing.T) {
	if got := ClampDeltaTime(-5); got != 0 {
		t.Errorf("ClampDeltaTime(-5) = %d, want 0", got)
	}
	if got := ClampDeltaTime(MaxVLQValue + 100); got != MaxVLQValue {
		t.Errorf("ClampDeltaTime(MaxVLQValue+100) = %d, want %d", got, MaxVLQValue)
	}
	if got := ClampDeltaTime(120); got != 120 {
		t.Errorf("ClampDeltaTime(120) = %d, want 120", got)
	}
}

func TestEncodeDeltaTime(t *testing.T) {
	got := EncodeDeltaTime(nil, 128)
	if !bytesEqual(got, []byte{0x81, 0x00}) {
		t.Errorf("EncodeDeltaTime(128) = % x, want 81 00", got)
	}
	if n := DeltaTimeFieldSize(128); n != 2 {
		t.Errorf("DeltaTimeFieldSize(128) = %d, want 2", n)
	}
}
