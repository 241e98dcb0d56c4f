package midi

import "testing"

func parseOneEvent(t *testing.T, data []byte) Event {
	t.Helper()
	_, ev, err := ParseEvent(data, 0)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	return ev
}

func TestSequenceNumber(t *testing.T) {
	ev := parseOneEvent(t, []byte{0x00, 0xff, 0x00, 0x02, 0x01, 0x02})
	n, err := ev.SequenceNumber()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n != 0x0102 {
		t.Errorf("SequenceNumber() = %d, want 0x0102", n)
	}
	if _, err := ev.Tempo(); err == nil {
		t.Errorf("Tempo() on a sequence-number event should fail")
	}
}

func TestTextEvent(t *testing.T) {
	payload := []byte("track one")
	data := []byte{0x00, 0xff, TextEventTrackName, byte(len(payload))}
	data = append(data, payload...)
	ev := parseOneEvent(t, data)
	subtype, text, err := ev.TextEvent()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if subtype != TextEventTrackName || string(text) != "track one" {
		t.Errorf("TextEvent() = %d %q, want %d %q", subtype, text, TextEventTrackName, "track one")
	}
	if got := TextEventName(TextEventLyric); got != "lyric" {
		t.Errorf("TextEventName(TextEventLyric) = %q, want \"lyric\"", got)
	}
}

func TestChannelPrefix(t *testing.T) {
	ev := parseOneEvent(t, []byte{0x00, 0xff, 0x20, 0x01, 0x04})
	ch, err := ev.ChannelPrefix()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ch != 4 {
		t.Errorf("ChannelPrefix() = %d, want 4", ch)
	}
}

func TestTempoAndBPM(t *testing.T) {
	ev := parseOneEvent(t, []byte{0x00, 0xff, 0x51, 0x03, 0x07, 0xa1, 0x20})
	us, err := ev.Tempo()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if us != 500000 {
		t.Fatalf("Tempo() = %d, want 500000", us)
	}
	if bpm := TempoBPM(us); bpm != 120 {
		t.Errorf("TempoBPM(500000) = %v, want 120", bpm)
	}
	if TempoBPM(0) != 0 {
		t.Errorf("TempoBPM(0) should be 0, not a divide-by-zero panic")
	}
}

func TestSMPTEOffsetEvent(t *testing.T) {
	ev := parseOneEvent(t, []byte{0x00, 0xff, 0x54, 0x05, 1, 2, 3, 4, 5})
	off, err := ev.SMPTEOffset()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := SMPTEOffset{Hours: 1, Minutes: 2, Seconds: 3, Frames: 4, FractionalFrames: 5}
	if off != want {
		t.Errorf("SMPTEOffset() = %+v, want %+v", off, want)
	}
}

func TestTimeSignatureEvent(t *testing.T) {
	ev := parseOneEvent(t, []byte{0x00, 0xff, 0x58, 0x04, 4, 2, 24, 8})
	ts, err := ev.TimeSignature()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := TimeSignature{Numerator: 4, Denominator: 2, ClocksPerMetronomeTick: 24, Notated32ndNotesPerQuarterNote: 8}
	if ts != want {
		t.Errorf("TimeSignature() = %+v, want %+v", ts, want)
	}
}

func TestKeySignatureEvent(t *testing.T) {
	ev := parseOneEvent(t, []byte{0x00, 0xff, 0x59, 0x02, 0xfe, 1}) // 0xfe is -2 as a signed byte
	ks, err := ev.KeySignature()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ks.SharpOrFlatCount != -2 || !ks.IsMinor {
		t.Errorf("KeySignature() = %+v, want {-2 true}", ks)
	}
}

func TestKeySignatureRejectsOutOfRangeFields(t *testing.T) {
	ev := parseOneEvent(t, []byte{0x00, 0xff, 0x59, 0x02, 0xfe, 7}) // 0xfe is -2 as a signed byte
	if _, err := ev.KeySignature(); err == nil {
		t.Errorf("KeySignature() should reject a major/minor byte of 7")
	}
}

func TestIsEndOfTrack(t *testing.T) {
	eot := parseOneEvent(t, []byte{0x00, 0xff, 0x2f, 0x00})
	if !eot.IsEndOfTrack() {
		t.Errorf("IsEndOfTrack() = false, want true")
	}
	other := parseOneEvent(t, []byte{0x00, 0xff, 0x51, 0x03, 0x07, 0xa1, 0x20})
	if other.IsEndOfTrack() {
		t.Errorf("IsEndOfTrack() = true for a tempo event, want false")
	}
}
