package midi

import "testing"

func TestReadTrackBasic(t *testing.T) {
	body := []byte{
		0x00, 0x90, 0x3c, 0x40, // note on
		0x30, 0x3c, 0x00, // note off via running status
		0x00, 0xff, 0x2f, 0x00, // end of track
	}
	track, err := ReadTrack(body)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(track.Events) != 3 {
		t.Fatalf("got %d events, want 3", len(track.Events))
	}
	if !track.Events[2].IsEndOfTrack() {
		t.Errorf("last event should be end-of-track")
	}
}

func TestReadTrackMissingEOT(t *testing.T) {
	body := []byte{0x00, 0x90, 0x3c, 0x40}
	_, err := ReadTrack(body)
	if err == nil || err.Code != ErrTrackMissingEOT {
		t.Fatalf("expected ErrTrackMissingEOT, got %v", err)
	}
}

func TestReadTrackEventAfterEOT(t *testing.T) {
	body := []byte{
		0x00, 0xff, 0x2f, 0x00, // end of track
		0x00, 0x90, 0x3c, 0x40, // trailing event: malformed
	}
	_, err := ReadTrack(body)
	if err == nil || err.Code != ErrTrackEventAfterEOT {
		t.Fatalf("expected ErrTrackEventAfterEOT, got %v", err)
	}
}

func TestReadTrackPropagatesParseError(t *testing.T) {
	body := []byte{0x00, 0xf1, 0x00}
	_, err := ReadTrack(body)
	if err == nil || err.Code != ErrTrackEventParse || err.Parse == nil {
		t.Fatalf("expected a wrapped parse error, got %v", err)
	}
}

func TestTrackRoundTripsThroughAppendChunk(t *testing.T) {
	var track Track
	track.Events = append(track.Events,
		NewChannelEvent(0, 0x90, 0x3c, 0x40),
		NewChannelEvent(0x30, 0x90, 0x3c, 0x00),
		NewEndOfTrackEvent(0),
	)
	chunk := track.AppendChunk(nil)
	hdr, herr := ReadChunkHeader(chunk)
	if herr != nil {
		t.Fatalf("unexpected chunk header error: %s", herr)
	}
	body := chunk[chunkHeaderSize : chunkHeaderSize+int(hdr.Length)]
	readBack, terr := ReadTrack(body)
	if terr != nil {
		t.Fatalf("unexpected track parse error: %s", terr)
	}
	if len(readBack.Events) != len(track.Events) {
		t.Fatalf("got %d events back, want %d", len(readBack.Events), len(track.Events))
	}
	for i := range track.Events {
		if !track.Events[i].Equal(&readBack.Events[i]) {
			t.Errorf("event %d differs after round trip", i)
		}
	}
}

// Spec §8 testable property 4: the running status threaded by the track
// parser matches what classifying each event's status byte in isolation
// would produce.
func TestTrackRunningStatusMatchesIsolatedClassification(t *testing.T) {
	body := []byte{
		0x00, 0x90, 0x3c, 0x40,
		0x00, 0x3c, 0x00, // running status continuation
		0x00, 0xc0, 0x05, // program change: running status becomes 0xc0
		0x00, 0x05, // running status continuation of program change
		0x00, 0xff, 0x2f, 0x00,
	}
	track, err := ReadTrack(body)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	rs := byte(0)
	for i := range track.Events {
		ev := &track.Events[i]
		want := UpdateRunningStatus(ev.StatusByte(), rs)
		got := ev.RunningStatusAfter(rs)
		if got != want {
			t.Errorf("event %d: RunningStatusAfter = 0x%02x, want 0x%02x", i, got, want)
		}
		rs = got
	}
}
