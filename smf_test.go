package midi

import "testing"

func buildSMFBytes(t *testing.T) []byte {
	t.Helper()
	h := MThd{Format: 1, NumTracks: 1, Division: NewTicksPerQuarterNoteDivision(96)}
	var track Track
	track.Events = append(track.Events,
		NewChannelEvent(0, 0x90, 0x3c, 0x40),
		NewChannelEvent(0x60, 0x80, 0x3c, 0x40),
		NewEndOfTrackEvent(0),
	)
	var data []byte
	data = h.AppendChunk(data)
	data = track.AppendChunk(data)
	return data
}

func TestParseSMFRoundTrip(t *testing.T) {
	data := buildSMFBytes(t)
	file, err := ParseSMF(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(file.Chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(file.Chunks))
	}
	hdr := file.Header()
	if hdr == nil || hdr.Format != 1 || hdr.NumTracks != 1 {
		t.Fatalf("Header() = %+v, want format 1 ntrks 1", hdr)
	}
	tracks := file.Tracks()
	if len(tracks) != 1 || len(tracks[0].Events) != 3 {
		t.Fatalf("Tracks() = %+v", tracks)
	}
	again := file.Bytes()
	if !bytesEqual(again, data) {
		t.Errorf("re-encoded file differs from original:\ngot:  % x\nwant: % x", again, data)
	}
}

// Spec §9 Open Question 3: unknown chunks between MTrks must be preserved,
// in order, across a round trip.
func TestParseSMFPreservesUnknownChunks(t *testing.T) {
	h := MThd{Format: 1, NumTracks: 1, Division: NewTicksPerQuarterNoteDivision(96)}
	var track Track
	track.Events = append(track.Events, NewEndOfTrackEvent(0))

	var data []byte
	data = h.AppendChunk(data)
	data = AppendChunkHeader(data, [4]byte{'X', 'T', 'R', 'A'}, 3)
	data = append(data, 'a', 'b', 'c')
	data = track.AppendChunk(data)
	data = AppendChunkHeader(data, [4]byte{'Z', 'Z', 'Z', 'Z'}, 0)

	file, err := ParseSMF(data)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(file.Chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(file.Chunks))
	}
	if file.Chunks[1].Header.ID != ChunkUnknown || string(file.Chunks[1].Raw) != "abc" {
		t.Fatalf("chunk 1 = %+v, want unknown XTRA chunk with body \"abc\"", file.Chunks[1])
	}
	if file.Chunks[3].Header.ID != ChunkUnknown || len(file.Chunks[3].Raw) != 0 {
		t.Fatalf("chunk 3 = %+v, want an empty unknown ZZZZ chunk", file.Chunks[3])
	}
	again := file.Bytes()
	if !bytesEqual(again, data) {
		t.Errorf("re-encoded file with unknown chunks differs from original:\ngot:  % x\nwant: % x", again, data)
	}
}

func TestParseSMFChunkBodyOverrunsFile(t *testing.T) {
	data := AppendChunkHeader(nil, [4]byte{'M', 'T', 'r', 'k'}, 100)
	_, err := ParseSMF(data)
	if err == nil || err.Code != ErrSMFChunkBody {
		t.Fatalf("expected ErrSMFChunkBody, got %v", err)
	}
}

func TestNewSMFFilePicksFormat(t *testing.T) {
	var single Track
	single.Events = append(single.Events, NewEndOfTrackEvent(0))
	f := NewSMFFile(NewTicksPerQuarterNoteDivision(120), []Track{single})
	if f.Header().Format != 0 {
		t.Errorf("single-track file should default to format 0, got %d", f.Header().Format)
	}

	f2 := NewSMFFile(NewTicksPerQuarterNoteDivision(120), []Track{single, single})
	if f2.Header().Format != 1 {
		t.Errorf("multi-track file should default to format 1, got %d", f2.Header().Format)
	}
}
