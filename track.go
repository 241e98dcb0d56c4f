package midi

import "fmt"

// TrackErrorCode identifies why ReadTrack failed.
type TrackErrorCode uint8

const (
	// ErrTrackEventParse means an event within the track failed to parse;
	// see the wrapped ParseError for detail.
	ErrTrackEventParse TrackErrorCode = iota + 1
	// ErrTrackMissingEOT means the track ran out of bytes without its last
	// event being an end-of-track meta event.
	ErrTrackMissingEOT
	// ErrTrackEventAfterEOT means an event followed the end-of-track meta
	// event instead of the chunk ending there.
	ErrTrackEventAfterEOT
)

func (c TrackErrorCode) String() string {
	switch c {
	case ErrTrackEventParse:
		return "event parse failure"
	case ErrTrackMissingEOT:
		return "track does not end with an end-of-track event"
	case ErrTrackEventAfterEOT:
		return "event follows end-of-track event"
	default:
		return "? TrackErrorCode"
	}
}

// TrackError describes why ReadTrack failed.
type TrackError struct {
	Code TrackErrorCode
	// EventIndex is the index (within the track being parsed) of the event
	// that triggered the error.
	EventIndex int
	// Parse is non-nil when Code == ErrTrackEventParse, giving the
	// underlying event-parse failure.
	Parse *ParseError
}

func (e *TrackError) Error() string {
	if e.Parse != nil {
		return fmt.Sprintf("midi: read track: event %d: %s: %s", e.EventIndex, e.Code, e.Parse)
	}
	return fmt.Sprintf("midi: read track: event %d: %s", e.EventIndex, e.Code)
}

// Track is a parsed MTrk chunk: an ordered sequence of events.
type Track struct {
	Events []Event
}

func isEndOfTrackEvent(ev *Event) bool {
	eb := ev.EventBytes()
	return len(eb) >= 2 && eb[0] == 0xff && eb[1] == metaTypeEndOfTrack
}

// ReadTrack parses an MTrk chunk's body (the bytes following the 8-byte
// chunk header, of length hdr.Length) into a sequence of events. Running
// status is threaded across events as required by the format. A track is
// only valid if its last event is an end-of-track meta event and no bytes
// remain afterward.
func ReadTrack(body []byte) (Track, *TrackError) {
	var track Track
	rs := byte(0)
	offset := 0
	for offset < len(body) {
		n, ev, perr := ParseEvent(body[offset:], rs)
		if perr != nil {
			return Track{}, &TrackError{Code: ErrTrackEventParse, EventIndex: len(track.Events), Parse: perr}
		}
		if len(track.Events) > 0 && isEndOfTrackEvent(&track.Events[len(track.Events)-1]) {
			return Track{}, &TrackError{Code: ErrTrackEventAfterEOT, EventIndex: len(track.Events)}
		}
		rs = ev.RunningStatusAfter(rs)
		track.Events = append(track.Events, ev)
		offset += n
	}
	if len(track.Events) == 0 || !isEndOfTrackEvent(&track.Events[len(track.Events)-1]) {
		return Track{}, &TrackError{Code: ErrTrackMissingEOT, EventIndex: len(track.Events)}
	}
	return track, nil
}

// AppendBody appends this track's events' raw bytes, in order, to dst.
// Callers are responsible for having constructed an Events slice that ends
// with an end-of-track event; AppendBody does not add one.
func (t *Track) AppendBody(dst []byte) []byte {
	for i := range t.Events {
		dst = append(dst, t.Events[i].Bytes()...)
	}
	return dst
}

// AppendChunk appends the complete MTrk chunk (8-byte header plus body) to
// dst.
func (t *Track) AppendChunk(dst []byte) []byte {
	bodyStart := len(dst) + chunkHeaderSize
	dst = AppendChunkHeader(dst, [4]byte{'M', 'T', 'r', 'k'}, 0)
	dst = t.AppendBody(dst)
	bodyLen := uint32(len(dst) - bodyStart)
	dst[bodyStart-4] = byte(bodyLen >> 24)
	dst[bodyStart-3] = byte(bodyLen >> 16)
	dst[bodyStart-2] = byte(bodyLen >> 8)
	dst[bodyStart-1] = byte(bodyLen)
	return dst
}
