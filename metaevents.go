package midi

import "fmt"

// Meta event type bytes, as defined by the standard MIDI file format.
const (
	metaTypeSequenceNumber = 0x00
	metaTypeChannelPrefix  = 0x20
	metaTypeEndOfTrack     = 0x2f
	metaTypeSetTempo       = 0x51
	metaTypeSMPTEOffset    = 0x54
	metaTypeTimeSignature  = 0x58
	metaTypeKeySignature   = 0x59
)

// Text event subtypes (meta type bytes 0x01-0x0f share a common format and
// are distinguished only by this value).
const (
	TextEventGeneric        = 0x01
	TextEventCopyright      = 0x02
	TextEventTrackName      = 0x03
	TextEventInstrumentName = 0x04
	TextEventLyric          = 0x05
	TextEventMarker         = 0x06
	TextEventCuePoint       = 0x07
)

func isTextEventType(t byte) bool {
	return t >= 0x01 && t <= 0x0f
}

// TextEventName returns a human-readable name for a text meta event
// subtype, or a generic placeholder if t isn't one of the commonly-used
// values.
func TextEventName(t byte) string {
	switch t {
	case TextEventGeneric:
		return "text"
	case TextEventCopyright:
		return "copyright notice"
	case TextEventTrackName:
		return "track/sequence name"
	case TextEventInstrumentName:
		return "instrument name"
	case TextEventLyric:
		return "lyric"
	case TextEventMarker:
		return "marker"
	case TextEventCuePoint:
		return "cue point"
	default:
		return fmt.Sprintf("text event type %d", t)
	}
}

// IsEndOfTrack reports whether ev is the end-of-track meta event.
func (e *Event) IsEndOfTrack() bool {
	return isEndOfTrackEvent(e)
}

// metaTypeAndPayload returns an event's meta type byte and payload, or ok
// == false if ev is not a meta event at all.
func (e *Event) metaTypeAndPayload() (metaType byte, payload []byte, ok bool) {
	eb := e.EventBytes()
	if len(eb) < 2 || eb[0] != 0xff {
		return 0, nil, false
	}
	return eb[1], e.Payload(), true
}

// SequenceNumber decodes a sequence-number meta event (type 0x00).
func (e *Event) SequenceNumber() (uint16, error) {
	t, data, ok := e.metaTypeAndPayload()
	if !ok || t != metaTypeSequenceNumber {
		return 0, fmt.Errorf("midi: not a sequence-number meta event")
	}
	if len(data) != 2 {
		return 0, fmt.Errorf("midi: bad sequence-number event size: %d bytes", len(data))
	}
	return uint16(data[0])<<8 | uint16(data[1]), nil
}

// TextEvent decodes a text-family meta event (types 0x01-0x0f), returning
// the subtype byte and the text bytes.
func (e *Event) TextEvent() (subtype byte, text []byte, err error) {
	t, data, ok := e.metaTypeAndPayload()
	if !ok || !isTextEventType(t) {
		return 0, nil, fmt.Errorf("midi: not a text meta event")
	}
	return t, data, nil
}

// ChannelPrefix decodes a channel-prefix meta event (type 0x20).
func (e *Event) ChannelPrefix() (uint8, error) {
	t, data, ok := e.metaTypeAndPayload()
	if !ok || t != metaTypeChannelPrefix {
		return 0, fmt.Errorf("midi: not a channel-prefix meta event")
	}
	if len(data) != 1 {
		return 0, fmt.Errorf("midi: bad channel-prefix event size: %d bytes", len(data))
	}
	return data[0], nil
}

// Tempo decodes a set-tempo meta event (type 0x51), returning the number of
// microseconds per quarter note.
func (e *Event) Tempo() (uint32, error) {
	t, data, ok := e.metaTypeAndPayload()
	if !ok || t != metaTypeSetTempo {
		return 0, fmt.Errorf("midi: not a set-tempo meta event")
	}
	if len(data) != 3 {
		return 0, fmt.Errorf("midi: bad set-tempo event size: %d bytes", len(data))
	}
	return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]), nil
}

// TempoBPM converts a microseconds-per-quarter-note tempo value into beats
// per minute.
func TempoBPM(microsecondsPerQuarterNote uint32) float64 {
	if microsecondsPerQuarterNote == 0 {
		return 0
	}
	return 60000000.0 / float64(microsecondsPerQuarterNote)
}

// SMPTEOffset holds a decoded SMPTE-offset meta event (type 0x54).
type SMPTEOffset struct {
	Hours            uint8
	Minutes          uint8
	Seconds          uint8
	Frames           uint8
	FractionalFrames uint8
}

// SMPTEOffset decodes an SMPTE-offset meta event.
func (e *Event) SMPTEOffset() (SMPTEOffset, error) {
	t, data, ok := e.metaTypeAndPayload()
	if !ok || t != metaTypeSMPTEOffset {
		return SMPTEOffset{}, fmt.Errorf("midi: not an SMPTE-offset meta event")
	}
	if len(data) != 5 {
		return SMPTEOffset{}, fmt.Errorf("midi: bad SMPTE-offset event size: %d bytes", len(data))
	}
	return SMPTEOffset{
		Hours:            data[0],
		Minutes:          data[1],
		Seconds:          data[2],
		Frames:           data[3],
		FractionalFrames: data[4],
	}, nil
}

// TimeSignature holds a decoded time-signature meta event (type 0x58).
type TimeSignature struct {
	Numerator uint8
	// Denominator is a negative power of 2: a Denominator of 3 means the
	// time signature's denominator is 2**3 == 8.
	Denominator                    uint8
	ClocksPerMetronomeTick         uint8
	Notated32ndNotesPerQuarterNote uint8
}

// TimeSignature decodes a time-signature meta event.
func (e *Event) TimeSignature() (TimeSignature, error) {
	t, data, ok := e.metaTypeAndPayload()
	if !ok || t != metaTypeTimeSignature {
		return TimeSignature{}, fmt.Errorf("midi: not a time-signature meta event")
	}
	if len(data) != 4 {
		return TimeSignature{}, fmt.Errorf("midi: bad time-signature event size: %d bytes", len(data))
	}
	return TimeSignature{
		Numerator:                      data[0],
		Denominator:                    data[1],
		ClocksPerMetronomeTick:         data[2],
		Notated32ndNotesPerQuarterNote: data[3],
	}, nil
}

// KeySignature holds a decoded key-signature meta event (type 0x59).
type KeySignature struct {
	// SharpOrFlatCount ranges from -7 (7 flats) to +7 (7 sharps); 0 means
	// the key has neither.
	SharpOrFlatCount int8
	IsMinor          bool
}

// KeySignature decodes a key-signature meta event.
func (e *Event) KeySignature() (KeySignature, error) {
	t, data, ok := e.metaTypeAndPayload()
	if !ok || t != metaTypeKeySignature {
		return KeySignature{}, fmt.Errorf("midi: not a key-signature meta event")
	}
	if len(data) != 2 {
		return KeySignature{}, fmt.Errorf("midi: bad key-signature event size: %d bytes", len(data))
	}
	sf := int8(data[0])
	if sf < -7 || sf > 7 {
		return KeySignature{}, fmt.Errorf("midi: bad sharp/flat count in key signature: %d", sf)
	}
	if data[1] > 1 {
		return KeySignature{}, fmt.Errorf("midi: bad major/minor byte in key signature: %d", data[1])
	}
	return KeySignature{SharpOrFlatCount: sf, IsMinor: data[1] == 1}, nil
}
