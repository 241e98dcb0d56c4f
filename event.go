package midi

// Event is a single MTrk event: a delta-time VLQ immediately followed by
// the event's own bytes (a channel message, meta event, or sysex event),
// exactly as they appear on the wire. Event is the only way this package
// represents an event -- there is no separate NoteOn/ProgramChange/Meta
// struct hierarchy. Callers that want a typed view of an event's payload
// call AsChannelEvent, AsMeta, or AsSysex, which re-parse the raw bytes on
// demand rather than caching a decoded form.
type Event struct {
	data smallBytes
}

// Bytes returns the event's raw wire bytes: delta-time VLQ followed by the
// event bytes. The returned slice aliases internal storage and is
// invalidated by any subsequent call that mutates the event.
func (e *Event) Bytes() []byte {
	return e.data.bytes()
}

// Size returns the total number of raw bytes (delta-time plus event).
func (e *Event) Size() int {
	return e.data.size()
}

// Cap returns the number of bytes storable before the next internal grow.
func (e *Event) Cap() int {
	return e.data.cap()
}

// deltaTimeLen returns how many leading bytes of e.Bytes() belong to the
// delta-time VLQ.
func (e *Event) deltaTimeLen() int {
	return AdvanceVLQ(e.data.bytes())
}

// DeltaTime decodes and returns the event's delta-time.
func (e *Event) DeltaTime() DeltaTime {
	value, _, _ := ReadVLQ(e.data.bytes())
	return DeltaTime(value)
}

// DeltaTimeBytes returns the raw VLQ bytes encoding the delta-time.
func (e *Event) DeltaTimeBytes() []byte {
	return e.data.bytes()[:e.deltaTimeLen()]
}

// EventBytes returns the event's bytes with the delta-time prefix removed:
// status byte (if present) followed by whatever data/length/payload bytes
// belong to that status.
func (e *Event) EventBytes() []byte {
	return e.data.bytes()[e.deltaTimeLen():]
}

// StatusByte returns the first byte of the event proper (0 if the event
// has no bytes beyond its delta-time, which should not occur for a
// validly-parsed event but can for a zero-value Event).
func (e *Event) StatusByte() byte {
	eb := e.EventBytes()
	if len(eb) == 0 {
		return 0
	}
	return eb[0]
}

// Class classifies the event's status byte.
func (e *Event) Class() StatusClass {
	return ClassifyStatus(e.StatusByte())
}

// payloadOffset returns the number of EventBytes() that precede the
// semantic payload: 1 for a channel status byte (just the status byte
// itself), 2 + VLQ length field for meta (status byte and type byte), and
// 1 + VLQ length field for sysex (opener byte) -- computed per class below.
func (e *Event) payloadOffset() int {
	eb := e.EventBytes()
	if len(eb) == 0 {
		return 0
	}
	switch ClassifyStatus(eb[0]) {
	case StatusMeta:
		if len(eb) < 2 {
			return len(eb)
		}
		_, n, _ := ReadVLQ(eb[2:])
		return 2 + n
	case StatusSysexF0, StatusSysexF7:
		if len(eb) < 1 {
			return len(eb)
		}
		_, n, _ := ReadVLQ(eb[1:])
		return 1 + n
	default:
		return 1
	}
}

// Payload returns the event's data bytes: for a channel event, the one or
// two data bytes following the status byte; for a meta event, the bytes
// following the type byte and length field; for a sysex event, the bytes
// following the opener and length field.
func (e *Event) Payload() []byte {
	eb := e.EventBytes()
	off := e.payloadOffset()
	if off > len(eb) {
		return nil
	}
	return eb[off:]
}

// RunningStatusAfter returns the running-status byte a stream inherits
// after this event, given the running status priorRS in effect before it.
func (e *Event) RunningStatusAfter(priorRS byte) byte {
	return UpdateRunningStatus(e.StatusByte(), priorRS)
}

// ChannelEventData is the typed view of a channel voice/mode event:
// StatusNibble identifies the message kind (0x8-0xE), Channel is 0-15, and
// P1/P2 are its data bytes (P2 is 0 and unused for message kinds that only
// carry one data byte).
type ChannelEventData struct {
	StatusNibble uint8
	Channel      uint8
	P1           uint8
	P2           uint8
}

// AsChannelEvent returns the typed view of a channel event, and ok == true
// if e actually is one. Calling this on a non-channel event returns the
// zero value and ok == false.
func (e *Event) AsChannelEvent() (data ChannelEventData, ok bool) {
	eb := e.EventBytes()
	if len(eb) == 0 || !IsChannelStatusByte(eb[0]) {
		return ChannelEventData{}, false
	}
	status := eb[0]
	n := ChannelDataByteCount(status)
	if len(eb) < 1+n {
		return ChannelEventData{}, false
	}
	data.StatusNibble = status >> 4
	data.Channel = status & 0x0f
	if n >= 1 {
		data.P1 = eb[1]
	}
	if n >= 2 {
		data.P2 = eb[2]
	}
	return data, true
}

// MetaHeader is the typed view of a meta event's header: its type byte and
// declared payload length (== len(Event.Payload())).
type MetaHeader struct {
	Type   uint8
	Length uint32
}

// AsMeta returns the typed view of a meta event's header, and ok == true
// if e actually is a meta event.
func (e *Event) AsMeta() (hdr MetaHeader, ok bool) {
	t, payload, ok := e.metaTypeAndPayload()
	if !ok {
		return MetaHeader{}, false
	}
	return MetaHeader{Type: t, Length: uint32(len(payload))}, true
}

// SysexHeader is the typed view of a sysex event's header: its opener byte
// (0xF0 or 0xF7) and declared payload length.
type SysexHeader struct {
	Status uint8
	Length uint32
}

// AsSysex returns the typed view of a sysex event's header, and ok == true
// if e actually is a sysex event.
func (e *Event) AsSysex() (hdr SysexHeader, ok bool) {
	eb := e.EventBytes()
	if len(eb) == 0 || !IsSysexStatusByte(eb[0]) {
		return SysexHeader{}, false
	}
	return SysexHeader{Status: eb[0], Length: uint32(len(e.Payload()))}, true
}

// SetDeltaTime rewrites the event's delta-time, re-encoding it and
// shifting the event bytes if the new encoding is a different length.
func (e *Event) SetDeltaTime(dt DeltaTime) {
	eventBytes := append([]byte(nil), e.EventBytes()...)
	var prefix [maxVLQBytes]byte
	encoded := AppendVLQ(prefix[:0], uint32(dt))
	e.data.resizeNoCopy(len(encoded) + len(eventBytes))
	buf := e.data.bytes()
	copy(buf, encoded)
	copy(buf[len(encoded):], eventBytes)
}

// Reserve ensures the event's backing storage can hold at least n bytes
// without reallocating.
func (e *Event) Reserve(n int) {
	e.data.reserve(n)
}

// Clear resets the event to zero length.
func (e *Event) Clear() {
	e.data.clear()
}

// Clone returns a deep copy of e that never aliases e's storage.
func (e *Event) Clone() Event {
	return Event{data: e.data.clone()}
}

// Equal reports whether e and other have byte-identical raw contents.
func (e *Event) Equal(other *Event) bool {
	return e.data.equalBytes(&other.data)
}

// buildEvent assembles an Event's raw bytes from a delta-time and a
// pre-built event-bytes slice. It is the common tail of the exported
// constructors below.
func buildEvent(dt DeltaTime, eventBytes []byte) Event {
	var ev Event
	var prefix [maxVLQBytes]byte
	encoded := AppendVLQ(prefix[:0], uint32(dt))
	ev.data.resizeNoCopy(len(encoded) + len(eventBytes))
	buf := ev.data.bytes()
	copy(buf, encoded)
	copy(buf[len(encoded):], eventBytes)
	return ev
}

func clampNibble(n uint8) uint8 {
	if n < 0x8 {
		return 0x8
	}
	if n > 0xe {
		return 0xe
	}
	return n
}

func clamp4Bit(v uint8) uint8 {
	if v > 0x0f {
		return 0x0f
	}
	return v
}

func clamp7Bit(v uint8) uint8 {
	if v > 0x7f {
		return 0x7f
	}
	return v
}

// NewChannelEventData builds a channel voice/mode event from its typed
// fields, normalising out-of-range inputs exactly as spec §4.5 requires:
// the status nibble is clamped to [0x8, 0xE], Channel to [0, 15], and P1/P2
// to [0, 0x7F] -- a caller can never construct a malformed channel event
// this way, only a clamped approximation of what it asked for.
func NewChannelEventData(dt DeltaTime, data ChannelEventData) Event {
	nibble := clampNibble(data.StatusNibble)
	channel := clamp4Bit(data.Channel)
	status := (nibble << 4) | channel
	n := ChannelDataByteCount(status)
	eventBytes := make([]byte, 0, 1+n)
	eventBytes = append(eventBytes, status)
	if n >= 1 {
		eventBytes = append(eventBytes, clamp7Bit(data.P1))
	}
	if n >= 2 {
		eventBytes = append(eventBytes, clamp7Bit(data.P2))
	}
	return buildEvent(dt, eventBytes)
}

// NewChannelEvent builds a channel voice/mode event. status's high nibble
// selects the message kind and is clamped to [0x8, 0xE]; its low nibble is
// the channel. data supplies P1 (and P2, if the message kind takes two data
// bytes); a short data list leaves the trailing data byte(s) at 0, and any
// data values out of [0, 0x7F] are clamped, per the normalising constructor
// in spec §4.5.
func NewChannelEvent(dt DeltaTime, status byte, data ...byte) Event {
	var p1, p2 uint8
	if len(data) >= 1 {
		p1 = data[0]
	}
	if len(data) >= 2 {
		p2 = data[1]
	}
	return NewChannelEventData(dt, ChannelEventData{
		StatusNibble: status >> 4,
		Channel:      status & 0x0f,
		P1:           p1,
		P2:           p2,
	})
}

// NewMetaEvent builds a meta event (0xFF, metaType, VLQ length, payload).
func NewMetaEvent(dt DeltaTime, metaType byte, payload []byte) Event {
	eventBytes := make([]byte, 0, 2+VLQFieldSize(uint32(len(payload)))+len(payload))
	eventBytes = append(eventBytes, 0xff, metaType)
	eventBytes = AppendVLQ(eventBytes, uint32(len(payload)))
	eventBytes = append(eventBytes, payload...)
	return buildEvent(dt, eventBytes)
}

// NewSysexEvent builds a sysex event. opener must be 0xF0 or 0xF7.
func NewSysexEvent(dt DeltaTime, opener byte, payload []byte) Event {
	if !IsSysexStatusByte(opener) {
		panic("midi: NewSysexEvent: opener is not 0xF0 or 0xF7")
	}
	eventBytes := make([]byte, 0, 1+VLQFieldSize(uint32(len(payload)))+len(payload))
	eventBytes = append(eventBytes, opener)
	eventBytes = AppendVLQ(eventBytes, uint32(len(payload)))
	eventBytes = append(eventBytes, payload...)
	return buildEvent(dt, eventBytes)
}

// NewEndOfTrackEvent builds the canonical end-of-track meta event
// (FF 2F 00) that must terminate every track.
func NewEndOfTrackEvent(dt DeltaTime) Event {
	return NewMetaEvent(dt, metaTypeEndOfTrack, nil)
}
