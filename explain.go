package midi

import "fmt"

// MIDINote names a MIDI note number. Values corresponding to keys on a
// standard 88-key keyboard are 21 (A0) through 108 (C8).
type MIDINote uint8

func (n MIDINote) String() string {
	if n < 21 || n > 108 {
		return fmt.Sprintf("note %d", uint8(n))
	}
	names := [...]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}
	index := (int(n) - 21) % 12
	octave := (int(n) - 12) / 12
	return fmt.Sprintf("%s%d", names[index], octave)
}

// channelMessageName names the channel voice/mode message kind a status
// byte's high nibble selects.
func channelMessageName(status byte) string {
	switch status & 0xf0 {
	case 0x80:
		return "note off"
	case 0x90:
		return "note on"
	case 0xa0:
		return "aftertouch"
	case 0xb0:
		return "control change"
	case 0xc0:
		return "program change"
	case 0xd0:
		return "channel pressure"
	case 0xe0:
		return "pitch bend"
	default:
		return "channel message"
	}
}

// Explain returns a short human-readable description of the event, in the
// style of a diagnostic dump rather than a protocol-accurate rendering.
func (e *Event) Explain() string {
	status := e.StatusByte()
	class := ClassifyStatus(status)
	payload := e.Payload()
	dt := e.DeltaTime()

	switch class {
	case StatusChannel:
		channel := status & 0x0f
		name := channelMessageName(status)
		switch status & 0xf0 {
		case 0x80, 0x90:
			note := MIDINote(0)
			if len(payload) > 0 {
				note = MIDINote(payload[0])
			}
			velocity := uint8(0)
			if len(payload) > 1 {
				velocity = payload[1]
			}
			return fmt.Sprintf("+%d: channel %d: %s %s, velocity %d", dt, channel, note, name, velocity)
		case 0xc0:
			program := uint8(0)
			if len(payload) > 0 {
				program = payload[0]
			}
			return fmt.Sprintf("+%d: channel %d: program change to %d", dt, channel, program)
		default:
			return fmt.Sprintf("+%d: channel %d: %s, data % x", dt, channel, name, payload)
		}
	case StatusMeta:
		return fmt.Sprintf("+%d: %s", dt, explainMeta(e))
	case StatusSysexF0, StatusSysexF7:
		return fmt.Sprintf("+%d: sysex (%d bytes)", dt, len(payload))
	default:
		return fmt.Sprintf("+%d: unrecognized status 0x%02X", dt, status)
	}
}

func explainMeta(e *Event) string {
	t, data, ok := e.metaTypeAndPayload()
	if !ok {
		return "malformed meta event"
	}
	switch {
	case t == metaTypeSequenceNumber:
		n, err := e.SequenceNumber()
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("sequence number %d", n)
	case isTextEventType(t):
		return fmt.Sprintf("%s: %q", TextEventName(t), data)
	case t == metaTypeChannelPrefix:
		c, err := e.ChannelPrefix()
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("channel prefix %d", c)
	case t == metaTypeEndOfTrack:
		return "end of track"
	case t == metaTypeSetTempo:
		tempo, err := e.Tempo()
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("set tempo to %d us/quarter note (%.2f BPM)", tempo, TempoBPM(tempo))
	case t == metaTypeSMPTEOffset:
		off, err := e.SMPTEOffset()
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("SMPTE offset %d:%d:%d, frame %d.%d", off.Hours, off.Minutes,
			off.Seconds, off.Frames, off.FractionalFrames)
	case t == metaTypeTimeSignature:
		ts, err := e.TimeSignature()
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("time signature %d/%d, %d clocks/tick, %d 32nd-notes/quarter",
			ts.Numerator, uint32(1)<<uint32(ts.Denominator), ts.ClocksPerMetronomeTick,
			ts.Notated32ndNotesPerQuarterNote)
	case t == metaTypeKeySignature:
		ks, err := e.KeySignature()
		if err != nil {
			return err.Error()
		}
		sf := ks.SharpOrFlatCount
		kind := "sharps/flats"
		if sf < 0 {
			sf = -sf
			kind = "flats"
		} else if sf > 0 {
			kind = "sharps"
		}
		mm := "major"
		if ks.IsMinor {
			mm = "minor"
		}
		return fmt.Sprintf("key signature: %d %s, %s", sf, kind, mm)
	default:
		return fmt.Sprintf("meta event type %d, %d bytes", t, len(data))
	}
}
