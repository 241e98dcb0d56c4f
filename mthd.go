package midi

import "fmt"

// TimeDivision is the division field of an MThd chunk: either ticks per
// quarter note, or an SMPTE time code plus ticks per frame.
type TimeDivision uint16

// TicksPerQuarterNote returns the number of ticks per quarter note, or 0 if
// this TimeDivision instead specifies an SMPTE time code.
func (d TimeDivision) TicksPerQuarterNote() uint16 {
	if (d & 0x8000) != 0 {
		return 0
	}
	return uint16(d)
}

// SMPTETimeCode returns the frames-per-second followed by ticks-per-frame,
// or 0, 0 if this TimeDivision instead specifies ticks per quarter note.
func (d TimeDivision) SMPTETimeCode() (uint8, uint8) {
	if (d & 0x8000) == 0 {
		return 0, 0
	}
	fps := uint8(-int8(d >> 8))
	ticksPerFrame := uint8(d & 0xff)
	return fps, ticksPerFrame
}

// isValidSMPTETimeCode reports whether fps is one of the four frame rates
// the format allows for an SMPTE division field: 24, 25, 29 (29.97 drop
// frame), or 30.
func isValidSMPTETimeCode(fps uint8) bool {
	switch fps {
	case 24, 25, 29, 30:
		return true
	default:
		return false
	}
}

// NewTicksPerQuarterNoteDivision builds a division field counting ticks per
// quarter note, clamped to [1, 32767].
func NewTicksPerQuarterNoteDivision(ticks uint16) TimeDivision {
	if ticks < 1 {
		ticks = 1
	}
	if ticks > 0x7fff {
		ticks = 0x7fff
	}
	return TimeDivision(ticks)
}

// NewSMPTEDivision builds an SMPTE division field. fps is clamped to the
// nearest of the four allowed time codes (24, 25, 29, 30) if it isn't
// already one of them.
func NewSMPTEDivision(fps, ticksPerFrame uint8) TimeDivision {
	if !isValidSMPTETimeCode(fps) {
		fps = nearestSMPTETimeCode(fps)
	}
	return TimeDivision(0x8000 | uint16(uint8(-int8(fps)))<<8 | uint16(ticksPerFrame))
}

func nearestSMPTETimeCode(fps uint8) uint8 {
	codes := [...]uint8{24, 25, 29, 30}
	best := codes[0]
	bestDist := 256
	for _, c := range codes {
		d := int(c) - int(fps)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func (d TimeDivision) String() string {
	if (d & 0x7fff) == 0 {
		return fmt.Sprintf("invalid time division: 0x%04x", uint16(d))
	}
	if qn := d.TicksPerQuarterNote(); qn != 0 {
		return fmt.Sprintf("%d ticks per quarter note", qn)
	}
	fps, tpf := d.SMPTETimeCode()
	return fmt.Sprintf("%d frames per second, %d ticks per frame", fps, tpf)
}

// MThdErrorCode identifies why ReadMThd failed.
type MThdErrorCode uint8

const (
	// ErrMThdWrongChunkID means the chunk header's id was not "MThd".
	ErrMThdWrongChunkID MThdErrorCode = iota + 1
	// ErrMThdTooShort means fewer than 6 bytes of body were available.
	ErrMThdTooShort
	// ErrMThdBadFormat means the format field was not 0, 1, or 2.
	ErrMThdBadFormat
	// ErrMThdFormat0MultiTrack means format was 0 but ntrks was more than 1
	// (format 0 allows ntrks of 0 or 1, never more).
	ErrMThdFormat0MultiTrack
	// ErrMThdBadSMPTETimeCode means the division field's high bit was set
	// (SMPTE) but its time-code byte, reinterpreted as signed, was not one
	// of the four values the format allows (-24, -25, -29, -30).
	ErrMThdBadSMPTETimeCode
)

func (c MThdErrorCode) String() string {
	switch c {
	case ErrMThdWrongChunkID:
		return "chunk id is not MThd"
	case ErrMThdTooShort:
		return "fewer than 6 bytes in MThd body"
	case ErrMThdBadFormat:
		return "format field is not 0, 1, or 2"
	case ErrMThdFormat0MultiTrack:
		return "format 0 header declares more than one track"
	case ErrMThdBadSMPTETimeCode:
		return "SMPTE division field has an invalid time code"
	default:
		return "? MThdErrorCode"
	}
}

// MThdError describes why ReadMThd failed.
type MThdError struct {
	Code MThdErrorCode
}

func (e *MThdError) Error() string {
	return fmt.Sprintf("midi: read MThd: %s", e.Code)
}

// DefaultMThd is the header a freshly constructed file should start from if
// the caller hasn't chosen its own format/division: format 1, zero tracks
// (the caller is expected to set NumTracks once it knows how many it has),
// 480 ticks per quarter note.
var DefaultMThd = MThd{Format: 1, NumTracks: 0, Division: NewTicksPerQuarterNoteDivision(480)}

// MThd is a parsed MThd header chunk.
type MThd struct {
	Format     uint16
	NumTracks  uint16
	Division   TimeDivision
	// Extra holds any body bytes beyond the standard 6, preserved verbatim
	// so a chunk whose declared length exceeds 6 (permitted by the format,
	// for forward compatibility) round-trips unchanged.
	Extra []byte
}

func (h *MThd) String() string {
	return fmt.Sprintf("format %d, %d track(s), %s", h.Format, h.NumTracks, h.Division)
}

// ReadMThd parses an MThd header chunk's body (the bytes following the
// 8-byte chunk header, of length hdr.Length).
func ReadMThd(body []byte) (MThd, *MThdError) {
	if len(body) < 6 {
		return MThd{}, &MThdError{Code: ErrMThdTooShort}
	}
	format := uint16(body[0])<<8 | uint16(body[1])
	ntrks := uint16(body[2])<<8 | uint16(body[3])
	division := TimeDivision(uint16(body[4])<<8 | uint16(body[5]))

	if format > 2 {
		return MThd{}, &MThdError{Code: ErrMThdBadFormat}
	}
	if format == 0 && ntrks > 1 {
		return MThd{}, &MThdError{Code: ErrMThdFormat0MultiTrack}
	}
	if (division & 0x8000) != 0 {
		fps, _ := division.SMPTETimeCode()
		if !isValidSMPTETimeCode(fps) {
			return MThd{}, &MThdError{Code: ErrMThdBadSMPTETimeCode}
		}
	}

	var extra []byte
	if len(body) > 6 {
		extra = append([]byte(nil), body[6:]...)
	}
	return MThd{Format: format, NumTracks: ntrks, Division: division, Extra: extra}, nil
}

// AppendBody appends this MThd's body bytes (format, ntrks, division, then
// any preserved Extra bytes) to dst.
func (h *MThd) AppendBody(dst []byte) []byte {
	dst = append(dst, byte(h.Format>>8), byte(h.Format))
	dst = append(dst, byte(h.NumTracks>>8), byte(h.NumTracks))
	dst = append(dst, byte(h.Division>>8), byte(h.Division))
	return append(dst, h.Extra...)
}

// AppendChunk appends the complete MThd chunk (8-byte header plus body) to
// dst.
func (h *MThd) AppendChunk(dst []byte) []byte {
	bodyLen := 6 + len(h.Extra)
	dst = AppendChunkHeader(dst, [4]byte{'M', 'T', 'h', 'd'}, uint32(bodyLen))
	return h.AppendBody(dst)
}

// SetFormat sets the format field, clamped to [0, 2]. Setting format to 0
// while NumTracks > 1 is rejected silently -- Format is left unchanged --
// since a format-0 file may only declare a single track; use SetNumTracks
// first, or call SetNumTracks(1) to make format 0 legal again.
func (h *MThd) SetFormat(format uint16) {
	if format > 2 {
		format = 2
	}
	if format == 0 && h.NumTracks > 1 {
		return
	}
	h.Format = format
}

// SetNumTracks sets the number of tracks the header declares. If this
// would leave a format-0 header declaring more than one track, Format is
// silently lifted to 1 instead of rejecting the call.
func (h *MThd) SetNumTracks(n uint16) {
	h.NumTracks = n
	if h.Format == 0 && n > 1 {
		h.Format = 1
	}
}

// SetDivisionTicksPerQuarterNote sets the division field to count ticks
// per quarter note, clamped to [1, 32767].
func (h *MThd) SetDivisionTicksPerQuarterNote(ticks uint16) {
	h.Division = NewTicksPerQuarterNoteDivision(ticks)
}

// SetDivisionSMPTE sets the division field to an SMPTE time code. fps is
// clamped to the nearest of the four allowed values (24, 25, 29, 30) if it
// isn't already one of them.
func (h *MThd) SetDivisionSMPTE(fps, ticksPerFrame uint8) {
	h.Division = NewSMPTEDivision(fps, ticksPerFrame)
}

// Length returns the value this header's chunk length field would encode:
// 6 plus however many Extra bytes are currently set.
func (h *MThd) Length() uint32 {
	return uint32(6 + len(h.Extra))
}

// SetLength resizes Extra so the header's total length (6 plus len(Extra))
// equals n, clamped to [6, maxChunkLength]. Growing appends zero bytes;
// shrinking truncates Extra, discarding trailing bytes.
func (h *MThd) SetLength(n uint32) {
	if n < 6 {
		n = 6
	}
	if n > maxChunkLength {
		n = maxChunkLength
	}
	extraLen := int(n) - 6
	switch {
	case extraLen == len(h.Extra):
		return
	case extraLen < len(h.Extra):
		h.Extra = h.Extra[:extraLen]
	default:
		grown := make([]byte, extraLen)
		copy(grown, h.Extra)
		h.Extra = grown
	}
}
