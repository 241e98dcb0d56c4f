// This file contains the variable-length quantity (VLQ) codec: MIDI's
// base-128 big-endian encoding for non-negative integers, used for both
// delta-times and meta/sysex payload lengths.
package midi

// MaxVLQValue is the largest value representable by a 4-byte VLQ field:
// 2**28 - 1.
const MaxVLQValue = 0x0fffffff

// maxVLQBytes is the largest number of bytes a VLQ field may occupy.
const maxVLQBytes = 4

// ReadVLQ reads a VLQ from the front of data. It consumes at most 4 bytes.
// The returned n is the number of bytes consumed (0 if data is empty).
// valid is true iff a terminating byte (high bit clear) was reached within
// those 4 bytes; if valid is false the field was truncated (data ran out,
// or the 4th byte still had its continuation bit set) and value/n describe
// only how far the reader got.
func ReadVLQ(data []byte) (value uint32, n int, valid bool) {
	var uval uint32
	var last byte
	for n < len(data) && n < maxVLQBytes {
		last = data[n]
		uval += uint32(last & 0x7f)
		n++
		if (last&0x80) != 0 && n < maxVLQBytes {
			uval <<= 7
		} else {
			break
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	valid = (last & 0x80) == 0
	return uval, n, valid
}

// AdvanceVLQ returns the number of bytes to skip past the VLQ field at the
// front of data, without fully decoding it: at most 4 bytes, stopping as
// soon as a byte with its high bit clear is seen. If data is shorter than
// the field (truncated), the returned count is len(data).
func AdvanceVLQ(data []byte) int {
	n := 0
	for n < len(data) && n < maxVLQBytes {
		b := data[n]
		n++
		if (b & 0x80) == 0 {
			break
		}
	}
	return n
}

// VLQFieldSize returns the number of bytes EncodeVLQ would produce for
// value, after clamping value to [0, MaxVLQValue].
func VLQFieldSize(value uint32) int {
	value = clampVLQ(value)
	n := 1
	for value >>= 7; value != 0; value >>= 7 {
		n++
	}
	return n
}

// clampVLQ clamps value into the range a VLQ field can encode. Since value
// is already unsigned, only the upper bound needs clamping; callers that
// start from a signed quantity clamp negative values to 0 before calling.
func clampVLQ(value uint32) uint32 {
	if value > MaxVLQValue {
		return MaxVLQValue
	}
	return value
}

// clampToVLQ clamps a signed value into [0, MaxVLQValue], for callers (like
// the delta-time codec) that may be handed a negative quantity.
func clampToVLQ(value int64) uint32 {
	if value < 0 {
		return 0
	}
	if value > MaxVLQValue {
		return MaxVLQValue
	}
	return uint32(value)
}

// AppendVLQ clamps value to [0, MaxVLQValue] and appends its canonical VLQ
// encoding (the minimum number of bytes, continuation bits set on all but
// the last) to dst, returning the extended slice.
func AppendVLQ(dst []byte, value uint32) []byte {
	value = clampVLQ(value)
	var buf [maxVLQBytes]byte
	i := maxVLQBytes
	for {
		i--
		buf[i] = byte(value & 0x7f)
		value >>= 7
		if value == 0 {
			break
		}
	}
	for j := i; j < maxVLQBytes-1; j++ {
		buf[j] |= 0x80
	}
	return append(dst, buf[i:]...)
}

// EncodeVLQ clamps value to [0, MaxVLQValue] and returns its canonical VLQ
// encoding as a freshly allocated slice.
func EncodeVLQ(value uint32) []byte {
	return AppendVLQ(nil, value)
}
