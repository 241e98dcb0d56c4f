package midi

// DeltaTime is the number of ticks elapsed since the previous event in a
// track. It is a VLQ value, so it is restricted to [0, MaxVLQValue].
type DeltaTime uint32

// IsValidDeltaTime reports whether x lies within [0, MaxVLQValue].
func IsValidDeltaTime(x int64) bool {
	return x >= 0 && x <= MaxVLQValue
}

// ClampDeltaTime clamps x into [0, MaxVLQValue].
func ClampDeltaTime(x int64) DeltaTime {
	return DeltaTime(clampToVLQ(x))
}

// DeltaTimeFieldSize returns the number of bytes the VLQ encoding of x would
// occupy, after clamping.
func DeltaTimeFieldSize(x int64) int {
	return VLQFieldSize(uint32(ClampDeltaTime(x)))
}

// EncodeDeltaTime clamps x into [0, MaxVLQValue] and appends its VLQ
// encoding to dst.
func EncodeDeltaTime(dst []byte, x int64) []byte {
	return AppendVLQ(dst, uint32(ClampDeltaTime(x)))
}
