package midi

// smallCapacity is the number of bytes smallBytes can hold inline before it
// must spill to the heap. Chosen so a delta-time VLQ (up to 4 bytes) plus a
// status byte plus two data bytes -- the overwhelmingly common event, a
// channel message -- always fits inline, with headroom to spare.
const smallCapacity = 23

// maxContainerSize is the largest size any smallBytes may grow to: a VLQ
// length field can describe at most this many payload bytes, so there is no
// point supporting a larger container.
const maxContainerSize = MaxVLQValue

// smallBytes is a small-buffer-optimized owning byte container: values up
// to smallCapacity bytes are stored inline in the struct; larger values
// spill to a heap-backed slice. big == nil is the discriminant for "this
// container is in inline mode" -- the Go rendering of the tagged union
// (small_t/big_t) the source library uses, letting a plain slice stand in
// for the heap pointer/length/capacity triple.
//
// smallBytes has non-trivial copy semantics: copying a value whose big
// field is non-nil copies the slice header, not the backing array, so both
// copies alias the same bytes until one of them grows past its current
// capacity. Callers that need an independent copy of a big-mode container
// must call clone(). Inline-mode containers copy by value with no aliasing,
// since the payload lives in the struct itself.
type smallBytes struct {
	inlineLen uint8
	inline    [smallCapacity]byte
	big       []byte
}

func (s *smallBytes) isBig() bool {
	return s.big != nil
}

// size returns the number of bytes currently stored.
func (s *smallBytes) size() int {
	if s.isBig() {
		return len(s.big)
	}
	return int(s.inlineLen)
}

// cap returns the number of bytes that can be stored before the next grow.
func (s *smallBytes) cap() int {
	if s.isBig() {
		return cap(s.big)
	}
	return smallCapacity
}

// bytes returns the current contents. The returned slice aliases internal
// storage and is invalidated by any subsequent mutating call.
func (s *smallBytes) bytes() []byte {
	if s.isBig() {
		return s.big
	}
	return s.inline[:s.inlineLen]
}

func clampSize(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxContainerSize {
		return maxContainerSize
	}
	return n
}

// resize grows or shrinks the container to n bytes (clamped to
// [0, maxContainerSize]), preserving existing bytes at indices below
// min(old size, new size). A container already in big mode never demotes
// back to inline, even if n would fit -- per spec §4.4, "never shrink to
// small"; reallocation only happens when n exceeds the current capacity.
func (s *smallBytes) resize(n int) {
	n = clampSize(n)
	if s.isBig() {
		if n > cap(s.big) {
			grown := make([]byte, n, growCapacity(cap(s.big), n))
			copy(grown, s.big)
			s.big = grown
		} else {
			s.big = s.big[:n]
		}
		return
	}
	if n <= smallCapacity {
		s.inlineLen = uint8(n)
		return
	}
	buf := make([]byte, n)
	copy(buf, s.inline[:s.inlineLen])
	s.big = buf
	s.inlineLen = 0
}

// resizeNoCopy behaves like resize but does not guarantee old bytes survive
// the call -- used by the parser, which immediately overwrites the whole
// buffer anyway.
func (s *smallBytes) resizeNoCopy(n int) {
	n = clampSize(n)
	if s.isBig() {
		if n > cap(s.big) {
			s.big = make([]byte, n)
		} else {
			s.big = s.big[:n]
		}
		return
	}
	if n <= smallCapacity {
		s.inlineLen = uint8(n)
		return
	}
	s.big = make([]byte, n)
	s.inlineLen = 0
}

// reserve grows capacity to at least n bytes without changing size.
func (s *smallBytes) reserve(n int) {
	n = clampSize(n)
	if n <= s.cap() {
		return
	}
	oldSize := s.size()
	if s.isBig() {
		grown := make([]byte, oldSize, n)
		copy(grown, s.big)
		s.big = grown
		return
	}
	grown := make([]byte, oldSize, n)
	copy(grown, s.inline[:s.inlineLen])
	s.big = grown
	s.inlineLen = 0
}

// growCapacity picks the next capacity when a big container must grow past
// its current allocation: double it, or use need if that's larger, with a
// floor of smallCapacity so the first spill to the heap isn't pathologically
// small.
func growCapacity(current, need int) int {
	next := current * 2
	if next < smallCapacity {
		next = smallCapacity
	}
	if next < need {
		next = need
	}
	return next
}

// pushByte appends a single byte, growing capacity (by doubling) if full.
func (s *smallBytes) pushByte(b byte) {
	size := s.size()
	if size >= s.cap() {
		s.reserve(growCapacity(s.cap(), size+1))
	}
	if s.isBig() {
		s.big = append(s.big[:size], b)
		return
	}
	s.inline[size] = b
	s.inlineLen++
}

// clear sets size to 0 without releasing any heap allocation.
func (s *smallBytes) clear() {
	if s.isBig() {
		s.big = s.big[:0]
		return
	}
	s.inlineLen = 0
}

// clone returns a deep copy: the result never aliases s's backing array,
// and adopts the smallest representation that fits s's size (a big
// container copied into a clone that fits inline is demoted), matching the
// source library's copy-constructor semantics.
func (s *smallBytes) clone() smallBytes {
	var out smallBytes
	out.resizeNoCopy(s.size())
	copy(out.bytes(), s.bytes())
	return out
}

// equalBytes reports whether s and other store byte-for-byte identical
// contents.
func (s *smallBytes) equalBytes(other *smallBytes) bool {
	a, b := s.bytes(), other.bytes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
