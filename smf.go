package midi

import "fmt"

// Chunk is one chunk of a standard MIDI file, in the order it appeared on
// disk. Exactly one of MThd, Track, or Raw is meaningful, selected by
// Header.ID. Unrecognized chunk kinds are preserved as Raw bytes rather
// than rejected or dropped, so a file containing vendor extension chunks
// round-trips unchanged.
type Chunk struct {
	Header ChunkHeader
	MThd   *MThd
	Track  *Track
	// Raw holds the chunk body verbatim when Header.ID == ChunkUnknown.
	Raw []byte
}

// SMFFile is a parsed standard MIDI file: every chunk it contained, in
// file order, including any chunks this package doesn't interpret.
type SMFFile struct {
	Chunks []Chunk
}

// SMFErrorCode identifies which stage of parsing an SMF file failed.
type SMFErrorCode uint8

const (
	// ErrSMFChunkHeader means a chunk header failed to parse; see Header.
	ErrSMFChunkHeader SMFErrorCode = iota + 1
	// ErrSMFChunkBody means a chunk's declared length ran past the end of
	// the file.
	ErrSMFChunkBody
	// ErrSMFMThd means an MThd chunk's body failed to parse; see MThd.
	ErrSMFMThd
	// ErrSMFTrack means an MTrk chunk's body failed to parse; see Track.
	ErrSMFTrack
)

func (c SMFErrorCode) String() string {
	switch c {
	case ErrSMFChunkHeader:
		return "chunk header"
	case ErrSMFChunkBody:
		return "chunk body runs past end of file"
	case ErrSMFMThd:
		return "MThd chunk"
	case ErrSMFTrack:
		return "MTrk chunk"
	default:
		return "? SMFErrorCode"
	}
}

// SMFError describes why ParseSMF failed.
type SMFError struct {
	Code SMFErrorCode
	// ChunkIndex is the 0-based index of the chunk that failed.
	ChunkIndex int
	Header     *ChunkHeaderError
	MThd       *MThdError
	Track      *TrackError
}

func (e *SMFError) Error() string {
	switch {
	case e.Header != nil:
		return fmt.Sprintf("midi: parse SMF: chunk %d: %s: %s", e.ChunkIndex, e.Code, e.Header)
	case e.MThd != nil:
		return fmt.Sprintf("midi: parse SMF: chunk %d: %s: %s", e.ChunkIndex, e.Code, e.MThd)
	case e.Track != nil:
		return fmt.Sprintf("midi: parse SMF: chunk %d: %s: %s", e.ChunkIndex, e.Code, e.Track)
	default:
		return fmt.Sprintf("midi: parse SMF: chunk %d: %s", e.ChunkIndex, e.Code)
	}
}

// ParseSMF parses a complete standard MIDI file from data.
func ParseSMF(data []byte) (SMFFile, *SMFError) {
	var file SMFFile
	offset := 0
	for offset < len(data) {
		hdr, herr := ReadChunkHeader(data[offset:])
		if herr != nil {
			return SMFFile{}, &SMFError{Code: ErrSMFChunkHeader, ChunkIndex: len(file.Chunks), Header: herr}
		}
		bodyStart := offset + chunkHeaderSize
		bodyEnd := bodyStart + int(hdr.Length)
		if bodyEnd > len(data) {
			return SMFFile{}, &SMFError{Code: ErrSMFChunkBody, ChunkIndex: len(file.Chunks)}
		}
		body := data[bodyStart:bodyEnd]

		chunk := Chunk{Header: hdr}
		switch hdr.ID {
		case ChunkMThd:
			parsed, merr := ReadMThd(body)
			if merr != nil {
				return SMFFile{}, &SMFError{Code: ErrSMFMThd, ChunkIndex: len(file.Chunks), MThd: merr}
			}
			chunk.MThd = &parsed
		case ChunkMTrk:
			parsed, terr := ReadTrack(body)
			if terr != nil {
				return SMFFile{}, &SMFError{Code: ErrSMFTrack, ChunkIndex: len(file.Chunks), Track: terr}
			}
			chunk.Track = &parsed
		default:
			chunk.Raw = append([]byte(nil), body...)
		}
		file.Chunks = append(file.Chunks, chunk)
		offset = bodyEnd
	}
	return file, nil
}

// AppendTo appends the complete encoded file (every chunk, in order) to
// dst.
func (f *SMFFile) AppendTo(dst []byte) []byte {
	for i := range f.Chunks {
		c := &f.Chunks[i]
		switch {
		case c.MThd != nil:
			dst = c.MThd.AppendChunk(dst)
		case c.Track != nil:
			dst = c.Track.AppendChunk(dst)
		default:
			dst = AppendChunkHeader(dst, c.Header.RawID, uint32(len(c.Raw)))
			dst = append(dst, c.Raw...)
		}
	}
	return dst
}

// Bytes returns the complete encoded file as a freshly allocated slice.
func (f *SMFFile) Bytes() []byte {
	return f.AppendTo(nil)
}

// Header returns the file's MThd chunk, or nil if it has none (a
// malformed or incomplete file; ParseSMF does not itself require one).
func (f *SMFFile) Header() *MThd {
	for i := range f.Chunks {
		if f.Chunks[i].MThd != nil {
			return f.Chunks[i].MThd
		}
	}
	return nil
}

// Tracks returns every MTrk chunk's Track, in file order.
func (f *SMFFile) Tracks() []*Track {
	var out []*Track
	for i := range f.Chunks {
		if f.Chunks[i].Track != nil {
			out = append(out, f.Chunks[i].Track)
		}
	}
	return out
}

// NewSMFFile builds an SMFFile from a header and a set of tracks, with no
// extra chunks. format is chosen automatically: 0 if there is exactly one
// track, 1 otherwise.
func NewSMFFile(division TimeDivision, tracks []Track) SMFFile {
	format := uint16(1)
	if len(tracks) == 1 {
		format = 0
	}
	mthd := MThd{Format: format, NumTracks: uint16(len(tracks)), Division: division}
	file := SMFFile{Chunks: make([]Chunk, 0, len(tracks)+1)}
	file.Chunks = append(file.Chunks, Chunk{Header: ChunkHeader{ID: ChunkMThd}, MThd: &mthd})
	for i := range tracks {
		t := tracks[i]
		file.Chunks = append(file.Chunks, Chunk{Header: ChunkHeader{ID: ChunkMTrk}, Track: &t})
	}
	return file
}
