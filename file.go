package midi

import (
	"fmt"
	"os"
)

// ReadSMFFile reads and parses the standard MIDI file at path.
func ReadSMFFile(path string) (SMFFile, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return SMFFile{}, fmt.Errorf("midi: read %s: %w", path, e)
	}
	file, perr := ParseSMF(data)
	if perr != nil {
		return SMFFile{}, fmt.Errorf("midi: parse %s: %w", path, perr)
	}
	return file, nil
}

// WriteFile encodes f and writes it to path, creating or truncating the
// file as needed.
func (f *SMFFile) WriteFile(path string) error {
	if e := os.WriteFile(path, f.Bytes(), 0644); e != nil {
		return fmt.Errorf("midi: write %s: %w", path, e)
	}
	return nil
}
