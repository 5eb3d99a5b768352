package serialization

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// MappedFile is a read-only memory-mapped model file exposed as a sequential reader.
// Tensor data is paged in by the OS as the stream is consumed.
type MappedFile struct {
	*io.SectionReader
	m *mmap.ReaderAt
}

// Open memory-maps the file at path.
//
// Important: Always call Close() when done to unmap the file (use defer).
func Open(path string) (*MappedFile, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &MappedFile{
		SectionReader: io.NewSectionReader(m, 0, int64(m.Len())),
		m:             m,
	}, nil
}

// Remaining returns the number of bytes not yet consumed.
func (f *MappedFile) Remaining() int64 {
	pos, _ := f.Seek(0, io.SeekCurrent)
	return f.Size() - pos
}

// Close unmaps the file.
func (f *MappedFile) Close() error {
	return f.m.Close()
}
