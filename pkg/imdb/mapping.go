package imdb

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Mapping is a read-only view of one database file.
type Mapping struct {
	Data    []byte
	path    string
	mmapped bool
}

// Map maps a database file read-only.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned mapping must be closed to release it.
func Map(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MapError{Path: path, Op: "open", Err: err}
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, &MapError{Path: path, Op: "stat", Err: err}
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, &MapError{Path: path, Op: "stat", Err: errors.New("file too large to map")}
	}
	size := int(size64)

	// mmap rejects zero-length mappings; an empty file is caught by OpenIndex.
	if size == 0 {
		return &Mapping{Data: []byte{}, path: path}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &Mapping{Data: data, path: path, mmapped: true}, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, &MapError{Path: path, Op: "read", Err: err}
	}
	return &Mapping{Data: data, path: path}, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Path is the file the mapping was created from.
func (m *Mapping) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

// Size is the mapped length in bytes.
func (m *Mapping) Size() int {
	if m == nil {
		return 0
	}
	return len(m.Data)
}

// Close releases the mapping. Slices obtained from Data must not be used
// afterwards.
func (m *Mapping) Close() error {
	if m == nil || m.Data == nil {
		return nil
	}
	var err error
	if m.mmapped {
		err = unix.Munmap(m.Data)
	}
	m.Data = nil
	m.mmapped = false
	return err
}
