package imdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
)

// Index is a view over one database file: the record count, the sorted
// record pointers, and the records they point at.
//
// Records are variable length, so the sorted array holds pointers to records
// rather than records. Lookups compare against the key stored at the
// pointed-to record, never against the pointer value.
type Index struct {
	m    *Mapping
	data []byte
	n    int
}

// OpenIndex maps path and validates its pointer table.
func OpenIndex(path string) (*Index, error) {
	m, err := Map(path)
	if err != nil {
		return nil, err
	}
	ix, err := NewIndex(m.Data)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ix.m = m
	return ix, nil
}

// NewIndex returns an index over an in-memory database file. data must not be
// modified while the index is in use.
func NewIndex(data []byte) (*Index, error) {
	if err := need(data, 0, countWidth, "record count"); err != nil {
		return nil, err
	}
	n := int(int32(binary.NativeEndian.Uint32(data[:countWidth])))
	if n < 0 {
		return nil, &DecodeError{Offset: 0, Field: "record count", Size: len(data)}
	}
	if err := need(data, countWidth, n*offsetWidth, "record pointers"); err != nil {
		return nil, err
	}
	return &Index{data: data, n: n}, nil
}

// Count is the number of records in the file.
func (ix *Index) Count() int {
	return ix.n
}

// Bytes returns the whole file region. Offsets decoded from the sibling file
// resolve against it. The slice must not be retained after Close.
func (ix *Index) Bytes() []byte {
	return ix.data
}

// Size is the file size in bytes.
func (ix *Index) Size() int {
	return len(ix.data)
}

// Path is the file backing the index, or "" for in-memory indexes.
func (ix *Index) Path() string {
	return ix.m.Path()
}

// RecordOffset returns the absolute offset stored in pointer slot i.
func (ix *Index) RecordOffset(i int) (int, error) {
	if i < 0 || i >= ix.n {
		return 0, fmt.Errorf("imdb: record slot %d out of range [0, %d)", i, ix.n)
	}
	p := countWidth + i*offsetWidth
	off := int(int32(binary.NativeEndian.Uint32(ix.data[p : p+offsetWidth])))
	if off < 0 || off >= len(ix.data) {
		return 0, &DecodeError{Offset: p, Field: "record pointer", Size: len(ix.data)}
	}
	return off, nil
}

// Close releases the backing mapping, if any.
func (ix *Index) Close() error {
	if ix == nil {
		return nil
	}
	ix.data = nil
	ix.n = 0
	err := ix.m.Close()
	ix.m = nil
	return err
}

// Search binary-searches the pointer slots of ix for key. decode reads the key
// of the record at an absolute offset in ix's region; compare is a three-way
// ordering consistent with how the file was sorted. It returns the offset of
// the matching record.
//
// A decode failure stops the search and is returned.
func Search[K any](ix *Index, key K, decode func(data []byte, off int) (K, error), compare func(a, b K) int) (int, bool, error) {
	var searchErr error
	i, found := sort.Find(ix.n, func(i int) int {
		if searchErr != nil {
			return 0
		}
		off, err := ix.RecordOffset(i)
		if err != nil {
			searchErr = err
			return 0
		}
		k, err := decode(ix.data, off)
		if err != nil {
			searchErr = err
			return 0
		}
		return compare(key, k)
	})
	if searchErr != nil {
		return 0, false, searchErr
	}
	if !found {
		return 0, false, nil
	}
	off, err := ix.RecordOffset(i)
	if err != nil {
		return 0, false, err
	}
	return off, true, nil
}

// FindActor returns the offset of the actor record named name.
func (ix *Index) FindActor(name string) (int, bool, error) {
	return Search(ix, []byte(name), ActorNameAt, bytes.Compare)
}

// FindFilm returns the offset of the film record for film.
func (ix *Index) FindFilm(film Film) (int, bool, error) {
	return Search(ix, film, FilmKeyAt, Compare)
}
