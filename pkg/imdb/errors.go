package imdb

import (
	"errors"
	"fmt"
)

var (
	ErrMap    = errors.New("imdb: database file could not be mapped")
	ErrDecode = errors.New("imdb: corrupt database record")
)

// MapError reports a failure to open, stat or map a database file.
type MapError struct {
	Path string
	Op   string
	Err  error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("imdb: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

func (e *MapError) Is(target error) bool { return target == ErrMap }

// DecodeError reports a read that would fall outside the mapped region or a
// field whose value cannot be valid.
type DecodeError struct {
	Offset int
	Field  string
	Need   int
	Size   int
}

func (e *DecodeError) Error() string {
	if e.Need > 0 {
		return fmt.Sprintf("imdb: corrupt record: %s at offset %d needs %d bytes, region is %d bytes",
			e.Field, e.Offset, e.Need, e.Size)
	}
	return fmt.Sprintf("imdb: corrupt record: invalid %s at offset %d (region is %d bytes)",
		e.Field, e.Offset, e.Size)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }
