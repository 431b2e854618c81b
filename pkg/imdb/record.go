package imdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// ActorRecord is a decoded actor record. Films holds absolute offsets into the
// film file, in on-disk order.
type ActorRecord struct {
	Name  string
	Films []int
}

// FilmRecord is a decoded film record. Cast holds absolute offsets into the
// actor file, in on-disk order.
type FilmRecord struct {
	Film Film
	Cast []int
}

// recordLayout returns where the 16-bit count and the first cross-reference
// live, relative to the record start, for a record whose key occupies keyLen
// bytes (actor: name+NUL, film: title+NUL+year).
//
// The count is 2-byte aligned and the cross-references are 4-byte aligned:
// one pad byte follows an odd-sized key, two pad bytes follow the count when
// the running total is not a multiple of four.
func recordLayout(keyLen int) (tallyAt, refsAt int) {
	tallyAt = keyLen
	if tallyAt%2 != 0 {
		tallyAt++
	}
	refsAt = tallyAt + tallyWidth
	if refsAt%4 != 0 {
		refsAt += 2
	}
	return tallyAt, refsAt
}

// recordSize is the encoded size of a record. It is always a multiple of four.
func recordSize(keyLen, refs int) int {
	_, refsAt := recordLayout(keyLen)
	return refsAt + refs*offsetWidth
}

// ActorRecordSize returns the encoded size of an actor record.
func ActorRecordSize(name string, films int) int {
	return recordSize(len(name)+1, films)
}

// FilmRecordSize returns the encoded size of a film record.
func FilmRecordSize(title string, cast int) int {
	return recordSize(len(title)+2, cast)
}

func need(data []byte, off, n int, field string) error {
	if off < 0 || n < 0 || off > len(data) || len(data)-off < n {
		return &DecodeError{Offset: off, Field: field, Need: n, Size: len(data)}
	}
	return nil
}

// cstringAt returns the bytes of the NUL-terminated string starting at off,
// without the terminator. The returned slice aliases data.
func cstringAt(data []byte, off int, field string) ([]byte, error) {
	if err := need(data, off, 1, field); err != nil {
		return nil, err
	}
	n := bytes.IndexByte(data[off:], 0)
	if n < 0 {
		return nil, &DecodeError{Offset: off, Field: field + " terminator", Size: len(data)}
	}
	return data[off : off+n], nil
}

// ActorNameAt returns the name bytes of the actor record at off without
// decoding the rest of the record. The slice aliases data.
func ActorNameAt(data []byte, off int) ([]byte, error) {
	return cstringAt(data, off, "actor name")
}

// FilmKeyAt decodes only the (title, year) key of the film record at off.
func FilmKeyAt(data []byte, off int) (Film, error) {
	title, err := cstringAt(data, off, "film title")
	if err != nil {
		return Film{}, err
	}
	yearAt := off + len(title) + 1
	if err := need(data, yearAt, 1, "film year"); err != nil {
		return Film{}, err
	}
	return Film{Title: string(title), Year: baseYear + int(data[yearAt])}, nil
}

// DecodeActorRecord decodes the actor record starting at off.
func DecodeActorRecord(data []byte, off int) (ActorRecord, error) {
	name, err := ActorNameAt(data, off)
	if err != nil {
		return ActorRecord{}, err
	}
	films, err := decodeRefs(data, off, len(name)+1, "film")
	if err != nil {
		return ActorRecord{}, err
	}
	return ActorRecord{Name: string(name), Films: films}, nil
}

// DecodeFilmRecord decodes the film record starting at off.
func DecodeFilmRecord(data []byte, off int) (FilmRecord, error) {
	film, err := FilmKeyAt(data, off)
	if err != nil {
		return FilmRecord{}, err
	}
	cast, err := decodeRefs(data, off, len(film.Title)+2, "cast")
	if err != nil {
		return FilmRecord{}, err
	}
	return FilmRecord{Film: film, Cast: cast}, nil
}

func decodeRefs(data []byte, start, keyLen int, what string) ([]int, error) {
	tallyAt, refsAt := recordLayout(keyLen)
	tallyAt += start
	refsAt += start

	if err := need(data, tallyAt, tallyWidth, what+" count"); err != nil {
		return nil, err
	}
	count := int(binary.NativeEndian.Uint16(data[tallyAt : tallyAt+tallyWidth]))
	if err := need(data, refsAt, count*offsetWidth, what+" offsets"); err != nil {
		return nil, err
	}

	refs := make([]int, count)
	for i := range refs {
		p := refsAt + i*offsetWidth
		v := int32(binary.NativeEndian.Uint32(data[p : p+offsetWidth]))
		if v < 0 {
			return nil, &DecodeError{Offset: p, Field: what + " offset", Size: len(data)}
		}
		refs[i] = int(v)
	}
	return refs, nil
}

// AppendActorRecord appends the encoding of an actor record to dst.
// films are absolute offsets into the film file.
func AppendActorRecord(dst []byte, name string, films []int) ([]byte, error) {
	if err := validateKey(name, "actor name"); err != nil {
		return dst, err
	}
	key := make([]byte, 0, len(name)+1)
	key = append(key, name...)
	key = append(key, 0)
	return appendRecord(dst, key, films)
}

// AppendFilmRecord appends the encoding of a film record to dst.
// cast entries are absolute offsets into the actor file.
func AppendFilmRecord(dst []byte, film Film, cast []int) ([]byte, error) {
	if err := validateKey(film.Title, "film title"); err != nil {
		return dst, err
	}
	if film.Year < MinYear || film.Year > MaxYear {
		return dst, fmt.Errorf("imdb: film %q: year %d outside %d..%d", film.Title, film.Year, MinYear, MaxYear)
	}
	key := make([]byte, 0, len(film.Title)+2)
	key = append(key, film.Title...)
	key = append(key, 0, byte(film.Year-baseYear))
	return appendRecord(dst, key, cast)
}

func validateKey(s, field string) error {
	if s == "" {
		return fmt.Errorf("imdb: %s must be non-empty", field)
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("imdb: %s %q contains a NUL byte", field, s)
	}
	return nil
}

func appendRecord(dst, key []byte, refs []int) ([]byte, error) {
	if len(refs) > MaxCredits {
		return dst, fmt.Errorf("imdb: %d cross-references exceed the record limit of %d", len(refs), MaxCredits)
	}
	for _, r := range refs {
		if r < 0 || r > math.MaxInt32 {
			return dst, fmt.Errorf("imdb: cross-reference offset %d out of range", r)
		}
	}

	start := len(dst)
	tallyAt, refsAt := recordLayout(len(key))
	dst = append(dst, key...)
	for len(dst)-start < tallyAt {
		dst = append(dst, 0)
	}
	dst = binary.NativeEndian.AppendUint16(dst, uint16(len(refs)))
	for len(dst)-start < refsAt {
		dst = append(dst, 0)
	}
	for _, r := range refs {
		dst = binary.NativeEndian.AppendUint32(dst, uint32(int32(r)))
	}
	return dst, nil
}
