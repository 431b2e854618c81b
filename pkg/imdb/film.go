package imdb

import (
	"cmp"
	"strconv"
	"strings"
)

// Film identifies a film record. Two films are the same film iff both fields
// match, so Film is usable directly as a map key.
type Film struct {
	Title string
	Year  int
}

// Compare orders films by title (byte-wise) and then by year.
// It returns -1, 0 or +1.
func Compare(a, b Film) int {
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return cmp.Compare(a.Year, b.Year)
}

// Less reports whether f sorts before o.
func (f Film) Less(o Film) bool { return Compare(f, o) < 0 }

func (f Film) String() string {
	return f.Title + " (" + strconv.Itoa(f.Year) + ")"
}
