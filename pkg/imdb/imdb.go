// Package imdb implements the on-disk actor/film cross-reference format.
//
// A database is a pair of files. Each starts with a native-endian int32 record
// count n, followed by n int32 offsets sorted by record key, followed by the
// variable-length records those offsets point at. Actor records reference
// film records by absolute offset into the film file and vice versa, so the
// two files are only meaningful together.
package imdb

// File names inside a database directory. These must never change.
const (
	ActorFileName = "actordata"
	MovieFileName = "moviedata"
)

const (
	countWidth  = 4
	offsetWidth = 4
	tallyWidth  = 2

	// baseYear is subtracted from a film's year before it is stored in a single byte.
	baseYear = 1900
	// MinYear and MaxYear bound what a film record can encode.
	MinYear = baseYear
	MaxYear = baseYear + 255

	// MaxCredits is the largest film or cast list a record can hold.
	MaxCredits = 1<<16 - 1
)
