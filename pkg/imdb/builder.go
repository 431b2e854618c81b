package imdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
)

// Builder assembles a consistent actor/film file pair from credits.
//
// Cross-references are written in the order credits were added, which is the
// order CreditsOf and CastOf later return them in.
type Builder struct {
	actors  map[string][]Film
	films   map[Film][]string
	credits map[credit]struct{}
}

type credit struct {
	actor string
	film  Film
}

func NewBuilder() *Builder {
	return &Builder{
		actors:  make(map[string][]Film),
		films:   make(map[Film][]string),
		credits: make(map[credit]struct{}),
	}
}

// AddActor registers an actor even if it has no credits.
func (b *Builder) AddActor(name string) {
	if _, ok := b.actors[name]; !ok {
		b.actors[name] = nil
	}
}

// AddFilm registers a film even if it has no cast.
func (b *Builder) AddFilm(film Film) {
	if _, ok := b.films[film]; !ok {
		b.films[film] = nil
	}
}

// AddCredit records that actor appeared in film. Duplicate credits are ignored.
func (b *Builder) AddCredit(actor string, film Film) {
	c := credit{actor: actor, film: film}
	if _, ok := b.credits[c]; ok {
		return
	}
	b.credits[c] = struct{}{}
	b.actors[actor] = append(b.actors[actor], film)
	b.films[film] = append(b.films[film], actor)
}

// Actors is the number of distinct actors added so far.
func (b *Builder) Actors() int { return len(b.actors) }

// Films is the number of distinct films added so far.
func (b *Builder) Films() int { return len(b.films) }

// Encode lays out both files. Record sizes do not depend on offset values,
// so every record position is computed before any cross-reference is written.
func (b *Builder) Encode() (actorData, filmData []byte, err error) {
	names := make([]string, 0, len(b.actors))
	for name := range b.actors {
		names = append(names, name)
	}
	slices.Sort(names)

	films := make([]Film, 0, len(b.films))
	for f := range b.films {
		films = append(films, f)
	}
	slices.SortFunc(films, Compare)

	actorOff := make(map[string]int, len(names))
	pos := countWidth + len(names)*offsetWidth
	for _, name := range names {
		actorOff[name] = pos
		pos += ActorRecordSize(name, len(b.actors[name]))
	}
	actorSize := pos

	filmOff := make(map[Film]int, len(films))
	pos = countWidth + len(films)*offsetWidth
	for _, f := range films {
		filmOff[f] = pos
		pos += FilmRecordSize(f.Title, len(b.films[f]))
	}
	filmSize := pos

	if actorSize > math.MaxInt32 || filmSize > math.MaxInt32 {
		return nil, nil, fmt.Errorf("imdb: database too large (actors %d bytes, films %d bytes)", actorSize, filmSize)
	}

	actorData = make([]byte, 0, actorSize)
	actorData = binary.NativeEndian.AppendUint32(actorData, uint32(len(names)))
	for _, name := range names {
		actorData = binary.NativeEndian.AppendUint32(actorData, uint32(actorOff[name]))
	}
	for _, name := range names {
		refs := make([]int, len(b.actors[name]))
		for i, f := range b.actors[name] {
			refs[i] = filmOff[f]
		}
		if actorData, err = AppendActorRecord(actorData, name, refs); err != nil {
			return nil, nil, err
		}
	}

	filmData = make([]byte, 0, filmSize)
	filmData = binary.NativeEndian.AppendUint32(filmData, uint32(len(films)))
	for _, f := range films {
		filmData = binary.NativeEndian.AppendUint32(filmData, uint32(filmOff[f]))
	}
	for _, f := range films {
		refs := make([]int, len(b.films[f]))
		for i, name := range b.films[f] {
			refs[i] = actorOff[name]
		}
		if filmData, err = AppendFilmRecord(filmData, f, refs); err != nil {
			return nil, nil, err
		}
	}

	return actorData, filmData, nil
}

// WriteDir encodes the database and writes both files into dir, creating it
// if needed. Each file is written to a temporary name and renamed into place.
func (b *Builder) WriteDir(dir string) error {
	actorData, filmData, err := b.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(dir, ActorFileName), actorData); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, MovieFileName), filmData)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if _, err := bytes.NewReader(data).WriteTo(tmp); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
