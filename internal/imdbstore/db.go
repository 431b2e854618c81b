// Package imdbstore resolves credits and casts over a mapped actor/film
// database pair.
package imdbstore

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/samcharles93/sixdegrees/internal/logger"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

var ErrClosed = errors.New("imdbstore: database is closed")

// DB is the actor index and film index opened together. Offsets stored in one
// file are resolved against the other file's region.
//
// Queries may run concurrently. Close waits for in-flight queries before the
// mappings are released.
type DB struct {
	mu     sync.RWMutex
	actors *imdb.Index
	films  *imdb.Index
	dir    string
	log    logger.Logger
}

type Option func(*DB)

func WithLogger(l logger.Logger) Option {
	return func(db *DB) { db.log = l }
}

// Open maps dir/actordata and dir/moviedata. Either both files open or
// neither stays open.
func Open(dir string, opts ...Option) (*DB, error) {
	db := &DB{dir: dir, log: logger.Discard()}
	for _, opt := range opts {
		opt(db)
	}

	actors, err := imdb.OpenIndex(filepath.Join(dir, imdb.ActorFileName))
	if err != nil {
		return nil, fmt.Errorf("open actor index: %w", err)
	}
	films, err := imdb.OpenIndex(filepath.Join(dir, imdb.MovieFileName))
	if err != nil {
		_ = actors.Close()
		return nil, fmt.Errorf("open film index: %w", err)
	}
	db.actors = actors
	db.films = films

	db.log.Info("database opened", "dir", dir, "actors", actors.Count(), "films", films.Count())
	return db, nil
}

// New assembles a DB from already opened indexes. The DB takes ownership.
func New(actors, films *imdb.Index, opts ...Option) *DB {
	db := &DB{actors: actors, films: films, log: logger.Discard()}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Close releases both mappings. It is safe to call more than once.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.actors == nil {
		return nil
	}
	err := errors.Join(db.actors.Close(), db.films.Close())
	db.actors = nil
	db.films = nil
	db.log.Debug("database closed", "dir", db.dir)
	return err
}

// Dir is the directory the database was opened from.
func (db *DB) Dir() string { return db.dir }

// CreditsOf returns the films name appeared in, in on-disk order. An unknown
// actor is reported as ok == false with a nil error.
func (db *DB) CreditsOf(name string) ([]imdb.Film, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.actors == nil {
		return nil, false, ErrClosed
	}

	off, ok, err := db.actors.FindActor(name)
	if err != nil || !ok {
		return nil, false, err
	}
	rec, err := imdb.DecodeActorRecord(db.actors.Bytes(), off)
	if err != nil {
		return nil, false, fmt.Errorf("actor %q: %w", name, err)
	}

	filmData := db.films.Bytes()
	films := make([]imdb.Film, len(rec.Films))
	for i, fo := range rec.Films {
		f, err := imdb.FilmKeyAt(filmData, fo)
		if err != nil {
			return nil, false, fmt.Errorf("actor %q credit %d: %w", name, i, err)
		}
		films[i] = f
	}
	return films, true, nil
}

// CastOf returns the actors credited in film, in on-disk order. An unknown
// film is reported as ok == false with a nil error.
func (db *DB) CastOf(film imdb.Film) ([]string, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.films == nil {
		return nil, false, ErrClosed
	}

	off, ok, err := db.films.FindFilm(film)
	if err != nil || !ok {
		return nil, false, err
	}
	rec, err := imdb.DecodeFilmRecord(db.films.Bytes(), off)
	if err != nil {
		return nil, false, fmt.Errorf("film %v: %w", film, err)
	}

	actorData := db.actors.Bytes()
	cast := make([]string, len(rec.Cast))
	for i, ao := range rec.Cast {
		name, err := imdb.ActorNameAt(actorData, ao)
		if err != nil {
			return nil, false, fmt.Errorf("film %v cast member %d: %w", film, i, err)
		}
		cast[i] = string(name)
	}
	return cast, true, nil
}

// HasActor reports whether name is in the actor index.
func (db *DB) HasActor(name string) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.actors == nil {
		return false, ErrClosed
	}
	_, ok, err := db.actors.FindActor(name)
	return ok, err
}

// ActorCount is the number of actor records.
func (db *DB) ActorCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.actors == nil {
		return 0
	}
	return db.actors.Count()
}

// FilmCount is the number of film records.
func (db *DB) FilmCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.films == nil {
		return 0
	}
	return db.films.Count()
}

// ActorAt returns the i-th actor name in index (sorted) order.
func (db *DB) ActorAt(i int) (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.actors == nil {
		return "", ErrClosed
	}
	off, err := db.actors.RecordOffset(i)
	if err != nil {
		return "", err
	}
	name, err := imdb.ActorNameAt(db.actors.Bytes(), off)
	if err != nil {
		return "", err
	}
	return string(name), nil
}

// FilmAt returns the i-th film in index (sorted) order.
func (db *DB) FilmAt(i int) (imdb.Film, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.films == nil {
		return imdb.Film{}, ErrClosed
	}
	off, err := db.films.RecordOffset(i)
	if err != nil {
		return imdb.Film{}, err
	}
	return imdb.FilmKeyAt(db.films.Bytes(), off)
}

// Sizes returns the byte sizes of the actor and film files.
func (db *DB) Sizes() (actorBytes, filmBytes int) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.actors == nil {
		return 0, 0
	}
	return db.actors.Size(), db.films.Size()
}
