// Package pathfinder finds the shortest co-starring chain between two actors.
package pathfinder

import (
	"time"

	"github.com/samcharles93/sixdegrees/internal/logger"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

// MaxHops bounds a chain at six people. Paths are expanded while they have at
// most MaxHops hops; the longer paths that produces are enqueued but never
// expanded, and never reported as a match.
const MaxHops = 5

// Credits is the lookup surface the search consumes. An unknown key is
// reported as ok == false, not as an error.
type Credits interface {
	CreditsOf(actor string) ([]imdb.Film, bool, error)
	CastOf(film imdb.Film) ([]string, bool, error)
}

// Result is the outcome of one search. Path is nil when Found is false.
type Result struct {
	Path  *Path
	Found bool

	// ActorsSeen and FilmsSeen are the sizes of the two seen-sets when the
	// search stopped; Expanded counts dequeued paths.
	ActorsSeen int
	FilmsSeen  int
	Expanded   int
	Elapsed    time.Duration
}

type Finder struct {
	credits Credits
	log     logger.Logger
	now     func() time.Time
}

type Option func(*Finder)

func WithLogger(l logger.Logger) Option {
	return func(f *Finder) { f.log = l }
}

func New(credits Credits, opts ...Option) *Finder {
	f := &Finder{credits: credits, log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindShortestPath returns a shortest chain from source to target of at most
// six people. ok is false when no such chain exists; err is only set when the
// database could not be read.
func (f *Finder) FindShortestPath(source, target string) (*Path, bool, error) {
	res, err := f.Search(source, target)
	if err != nil {
		return nil, false, err
	}
	return res.Path, res.Found, nil
}

// Search runs a breadth-first search over the actor/film graph.
//
// The frontier is FIFO and each enqueued path is exactly one hop longer than
// its parent, so paths leave the frontier in non-decreasing length and the
// first path reaching target is a shortest one. The depth bound is checked
// when a path is dequeued. Ties between equal-length paths follow the on-disk
// order of credit and cast lists.
func (f *Finder) Search(source, target string) (Result, error) {
	start := f.now()
	if source == target {
		return Result{Path: NewPath(source), Found: true, ActorsSeen: 1}, nil
	}

	frontier := newQueue()
	seenActors := map[string]struct{}{source: {}}
	seenFilms := map[imdb.Film]struct{}{}
	expanded := 0

	finish := func(p *Path) Result {
		res := Result{
			Path:       p,
			Found:      p != nil,
			ActorsSeen: len(seenActors),
			FilmsSeen:  len(seenFilms),
			Expanded:   expanded,
			Elapsed:    f.now().Sub(start),
		}
		f.log.Debug("search finished",
			"source", source, "target", target, "found", res.Found,
			"hops", p.lenOrZero(), "expanded", expanded,
			"actors_seen", res.ActorsSeen, "films_seen", res.FilmsSeen,
			"elapsed", res.Elapsed)
		return res
	}

	frontier.push(NewPath(source))

	for frontier.len() > 0 && frontier.front().Len() <= MaxHops {
		path := frontier.pop()
		expanded++

		films, _, err := f.credits.CreditsOf(path.Last())
		if err != nil {
			return Result{}, err
		}
		for _, film := range films {
			if _, seen := seenFilms[film]; seen {
				continue
			}
			seenFilms[film] = struct{}{}

			cast, _, err := f.credits.CastOf(film)
			if err != nil {
				return Result{}, err
			}
			for _, costar := range cast {
				if _, seen := seenActors[costar]; seen {
					continue
				}
				seenActors[costar] = struct{}{}
				next := path.Extend(film, costar)
				if costar == target && next.Len() <= MaxHops {
					return finish(next), nil
				}
				frontier.push(next)
			}
		}
	}
	return finish(nil), nil
}

func (p *Path) lenOrZero() int {
	if p == nil {
		return 0
	}
	return p.hops
}
