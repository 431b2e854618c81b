package pathfinder

import (
	"fmt"
	"strings"

	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

// Connection is one hop: From and To both appeared in Film.
type Connection struct {
	From string
	Film imdb.Film
	To   string
}

// Path is a source actor followed by zero or more (film, actor) hops.
//
// Paths are immutable and share their prefix: Extend links a new node to its
// parent instead of copying history, so every frontier entry costs O(1).
// The zero-hop path is the node with a nil parent.
type Path struct {
	parent *Path
	film   imdb.Film
	actor  string
	hops   int
}

// NewPath returns the zero-hop path containing only source.
func NewPath(source string) *Path {
	return &Path{actor: source}
}

// Extend returns a new path one hop longer. p is unchanged.
func (p *Path) Extend(film imdb.Film, actor string) *Path {
	return &Path{parent: p, film: film, actor: actor, hops: p.hops + 1}
}

// Len is the number of hops.
func (p *Path) Len() int { return p.hops }

// Last is the actor at the end of the path.
func (p *Path) Last() string { return p.actor }

// Source is the actor the path starts from.
func (p *Path) Source() string {
	for p.parent != nil {
		p = p.parent
	}
	return p.actor
}

// Connections returns the hops in order from the source.
func (p *Path) Connections() []Connection {
	out := make([]Connection, p.hops)
	for n := p; n.parent != nil; n = n.parent {
		out[n.hops-1] = Connection{From: n.parent.actor, Film: n.film, To: n.actor}
	}
	return out
}

// Actors returns every actor on the path, source first.
func (p *Path) Actors() []string {
	out := make([]string, p.hops+1)
	for n := p; n != nil; n = n.parent {
		out[n.hops] = n.actor
	}
	return out
}

// String renders one line per hop:
//
//	Kevin Bacon was in "Apollo 13" (1995) with Tom Hanks.
func (p *Path) String() string {
	var sb strings.Builder
	for _, c := range p.Connections() {
		fmt.Fprintf(&sb, "\t%s was in \"%s\" (%d) with %s.\n", c.From, c.Film.Title, c.Film.Year, c.To)
	}
	return sb.String()
}
