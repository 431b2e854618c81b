package api

import (
	"time"

	"github.com/samcharles93/sixdegrees/internal/pathfinder"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

type Film struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type Connection struct {
	From string `json:"from"`
	Film Film   `json:"film"`
	To   string `json:"to"`
}

type CreditsResponse struct {
	Object string `json:"object"`
	Actor  string `json:"actor"`
	Films  []Film `json:"films"`
}

type CastResponse struct {
	Object string   `json:"object"`
	Film   Film     `json:"film"`
	Cast   []string `json:"cast"`
}

type PathRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type SearchStats struct {
	ActorsSeen int     `json:"actors_seen"`
	FilmsSeen  int     `json:"films_seen"`
	Expanded   int     `json:"expanded"`
	ElapsedMS  float64 `json:"elapsed_ms"`
}

type PathResponse struct {
	ID          string       `json:"id,omitempty"`
	Object      string       `json:"object"`
	Source      string       `json:"source"`
	Target      string       `json:"target"`
	Found       bool         `json:"found"`
	Hops        int          `json:"hops"`
	Connections []Connection `json:"connections"`
	Stats       *SearchStats `json:"stats,omitempty"`
}

type StatsResponse struct {
	Object string `json:"object"`
	Actors int    `json:"actors"`
	Films  int    `json:"films"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

func NewFilm(f imdb.Film) Film {
	return Film{Title: f.Title, Year: f.Year}
}

func NewCreditsResponse(actor string, films []imdb.Film) CreditsResponse {
	out := CreditsResponse{Object: "credits", Actor: actor, Films: make([]Film, len(films))}
	for i, f := range films {
		out.Films[i] = NewFilm(f)
	}
	return out
}

func NewCastResponse(film imdb.Film, cast []string) CastResponse {
	if cast == nil {
		cast = []string{}
	}
	return CastResponse{Object: "cast", Film: NewFilm(film), Cast: cast}
}

// NewPathResponse renders a search result. The Stats block is omitted when
// withStats is false so CLI output stays deterministic.
func NewPathResponse(source, target string, res pathfinder.Result, withStats bool) PathResponse {
	out := PathResponse{
		Object:      "path",
		Source:      source,
		Target:      target,
		Found:       res.Found,
		Connections: []Connection{},
	}
	if res.Found {
		out.Hops = res.Path.Len()
		for _, c := range res.Path.Connections() {
			out.Connections = append(out.Connections, Connection{From: c.From, Film: NewFilm(c.Film), To: c.To})
		}
	}
	if withStats {
		out.Stats = &SearchStats{
			ActorsSeen: res.ActorsSeen,
			FilmsSeen:  res.FilmsSeen,
			Expanded:   res.Expanded,
			ElapsedMS:  float64(res.Elapsed) / float64(time.Millisecond),
		}
	}
	return out
}
