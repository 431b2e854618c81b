package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/sixdegrees/internal/imdbstore"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

var (
	apollo13  = imdb.Film{Title: "Apollo 13", Year: 1995}
	sleepless = imdb.Film{Title: "Sleepless in Seattle", Year: 1993}
	island    = imdb.Film{Title: "Cast Away", Year: 2000}
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	b := imdb.NewBuilder()
	b.AddCredit("Kevin Bacon", apollo13)
	b.AddCredit("Tom Hanks", apollo13)
	b.AddCredit("Tom Hanks", sleepless)
	b.AddCredit("Meg Ryan", sleepless)
	b.AddCredit("Wilson", island)

	dir := t.TempDir()
	if err := b.WriteDir(dir); err != nil {
		t.Fatalf("write db: %v", err)
	}
	db, err := imdbstore.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return newEchoFor(NewServer(db, nil))
}

func newEchoFor(server *Server) *echo.Echo {
	e := echo.New()
	server.Register(e)
	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func query(path string, kv ...string) string {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return path + "?" + v.Encode()
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthAndStats(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("health: got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodGet, "/v1/stats", "")
	stats := decodeBody[StatsResponse](t, rec)
	if stats.Actors != 4 || stats.Films != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestCredits(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodGet, query("/v1/credits", "actor", "Tom Hanks"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("credits status: got %d body=%s", rec.Code, rec.Body.String())
	}
	got := decodeBody[CreditsResponse](t, rec)
	if len(got.Films) != 2 || got.Films[0] != NewFilm(apollo13) || got.Films[1] != NewFilm(sleepless) {
		t.Fatalf("unexpected credits %+v", got)
	}

	rec = doRequest(t, e, http.MethodGet, query("/v1/credits", "actor", "Nobody"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_found_error") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodGet, "/v1/credits", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCast(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodGet, query("/v1/cast", "title", "Apollo 13", "year", "1995"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cast status: got %d body=%s", rec.Code, rec.Body.String())
	}
	got := decodeBody[CastResponse](t, rec)
	if len(got.Cast) != 2 || got.Cast[0] != "Kevin Bacon" || got.Cast[1] != "Tom Hanks" {
		t.Fatalf("unexpected cast %+v", got)
	}

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"wrong year", query("/v1/cast", "title", "Apollo 13", "year", "1996"), http.StatusNotFound},
		{"bad year", query("/v1/cast", "title", "Apollo 13", "year", "nineteen"), http.StatusBadRequest},
		{"year out of range", query("/v1/cast", "title", "Apollo 13", "year", "1800"), http.StatusBadRequest},
		{"missing title", query("/v1/cast", "year", "1995"), http.StatusBadRequest},
		{"missing year", query("/v1/cast", "title", "Apollo 13"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := doRequest(t, e, http.MethodGet, tc.target, "")
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.status, rec.Code, rec.Body.String())
		}
	}
}

func TestPathFound(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodGet, query("/v1/path", "source", "Kevin Bacon", "target", "Meg Ryan"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("path status: got %d body=%s", rec.Code, rec.Body.String())
	}
	got := decodeBody[PathResponse](t, rec)
	if !got.Found || got.Hops != 2 || len(got.Connections) != 2 {
		t.Fatalf("unexpected path %+v", got)
	}
	if !strings.HasPrefix(got.ID, "path_") {
		t.Fatalf("expected path id, got %q", got.ID)
	}
	first := got.Connections[0]
	if first.From != "Kevin Bacon" || first.Film != NewFilm(apollo13) || first.To != "Tom Hanks" {
		t.Fatalf("unexpected first hop %+v", first)
	}
	if got.Stats == nil || got.Stats.Expanded == 0 {
		t.Fatalf("expected search stats, got %+v", got.Stats)
	}
}

func TestPathNotFoundIsNotAnError(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodGet, query("/v1/path", "source", "Kevin Bacon", "target", "Wilson"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("path status: got %d body=%s", rec.Code, rec.Body.String())
	}
	got := decodeBody[PathResponse](t, rec)
	if got.Found || got.Hops != 0 || len(got.Connections) != 0 {
		t.Fatalf("expected no connection, got %+v", got)
	}
}

func TestPathValidation(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t)

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"missing target", query("/v1/path", "source", "Kevin Bacon"), http.StatusBadRequest},
		{"same person", query("/v1/path", "source", "Tom Hanks", "target", "Tom Hanks"), http.StatusBadRequest},
		{"unknown source", query("/v1/path", "source", "Nobody", "target", "Tom Hanks"), http.StatusNotFound},
		{"unknown target", query("/v1/path", "source", "Tom Hanks", "target", "Nobody"), http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := doRequest(t, e, http.MethodGet, tc.target, "")
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.status, rec.Code, rec.Body.String())
		}
	}
}

func TestPostPath(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t)

	rec := doRequest(t, e, http.MethodPost, "/v1/path", `{"source":"Meg Ryan","target":"Kevin Bacon"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("post path status: got %d body=%s", rec.Code, rec.Body.String())
	}
	got := decodeBody[PathResponse](t, rec)
	if !got.Found || got.Hops != 2 || got.Connections[1].To != "Kevin Bacon" {
		t.Fatalf("unexpected path %+v", got)
	}

	rec = doRequest(t, e, http.MethodPost, "/v1/path", `{"source":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

type corruptDB struct{}

func (corruptDB) CreditsOf(string) ([]imdb.Film, bool, error) {
	return nil, false, &imdb.DecodeError{Offset: 12, Field: "film offsets", Need: 8, Size: 16}
}
func (corruptDB) CastOf(imdb.Film) ([]string, bool, error) { return nil, false, nil }
func (corruptDB) HasActor(string) (bool, error)            { return true, nil }
func (corruptDB) ActorCount() int                          { return 1 }
func (corruptDB) FilmCount() int                           { return 1 }

func TestDecodeErrorsAreServerErrors(t *testing.T) {
	t.Parallel()
	e := newEchoFor(NewServer(corruptDB{}, nil))

	rec := doRequest(t, e, http.MethodGet, query("/v1/credits", "actor", "Anyone"), "")
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "corrupt_database") {
		t.Fatalf("expected 500 corrupt_database, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, http.MethodGet, query("/v1/path", "source", "A", "target", "B"), "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", rec.Code, rec.Body.String())
	}
}
