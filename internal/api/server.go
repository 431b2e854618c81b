// Package api serves the credits, cast and path queries over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/sixdegrees/internal/logger"
	"github.com/samcharles93/sixdegrees/internal/pathfinder"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

// Database is what the server needs from the mapped database.
type Database interface {
	pathfinder.Credits
	HasActor(name string) (bool, error)
	ActorCount() int
	FilmCount() int
}

type Server struct {
	db     Database
	finder *pathfinder.Finder
	log    logger.Logger
	newID  func() string
}

func NewServer(db Database, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		db:     db,
		finder: pathfinder.New(db, pathfinder.WithLogger(log)),
		log:    log,
		newID:  func() string { return "path_" + uuid.NewString() },
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/stats", s.handleStats)
	e.GET("/v1/credits", s.handleCredits)
	e.GET("/v1/cast", s.handleCast)
	e.GET("/v1/path", s.handleGetPath)
	e.POST("/v1/path", s.handlePostPath)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(c *echo.Context) error {
	return c.JSON(http.StatusOK, StatsResponse{
		Object: "stats",
		Actors: s.db.ActorCount(),
		Films:  s.db.FilmCount(),
	})
}

func (s *Server) handleCredits(c *echo.Context) error {
	actor, err := requiredParam(c, "actor")
	if err != nil {
		return writeBadRequest(c, err.Error(), "actor")
	}
	films, ok, err := s.db.CreditsOf(actor)
	if err != nil {
		return writeServerError(c, err)
	}
	if !ok {
		return writeNotFound(c, "actor not found: "+actor, "actor")
	}
	return c.JSON(http.StatusOK, NewCreditsResponse(actor, films))
}

func (s *Server) handleCast(c *echo.Context) error {
	title, err := requiredParam(c, "title")
	if err != nil {
		return writeBadRequest(c, err.Error(), "title")
	}
	rawYear, err := requiredParam(c, "year")
	if err != nil {
		return writeBadRequest(c, err.Error(), "year")
	}
	year, err := parseYear(rawYear)
	if err != nil {
		return writeBadRequest(c, err.Error(), "year")
	}

	film := imdb.Film{Title: title, Year: year}
	cast, ok, err := s.db.CastOf(film)
	if err != nil {
		return writeServerError(c, err)
	}
	if !ok {
		return writeNotFound(c, "film not found: "+film.String(), "title")
	}
	return c.JSON(http.StatusOK, NewCastResponse(film, cast))
}

func (s *Server) handleGetPath(c *echo.Context) error {
	return s.findPath(c, PathRequest{
		Source: c.QueryParam("source"),
		Target: c.QueryParam("target"),
	})
}

func (s *Server) handlePostPath(c *echo.Context) error {
	req, err := decodeJSON[PathRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error(), "")
	}
	return s.findPath(c, req)
}

func (s *Server) findPath(c *echo.Context, req PathRequest) error {
	if err := s.validatePath(req); err != nil {
		var nf notFoundError
		switch {
		case errors.As(err, &nf):
			return writeNotFound(c, nf.Error(), nf.param)
		case errors.Is(err, ErrInvalidRequest):
			return writeBadRequest(c, err.Error(), "")
		default:
			return writeServerError(c, err)
		}
	}

	res, err := s.finder.Search(req.Source, req.Target)
	if err != nil {
		s.log.Error("path search failed", "source", req.Source, "target", req.Target, "error", err)
		return writeServerError(c, err)
	}
	out := NewPathResponse(req.Source, req.Target, res, true)
	out.ID = s.newID()
	s.log.Info("path search", "id", out.ID, "found", out.Found, "hops", out.Hops, "expanded", res.Expanded)
	return c.JSON(http.StatusOK, out)
}

type notFoundError struct {
	msg   string
	param string
}

func (e notFoundError) Error() string { return e.msg }

// validatePath applies the checks an interactive prompt would: both names
// present, distinct, and known to the database.
func (s *Server) validatePath(req PathRequest) error {
	if req.Source == "" || req.Target == "" {
		return newInvalidRequest("source and target are required")
	}
	if req.Source == req.Target {
		return newInvalidRequest("source and target must be different people")
	}
	for _, p := range []struct{ param, name string }{{"source", req.Source}, {"target", req.Target}} {
		ok, err := s.db.HasActor(p.name)
		if err != nil {
			return err
		}
		if !ok {
			return notFoundError{msg: "actor not found: " + p.name, param: p.param}
		}
	}
	return nil
}
