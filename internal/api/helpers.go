package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

func writeBadRequest(c *echo.Context, msg, param string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, param, "")
}

func writeNotFound(c *echo.Context, msg, param string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, param, "")
}

func writeServerError(c *echo.Context, err error) error {
	code := ""
	if errors.Is(err, imdb.ErrDecode) {
		code = "corrupt_database"
	}
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", code)
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, newInvalidRequest("invalid JSON body: " + err.Error())
	}
	return out, nil
}

func requiredParam(c *echo.Context, name string) (string, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return "", newInvalidRequest(name + " is required")
	}
	return v, nil
}

func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, newInvalidRequest("year must be an integer")
	}
	if year < imdb.MinYear || year > imdb.MaxYear {
		return 0, newInvalidRequest("year must be between " + strconv.Itoa(imdb.MinYear) + " and " + strconv.Itoa(imdb.MaxYear))
	}
	return year, nil
}
