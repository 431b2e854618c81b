package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sixdegrees/internal/api"
	"github.com/samcharles93/sixdegrees/internal/logger"
	"github.com/samcharles93/sixdegrees/internal/pathfinder"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

var errUnknownKey = errors.New("not in the movie database")

func pathCmd() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:      "path",
		Usage:     "Print the shortest connection between two actors",
		ArgsUsage: "SOURCE TARGET",
		Flags:     []cli.Flag{jsonFlag(&asJSON)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return cli.Exit("error: path needs exactly two actor names", 1)
			}
			applyOutputConfig(cmd, appConfig, &asJSON)
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			err = writePath(os.Stdout, db, logger.FromContext(ctx), cmd.Args().Get(0), cmd.Args().Get(1), asJSON)
			return exitOnError(err)
		},
	}
}

func creditsCmd() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:      "credits",
		Usage:     "List the films an actor appeared in",
		ArgsUsage: "NAME",
		Flags:     []cli.Flag{jsonFlag(&asJSON)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := strings.Join(cmd.Args().Slice(), " ")
			if name == "" {
				return cli.Exit("error: credits needs an actor name", 1)
			}
			applyOutputConfig(cmd, appConfig, &asJSON)
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return exitOnError(writeCredits(os.Stdout, db, name, asJSON))
		},
	}
}

func castCmd() *cli.Command {
	var (
		title  string
		year   int64
		asJSON bool
	)
	return &cli.Command{
		Name:  "cast",
		Usage: "List the cast of a film",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "film title",
				Required:    true,
				Destination: &title,
			},
			&cli.Int64Flag{
				Name:        "year",
				Aliases:     []string{"y"},
				Usage:       "release year",
				Required:    true,
				Destination: &year,
			},
			jsonFlag(&asJSON),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if year < imdb.MinYear || year > imdb.MaxYear {
				return cli.Exit(fmt.Sprintf("error: year must be between %d and %d", imdb.MinYear, imdb.MaxYear), 1)
			}
			applyOutputConfig(cmd, appConfig, &asJSON)
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			film := imdb.Film{Title: title, Year: int(year)}
			return exitOnError(writeCast(os.Stdout, db, film, asJSON))
		},
	}
}

func writePath(w io.Writer, db gameDB, log logger.Logger, source, target string, asJSON bool) error {
	for _, name := range []string{source, target} {
		ok, err := db.HasActor(name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%q: %w", name, errUnknownKey)
		}
	}

	res, err := pathfinder.New(db, pathfinder.WithLogger(log)).Search(source, target)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, api.NewPathResponse(source, target, res, false))
	}
	if !res.Found {
		_, err = fmt.Fprintln(w, "No path between those two people could be found.")
		return err
	}
	_, err = fmt.Fprint(w, res.Path.String())
	return err
}

func writeCredits(w io.Writer, db pathfinder.Credits, name string, asJSON bool) error {
	films, ok, err := db.CreditsOf(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q: %w", name, errUnknownKey)
	}
	if asJSON {
		return writeJSON(w, api.NewCreditsResponse(name, films))
	}
	for _, f := range films {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeCast(w io.Writer, db pathfinder.Credits, film imdb.Film, asJSON bool) error {
	cast, ok, err := db.CastOf(film)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q: %w", film.String(), errUnknownKey)
	}
	if asJSON {
		return writeJSON(w, api.NewCastResponse(film, cast))
	}
	for _, name := range cast {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitOnError(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit("error: "+err.Error(), 1)
}
