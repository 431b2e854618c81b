package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sixdegrees/internal/imdbstore"
)

func inspectCmd() *cli.Command {
	var sampleLimit int

	return &cli.Command{
		Name:  "inspect",
		Usage: "Summarize the actordata and moviedata files",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "sample",
				Usage:       "number of actors and films to list from the start of each index (0 = none)",
				Value:       5,
				Destination: &sampleLimit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return exitOnError(writeInspect(os.Stdout, db, sampleLimit))
		},
	}
}

func writeInspect(w io.Writer, db *imdbstore.DB, sampleLimit int) error {
	actorBytes, filmBytes := db.Sizes()
	nActors, nFilms := db.ActorCount(), db.FilmCount()

	fmt.Fprintf(w, "directory:  %s\n", db.Dir())
	fmt.Fprintf(w, "actordata:  %d bytes, %d actors\n", actorBytes, nActors)
	fmt.Fprintf(w, "moviedata:  %d bytes, %d films\n", filmBytes, nFilms)

	if nActors > 0 {
		first, err := db.ActorAt(0)
		if err != nil {
			return err
		}
		last, err := db.ActorAt(nActors - 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "actors:     %s .. %s\n", first, last)
	}
	if nFilms > 0 {
		first, err := db.FilmAt(0)
		if err != nil {
			return err
		}
		last, err := db.FilmAt(nFilms - 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "films:      %s .. %s\n", first, last)
	}

	if sampleLimit <= 0 {
		return nil
	}

	fmt.Fprintln(w, "\nsample actors:")
	for i := range min(sampleLimit, nActors) {
		name, err := db.ActorAt(i)
		if err != nil {
			return err
		}
		films, _, err := db.CreditsOf(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-32s %d credits\n", name, len(films))
	}

	fmt.Fprintln(w, "\nsample films:")
	for i := range min(sampleLimit, nFilms) {
		film, err := db.FilmAt(i)
		if err != nil {
			return err
		}
		cast, _, err := db.CastOf(film)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-32s %d cast\n", film, len(cast))
	}
	return nil
}
