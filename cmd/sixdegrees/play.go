package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sixdegrees/internal/logger"
	"github.com/samcharles93/sixdegrees/internal/pathfinder"
)

type gameDB interface {
	pathfinder.Credits
	HasActor(name string) (bool, error)
}

func playCmd() *cli.Command {
	return &cli.Command{
		Name:   "play",
		Usage:  "Interactively connect pairs of actors (the default command)",
		Action: playAction,
	}
}

func playAction(ctx context.Context, cmd *cli.Command) error {
	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := play(db, newLineReader(), os.Stdout, logger.FromContext(ctx)); err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	return nil
}

// play runs the prompt loop until the user submits an empty answer or the
// input ends.
func play(db gameDB, in lineReader, out io.Writer, log logger.Logger) error {
	finder := pathfinder.New(db, pathfinder.WithLogger(log))
	for {
		source, err := promptForActor(db, in, out, "Actor or actress")
		if err != nil {
			return err
		}
		if source == "" {
			break
		}
		target, err := promptForActor(db, in, out, "Another actor or actress")
		if err != nil {
			return err
		}
		if target == "" {
			break
		}
		if source == target {
			_, _ = fmt.Fprintln(out, "Good one.  This is only interesting if you specify two different people.")
			continue
		}

		path, found, err := finder.FindShortestPath(source, target)
		if err != nil {
			return err
		}
		if found {
			_, _ = fmt.Fprint(out, "\n", path.String(), "\n")
		} else {
			_, _ = fmt.Fprint(out, "\nNo path between those two people could be found.\n\n")
		}
	}
	_, _ = fmt.Fprintln(out, "Thanks for playing!")
	return nil
}

// promptForActor asks until the answer names a known actor. An empty answer
// or end of input returns "".
func promptForActor(db gameDB, in lineReader, out io.Writer, prompt string) (string, error) {
	for {
		answer, err := in.ReadLine(prompt + " [or <enter> to quit]: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				_, _ = fmt.Fprintln(out)
				return "", nil
			}
			return "", err
		}
		if answer == "" {
			return "", nil
		}
		ok, err := db.HasActor(answer)
		if err != nil {
			return "", err
		}
		if ok {
			return answer, nil
		}
		_, _ = fmt.Fprintf(out, "We couldn't find \"%s\" in the movie database. Please try again.\n", answer)
	}
}
