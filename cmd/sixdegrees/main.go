package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sixdegrees/internal/version"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "sixdegrees",
		Usage:   "Find how two actors are connected through the films they appeared in",
		Version: version.String(),
		Flags:   append(dataFlags(), loggingFlags()...),
		Before:  setup,
		Action:  playAction,
		Commands: []*cli.Command{
			playCmd(),
			pathCmd(),
			creditsCmd(),
			castCmd(),
			inspectCmd(),
			packCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}
