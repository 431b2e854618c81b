package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sixdegrees/internal/imdbstore"
	"github.com/samcharles93/sixdegrees/internal/logger"
)

const envDataDir = "SIXDEGREES_DATA_DIR"

const initFailure = "Failed to properly initialize the imdb database.\n" +
	"Please check to make sure the source files exist and that you have permission to read them."

// stdinIsTTY is a small seam for tests.
var stdinIsTTY = isTTY

// resolveDataDir picks the database directory: the --data flag (or the
// config file's data_dir), then $SIXDEGREES_DATA_DIR, then the working
// directory.
func resolveDataDir(flagValue string) string {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return filepath.Clean(dir)
	}
	if dir := strings.TrimSpace(os.Getenv(envDataDir)); dir != "" {
		return filepath.Clean(dir)
	}
	return "."
}

func openDatabase(ctx context.Context) (*imdbstore.DB, error) {
	log := logger.FromContext(ctx)
	dir := resolveDataDir(dataDir)
	db, err := imdbstore.Open(dir, imdbstore.WithLogger(log))
	if err != nil {
		log.Error("open database", "dir", dir, "error", err)
		return nil, cli.Exit(initFailure, 1)
	}
	return db, nil
}

func isTTY() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}
