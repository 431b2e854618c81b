package main

import (
	"testing"

	"github.com/samcharles93/sixdegrees/internal/imdbstore"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

var (
	apollo13  = imdb.Film{Title: "Apollo 13", Year: 1995}
	sleepless = imdb.Film{Title: "Sleepless in Seattle", Year: 1993}
	castAway  = imdb.Film{Title: "Cast Away", Year: 2000}
)

func writeTestDB(t *testing.T) string {
	t.Helper()
	b := imdb.NewBuilder()
	b.AddCredit("Kevin Bacon", apollo13)
	b.AddCredit("Tom Hanks", apollo13)
	b.AddCredit("Tom Hanks", sleepless)
	b.AddCredit("Meg Ryan", sleepless)
	b.AddCredit("Wilson", castAway)

	dir := t.TempDir()
	if err := b.WriteDir(dir); err != nil {
		t.Fatalf("write db: %v", err)
	}
	return dir
}

func openTestDB(t *testing.T) *imdbstore.DB {
	t.Helper()
	db, err := imdbstore.Open(writeTestDB(t))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
