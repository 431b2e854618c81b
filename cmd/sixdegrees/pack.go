package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/sixdegrees/internal/imdbstore"
	"github.com/samcharles93/sixdegrees/internal/logger"
	"github.com/samcharles93/sixdegrees/pkg/imdb"
)

// packListing is the human-editable source of a database: every film with
// its cast, plus actors that have no credits at all.
type packListing struct {
	Films  []packFilm `yaml:"films" json:"films"`
	Actors []string   `yaml:"actors,omitempty" json:"actors,omitempty"`
}

type packFilm struct {
	Title string   `yaml:"title" json:"title"`
	Year  int      `yaml:"year" json:"year"`
	Cast  []string `yaml:"cast" json:"cast"`
}

func packCmd() *cli.Command {
	var (
		inPath string
		outDir string
		verify bool
	)

	return &cli.Command{
		Name:  "pack",
		Usage: "Encode a YAML or JSON credits listing into actordata and moviedata",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "in",
				Aliases:     []string{"i"},
				Usage:       "credits listing (.yaml, .yml or .json)",
				Required:    true,
				Destination: &inPath,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output directory (defaults to --data)",
				Destination: &outDir,
			},
			&cli.BoolFlag{
				Name:        "verify",
				Usage:       "reopen the written files and check every record",
				Destination: &verify,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			if strings.TrimSpace(outDir) == "" {
				outDir = resolveDataDir(dataDir)
			}

			listing, err := readListing(inPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read listing: %v", err), 1)
			}
			b, err := listing.builder()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := b.WriteDir(outDir); err != nil {
				return cli.Exit(fmt.Sprintf("error: write database: %v", err), 1)
			}
			log.Info("database written", "dir", outDir, "actors", b.Actors(), "films", b.Films())
			fmt.Printf("pack: wrote %d actors and %d films to %s\n", b.Actors(), b.Films(), outDir)

			if verify {
				if err := verifyPacked(outDir, listing); err != nil {
					return cli.Exit(fmt.Sprintf("error: verify: %v", err), 1)
				}
				fmt.Println("pack: verified")
			}
			return nil
		},
	}
}

func readListing(path string) (packListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return packListing{}, err
	}
	var listing packListing
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &listing)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &listing)
	default:
		return packListing{}, fmt.Errorf("unsupported listing format %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
	if err != nil {
		return packListing{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return listing, nil
}

// expected returns the credits and casts the packed files must reproduce,
// in the order the listing introduces them.
func (l packListing) expected() (credits map[string][]imdb.Film, casts map[imdb.Film][]string) {
	credits = make(map[string][]imdb.Film)
	casts = make(map[imdb.Film][]string)
	for _, f := range l.Films {
		film := imdb.Film{Title: f.Title, Year: f.Year}
		if _, ok := casts[film]; !ok {
			casts[film] = []string{}
		}
		for _, name := range f.Cast {
			if slices.Contains(casts[film], name) {
				continue
			}
			casts[film] = append(casts[film], name)
			credits[name] = append(credits[name], film)
		}
	}
	for _, name := range l.Actors {
		if _, ok := credits[name]; !ok {
			credits[name] = []imdb.Film{}
		}
	}
	return credits, casts
}

func (l packListing) builder() (*imdb.Builder, error) {
	b := imdb.NewBuilder()
	for i, f := range l.Films {
		if f.Title == "" {
			return nil, fmt.Errorf("film %d: title is required", i)
		}
		if f.Year < imdb.MinYear || f.Year > imdb.MaxYear {
			return nil, fmt.Errorf("film %q: year %d out of range [%d, %d]", f.Title, f.Year, imdb.MinYear, imdb.MaxYear)
		}
		film := imdb.Film{Title: f.Title, Year: f.Year}
		b.AddFilm(film)
		for _, name := range f.Cast {
			if name == "" {
				return nil, fmt.Errorf("film %q: empty cast name", film)
			}
			b.AddCredit(name, film)
		}
	}
	for _, name := range l.Actors {
		if name == "" {
			return nil, fmt.Errorf("empty actor name")
		}
		b.AddActor(name)
	}
	return b, nil
}

func verifyPacked(dir string, listing packListing) error {
	db, err := imdbstore.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	credits, casts := listing.expected()
	if db.ActorCount() != len(credits) {
		return fmt.Errorf("actor count: got %d want %d", db.ActorCount(), len(credits))
	}
	if db.FilmCount() != len(casts) {
		return fmt.Errorf("film count: got %d want %d", db.FilmCount(), len(casts))
	}

	for i := range db.ActorCount() {
		name, err := db.ActorAt(i)
		if err != nil {
			return fmt.Errorf("actor %d: %w", i, err)
		}
		got, ok, err := db.CreditsOf(name)
		if err != nil {
			return fmt.Errorf("credits of %q: %w", name, err)
		}
		want, known := credits[name]
		if !ok || !known || !slices.Equal(got, want) {
			return fmt.Errorf("credits of %q: got %v want %v", name, got, want)
		}
	}
	for i := range db.FilmCount() {
		film, err := db.FilmAt(i)
		if err != nil {
			return fmt.Errorf("film %d: %w", i, err)
		}
		got, ok, err := db.CastOf(film)
		if err != nil {
			return fmt.Errorf("cast of %s: %w", film, err)
		}
		want, known := casts[film]
		if !ok || !known || !slices.Equal(got, want) {
			return fmt.Errorf("cast of %s: got %v want %v", film, got, want)
		}
	}
	return nil
}
