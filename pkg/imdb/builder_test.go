package imdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderPreservesCreditOrder(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.AddCredit("Zed", Film{"Beta", 2001})
	b.AddCredit("Zed", Film{"Alpha", 2000})
	b.AddCredit("Amy", Film{"Beta", 2001})
	b.AddCredit("Zed", Film{"Alpha", 2000}) // duplicate

	actorData, filmData, err := b.Encode()
	require.NoError(t, err)
	actors, err := NewIndex(actorData)
	require.NoError(t, err)
	films, err := NewIndex(filmData)
	require.NoError(t, err)

	off, ok, err := actors.FindActor("Zed")
	require.NoError(t, err)
	require.True(t, ok)
	rec, err := DecodeActorRecord(actorData, off)
	require.NoError(t, err)
	require.Len(t, rec.Films, 2)

	first, err := FilmKeyAt(films.Bytes(), rec.Films[0])
	require.NoError(t, err)
	second, err := FilmKeyAt(films.Bytes(), rec.Films[1])
	require.NoError(t, err)
	assert.Equal(t, Film{"Beta", 2001}, first)
	assert.Equal(t, Film{"Alpha", 2000}, second)

	off, ok, err = films.FindFilm(Film{"Beta", 2001})
	require.NoError(t, err)
	require.True(t, ok)
	frec, err := DecodeFilmRecord(filmData, off)
	require.NoError(t, err)
	require.Len(t, frec.Cast, 2)
	name, err := ActorNameAt(actorData, frec.Cast[0])
	require.NoError(t, err)
	assert.Equal(t, "Zed", string(name))
}

func TestBuilderLonelyRecords(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.AddActor("Nobody")
	b.AddFilm(Film{"Empty Room", 1950})
	assert.Equal(t, 1, b.Actors())
	assert.Equal(t, 1, b.Films())

	actorData, filmData, err := b.Encode()
	require.NoError(t, err)
	assert.Zero(t, len(actorData)%4)
	assert.Zero(t, len(filmData)%4)

	actors, err := NewIndex(actorData)
	require.NoError(t, err)
	off, ok, err := actors.FindActor("Nobody")
	require.NoError(t, err)
	require.True(t, ok)
	rec, err := DecodeActorRecord(actorData, off)
	require.NoError(t, err)
	assert.Empty(t, rec.Films)
}

func TestBuilderRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.AddCredit("Ok", Film{"Too Old", 1850})
	_, _, err := b.Encode()
	assert.Error(t, err)

	b = NewBuilder()
	b.AddCredit("bad\x00name", Film{"Fine", 1950})
	_, _, err = b.Encode()
	assert.Error(t, err)
}

func TestBuilderWriteDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "db")
	require.NoError(t, sampleBuilder().WriteDir(dir))

	for _, name := range []string{ActorFileName, MovieFileName} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, ents, 2, "no temporary files should remain")
}
