package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInspect(t *testing.T) {
	db := openTestDB(t)

	var out bytes.Buffer
	require.NoError(t, writeInspect(&out, db, 2))
	got := out.String()

	assert.Contains(t, got, "4 actors")
	assert.Contains(t, got, "3 films")
	assert.Contains(t, got, "actors:     Kevin Bacon .. Wilson\n")
	assert.Contains(t, got, "films:      Apollo 13 (1995) .. Sleepless in Seattle (1993)\n")
	assert.Contains(t, got, "sample actors:")
	assert.Equal(t, 2, strings.Count(got, " credits\n"))
	assert.Equal(t, 2, strings.Count(got, " cast\n"))
}

func TestWriteInspectWithoutSample(t *testing.T) {
	db := openTestDB(t)

	var out bytes.Buffer
	require.NoError(t, writeInspect(&out, db, 0))
	assert.NotContains(t, out.String(), "sample")
}
