package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalHistory(t *testing.T) *LocalHistory {
	t.Helper()

	h, err := OpenLocal(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return h
}

func TestLocalHistory_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	h := newLocalHistory(t)

	require.NoError(t, h.Record(ctx, "Radiohead"))
	require.NoError(t, h.Record(ctx, "björk"))
	require.NoError(t, h.Record(ctx, "  radiohead "))

	entries, err := h.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "radiohead", entries[0].Term)
	assert.Equal(t, 2, entries[0].Count)
	assert.True(t, entries[0].LastSearchedAt.After(entries[0].FirstSearchedAt))
	assert.Equal(t, "björk", entries[1].Term)
	assert.Equal(t, 1, entries[1].Count)
}

func TestLocalHistory_RecentTermsLimit(t *testing.T) {
	ctx := context.Background()
	h := newLocalHistory(t)

	for _, term := range []string{"cher", "muse", "air"} {
		require.NoError(t, h.Record(ctx, term))
	}

	terms, err := h.RecentTerms(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"air", "muse"}, terms)
}

func TestLocalHistory_RejectsBlankTerm(t *testing.T) {
	h := newLocalHistory(t)

	err := h.Record(context.Background(), " \t ")

	assert.ErrorIs(t, err, ErrEmptyTerm)
}

func TestLocalHistory_PersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenLocal(path)
	require.NoError(t, err)
	require.NoError(t, h.Record(ctx, "Sigur Rós"))
	require.NoError(t, h.Close())

	h, err = OpenLocal(path)
	require.NoError(t, err)
	defer h.Close()

	terms, err := h.RecentTerms(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"sigur rós"}, terms)
}
