package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitAt(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { Close() })
}

func TestAddAndGetSearchHistory(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AddSearchHistory("earthsea", "book", 8))
	require.NoError(t, AddSearchHistory("le guin", "author", 3))

	history, err := GetSearchHistory(10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	queries := []string{history[0].Query, history[1].Query}
	assert.Contains(t, queries, "earthsea")
	assert.Contains(t, queries, "le guin")
	assert.False(t, history[0].CreatedAt.IsZero())
}

func TestAddSearchHistoryDefaultKind(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AddSearchHistory("dune", "", 1))

	history, err := GetSearchHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "book", history[0].Kind)
}

func TestGetUniqueSearchHistory(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AddSearchHistory("earthsea", "book", 8))
	require.NoError(t, AddSearchHistory("earthsea", "book", 10))
	require.NoError(t, AddSearchHistory("earthsea", "author", 2))

	history, err := GetUniqueSearchHistory(10)
	require.NoError(t, err)
	// Same query under a different kind is a distinct entry
	require.Len(t, history, 2)

	for _, h := range history {
		if h.Kind == "book" {
			assert.Equal(t, 10, h.ResultCount)
		}
	}
}

func TestClearSearchHistory(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AddSearchHistory("earthsea", "book", 8))
	require.NoError(t, ClearSearchHistory())

	history, err := GetSearchHistory(10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteSearchHistoryOlderThan(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, AddSearchHistory("recent", "book", 1))
	// Nothing is older than an hour in a fresh database
	require.NoError(t, DeleteSearchHistoryOlderThan(time.Hour))

	history, err := GetSearchHistory(10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestGetSearchHistoryLimit(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, AddSearchHistory("q", "book", i))
	}

	history, err := GetSearchHistory(3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}
