package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := OpenSQLite("file:" + path + "?_fk=1")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(db))
	return NewStore(db)
}

func TestPutGetDescription(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.PutDescription("hash-aapl", "AAPL", "Designs consumer electronics.", 1700000000))

	body, ok, err := store.GetDescription("hash-aapl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Designs consumer electronics.", body)
}

func TestGetDescriptionMiss(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.PutDescription("hash-old-prompt", "AAPL", "stale body", 1700000000))

	// A changed prompt hashes differently, so the old entry must not be served.
	body, ok, err := store.GetDescription("hash-new-prompt")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, body)
}

func TestPutDescriptionReplaces(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.PutDescription("hash-msft", "MSFT", "first body", 1700000000))
	require.NoError(t, store.PutDescription("hash-msft", "MSFT", "second body", 1700000100))

	body, ok, err := store.GetDescription("hash-msft")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second body", body)
}

func TestInitSchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := OpenSQLite("file:" + path + "?_fk=1")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, InitSchema(db))
	require.NoError(t, InitSchema(db))
}
