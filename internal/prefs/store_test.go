package prefs

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetUnknownUserReturnsEmptyRecord(t *testing.T) {
	store := newTestStore(t)

	record, err := store.Get("nobody")
	require.NoError(t, err)
	assert.Empty(t, record)
}

func TestMergeRoundTrip(t *testing.T) {
	store := newTestStore(t)

	err := store.Merge("user-1", map[string]json.RawMessage{
		"theme":    json.RawMessage(`"dark"`),
		"fontSize": json.RawMessage(`14`),
	})
	require.NoError(t, err)

	record, err := store.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"dark"`), record["theme"])
	assert.Equal(t, json.RawMessage(`14`), record["fontSize"])
}

func TestMergeDoesNotReplaceWholeRecord(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Merge("user-1", map[string]json.RawMessage{
		"theme": json.RawMessage(`"dark"`),
	}))
	require.NoError(t, store.Merge("user-1", map[string]json.RawMessage{
		"notifications": json.RawMessage(`true`),
	}))
	require.NoError(t, store.Merge("user-1", map[string]json.RawMessage{
		"theme": json.RawMessage(`"light"`),
	}))

	record, err := store.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"light"`), record["theme"])
	assert.Equal(t, json.RawMessage(`true`), record["notifications"])
}

func TestRecordsAreScopedPerUser(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Merge("user-1", map[string]json.RawMessage{
		"theme": json.RawMessage(`"dark"`),
	}))

	record, err := store.Get("user-2")
	require.NoError(t, err)
	assert.Empty(t, record)
}
