package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftedcodex/senthrix/pkg/store"
)

func setupSQLiteGateway(t *testing.T) *SQLiteGateway {
	t.Helper()

	gw, err := NewSQLiteGateway(filepath.Join(t.TempDir(), "senthrix.db"))
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })
	return gw
}

func TestSQLiteGateway_SaveLoadRoundTrip(t *testing.T) {
	gw := setupSQLiteGateway(t)

	snap := testSnapshot(t)
	require.NoError(t, gw.Save(snap))

	loaded, err := gw.Load()
	require.NoError(t, err)

	assert.Equal(t, snap.ChatCounter, loaded.ChatCounter)
	require.Len(t, loaded.Chats, len(snap.Chats))
	for id, chat := range snap.Chats {
		got, ok := loaded.Chats[id]
		require.True(t, ok)
		assert.Equal(t, chat.Title, got.Title)
		assert.Equal(t, chat.Messages, got.Messages)
		assert.True(t, chat.CreatedAt.Equal(got.CreatedAt))
	}
}

func TestSQLiteGateway_LoadFreshDatabase(t *testing.T) {
	gw := setupSQLiteGateway(t)

	_, err := gw.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteGateway_SaveReplacesPrevious(t *testing.T) {
	gw := setupSQLiteGateway(t)

	require.NoError(t, gw.Save(testSnapshot(t)))

	s := store.New(0)
	s.CreateChat("Replacement")
	require.NoError(t, gw.Save(s.Snapshot()))

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.ChatCounter)
	require.Len(t, loaded.Chats, 1)
	for _, chat := range loaded.Chats {
		assert.Equal(t, "Replacement", chat.Title)
	}
}

func TestSQLiteGateway_EmptyChatSetPersists(t *testing.T) {
	gw := setupSQLiteGateway(t)

	require.NoError(t, gw.Save(store.Snapshot{ChatCounter: 7, Chats: map[string]store.ChatSnapshot{}}))

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.ChatCounter)
	assert.Empty(t, loaded.Chats)
}
