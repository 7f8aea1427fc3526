package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftedcodex/senthrix/pkg/store"
)

func testSnapshot(t *testing.T) store.Snapshot {
	t.Helper()

	s := store.New(0)
	a := s.CreateChat("Alpha")
	require.NoError(t, s.AppendMessage(a, "hello", true))
	require.NoError(t, s.AppendMessage(a, "a reply", false))
	s.CreateChat("Beta")
	return s.Snapshot()
}

func TestFileGateway_SaveLoadRoundTrip(t *testing.T) {
	gw, err := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	defer gw.Close()

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

func TestFileGateway_LoadMissingFile(t *testing.T) {
	gw, err := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	defer gw.Close()

	_, err = gw.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileGateway_LoadRejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"wrong shape", `{"foo": "bar"}`},
		{"counter wrong type", `{"chatCounter": "five", "chats": {}}`},
		{"chat missing fields", `{"chatCounter": 1, "chats": {"chat-x": {"title": "t"}}}`},
		{"message missing isUser", `{"chatCounter": 1, "chats": {"chat-x": {"title": "t", "createdAt": "2025-01-01T00:00:00Z", "messages": [{"text": "hi"}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			gw, err := NewFileGateway(path)
			require.NoError(t, err)
			defer gw.Close()

			_, err = gw.Load()
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileGateway_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	gw, err := NewFileGateway(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	defer gw.Close()

	require.NoError(t, gw.Save(testSnapshot(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestFileGateway_SaveOverwrites(t *testing.T) {
	gw, err := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	defer gw.Close()

	require.NoError(t, gw.Save(testSnapshot(t)))

	s := store.New(0)
	s.CreateChat("Only one")
	require.NoError(t, gw.Save(s.Snapshot()))

	loaded, err := gw.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.ChatCounter)
	assert.Len(t, loaded.Chats, 1)
}

func TestFileGateway_LastWrite(t *testing.T) {
	gw, err := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	defer gw.Close()

	assert.True(t, gw.LastWrite().IsZero())

	require.NoError(t, gw.Save(testSnapshot(t)))
	assert.WithinDuration(t, time.Now(), gw.LastWrite(), time.Second)
}

func TestFileGateway_EmptyPath(t *testing.T) {
	_, err := NewFileGateway("")
	assert.Error(t, err)
}
