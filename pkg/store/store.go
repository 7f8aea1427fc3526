package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxMessages is the per-chat message cap.
	DefaultMaxMessages = 50
)

// Store is the in-memory session store. Insertion order is tracked
// explicitly because Go maps do not preserve it.
type Store struct {
	mu          sync.RWMutex
	chats       map[string]*Chat
	order       []string
	activeID    string
	chatCounter int
	maxMessages int
}

// New creates an empty store. maxMessages of 0 selects the default cap.
func New(maxMessages int) *Store {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}

	return &Store{
		chats:       make(map[string]*Chat),
		maxMessages: maxMessages,
	}
}

func newChatID() string {
	id, _ := gonanoid.New()
	return "chat-" + id
}

// CreateChat allocates a new chat, optionally with an initial title, and
// makes it active. An empty title defaults to "Chat N" from the counter.
// The counter increments on every call and is never reused.
func (s *Store) CreateChat(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = Sanitize(title)
	if title == "" {
		title = fmt.Sprintf("Chat %d", s.chatCounter+1)
	}
	s.chatCounter++

	id := newChatID()
	s.chats[id] = &Chat{
		ID:        id,
		Title:     title,
		Messages:  []Message{},
		CreatedAt: time.Now(),
	}
	s.order = append(s.order, id)
	s.activeID = id

	log.Debug().Str("chatId", id).Str("title", title).Msg("Chat created")

	return id
}

// SwitchActive makes the given chat active.
func (s *Store) SwitchActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[id]; !ok {
		return fmt.Errorf("switch to %s: %w", id, ErrChatNotFound)
	}
	s.activeID = id
	return nil
}

// AppendMessage appends a message to a chat. When the chat is at its cap
// the oldest message is evicted first; the new message is always kept.
func (s *Store) AppendMessage(chatID, text string, isUser bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return fmt.Errorf("append to %s: %w", chatID, ErrChatNotFound)
	}

	if len(chat.Messages) >= s.maxMessages {
		evict := len(chat.Messages) - s.maxMessages + 1
		chat.Messages = append(chat.Messages[:0], chat.Messages[evict:]...)
	}
	chat.Messages = append(chat.Messages, Message{Text: text, IsUser: isUser})

	return nil
}

// RenameChat stores a sanitized new title. An empty result returns
// ErrEmptyTitle; renaming to the current title is a successful no-op.
func (s *Store) RenameChat(chatID, newTitle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return fmt.Errorf("rename %s: %w", chatID, ErrChatNotFound)
	}

	title := Sanitize(newTitle)
	if title == "" {
		return ErrEmptyTitle
	}
	if title == chat.Title {
		return nil
	}

	chat.Title = title
	return nil
}

// DeleteChat removes a chat. Deleting the only remaining chat is
// rejected. When the active chat is deleted the remaining chat with the
// lowest insertion order becomes active. Returns the active chat id
// after deletion, or "" if the store is empty.
func (s *Store) DeleteChat(chatID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[chatID]; !ok {
		return "", fmt.Errorf("delete %s: %w", chatID, ErrChatNotFound)
	}
	if len(s.chats) <= 1 {
		return "", ErrLastChat
	}

	delete(s.chats, chatID)
	for i, id := range s.order {
		if id == chatID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if s.activeID == chatID {
		if len(s.order) > 0 {
			s.activeID = s.order[0]
		} else {
			s.activeID = ""
		}
	}

	log.Debug().Str("chatId", chatID).Str("activeId", s.activeID).Msg("Chat deleted")

	return s.activeID, nil
}

// GetActive returns a copy of the active chat, or nil if none exists.
func (s *Store) GetActive() *Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat, ok := s.chats[s.activeID]
	if !ok {
		return nil
	}
	return copyChat(chat)
}

// GetChat returns a copy of the chat with the given id, or nil.
func (s *Store) GetChat(id string) *Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat, ok := s.chats[id]
	if !ok {
		return nil
	}
	return copyChat(chat)
}

// ActiveID returns the id of the active chat, or "".
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Len returns the number of chats.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chats)
}

// GetAll returns chat summaries in insertion order.
func (s *Store) GetAll() []ChatInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]ChatInfo, 0, len(s.order))
	for _, id := range s.order {
		chat := s.chats[id]
		infos = append(infos, ChatInfo{
			ID:        chat.ID,
			Title:     chat.Title,
			Messages:  len(chat.Messages),
			CreatedAt: chat.CreatedAt,
		})
	}
	return infos
}

// Search returns the ids of chats whose title contains the query,
// case-insensitively, in insertion order. An empty query matches all.
func (s *Store) Search(query string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	var ids []string
	for _, id := range s.order {
		if strings.Contains(strings.ToLower(s.chats[id].Title), query) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Snapshot returns the serializable projection of the store. The active
// pointer is not part of the snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		ChatCounter: s.chatCounter,
		Chats:       make(map[string]ChatSnapshot, len(s.chats)),
	}
	for id, chat := range s.chats {
		messages := make([]Message, len(chat.Messages))
		copy(messages, chat.Messages)
		snap.Chats[id] = ChatSnapshot{
			Title:     chat.Title,
			Messages:  messages,
			CreatedAt: chat.CreatedAt,
		}
	}
	return snap
}

// FromSnapshot rebuilds a store from a persisted snapshot. Insertion
// order is reconstructed from creation time (ties broken by id) and the
// first chat becomes active.
func FromSnapshot(snap Snapshot, maxMessages int) *Store {
	s := New(maxMessages)
	s.chatCounter = snap.ChatCounter

	for id, cs := range snap.Chats {
		messages := make([]Message, len(cs.Messages))
		copy(messages, cs.Messages)
		s.chats[id] = &Chat{
			ID:        id,
			Title:     cs.Title,
			Messages:  messages,
			CreatedAt: cs.CreatedAt,
		}
		s.order = append(s.order, id)
	}

	sort.Slice(s.order, func(i, j int) bool {
		a, b := s.chats[s.order[i]], s.chats[s.order[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if len(s.order) > 0 {
		s.activeID = s.order[0]
	}

	return s
}

func copyChat(chat *Chat) *Chat {
	messages := make([]Message, len(chat.Messages))
	copy(messages, chat.Messages)
	return &Chat{
		ID:        chat.ID,
		Title:     chat.Title,
		Messages:  messages,
		CreatedAt: chat.CreatedAt,
	}
}
