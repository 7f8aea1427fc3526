package store

import "time"

// Message represents a single conversation turn. Messages are immutable
// once appended; slice order is append order.
type Message struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// Chat is one conversation session. Identity is the ID; the title is
// mutable display text.
type Chat struct {
	ID        string    `json:"-"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatInfo is a lightweight summary of a chat for listing.
type ChatInfo struct {
	ID        string
	Title     string
	Messages  int
	CreatedAt time.Time
}

// Snapshot is the serializable projection of the store. The active chat
// pointer is deliberately absent: on restore the first chat by insertion
// order becomes active.
type Snapshot struct {
	ChatCounter int                     `json:"chatCounter"`
	Chats       map[string]ChatSnapshot `json:"chats"`
}

// ChatSnapshot is the persisted form of a single chat.
type ChatSnapshot struct {
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}
