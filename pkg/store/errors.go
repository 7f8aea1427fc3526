package store

import "errors"

var (
	// ErrChatNotFound is returned when an operation references an unknown chat id.
	ErrChatNotFound = errors.New("chat not found")
	// ErrLastChat is returned when deleting the only remaining chat.
	ErrLastChat = errors.New("cannot delete the last chat")
	// ErrEmptyTitle is returned when a rename resolves to an empty title.
	// Callers treat it as a silent no-op rather than a user-visible failure.
	ErrEmptyTitle = errors.New("chat title is empty")
)
