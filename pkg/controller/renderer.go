package controller

import "github.com/craftedcodex/senthrix/pkg/store"

// Severity classifies user-visible errors.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Renderer is the projection surface the controller notifies. It is
// implemented by the UI layer and must never feed state back into the
// store. Callbacks are invoked while the controller holds its internal
// lock, so implementations must not call controller methods
// synchronously from inside a callback.
type Renderer interface {
	// OnChatListChanged fires when chats are created, deleted or renamed.
	OnChatListChanged()
	// OnActiveChatChanged fires with the new active chat after a switch,
	// creation or deletion changes the active pointer.
	OnActiveChatChanged(chat *store.Chat)
	// OnMessageAppended fires for every message added to the active chat.
	OnMessageAppended(msg store.Message)
	// OnBusyChanged fires when the first request starts and when the
	// last outstanding request completes.
	OnBusyChanged(busy bool)
	// OnError surfaces a user-visible failure.
	OnError(message string, severity Severity)
}
