package controller

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/craftedcodex/senthrix/pkg/persist"
	"github.com/craftedcodex/senthrix/pkg/responder"
	"github.com/craftedcodex/senthrix/pkg/store"
)

const (
	// DefaultMaxInputLength is the longest user message accepted.
	DefaultMaxInputLength = 1000
)

// Controller coordinates store mutations, persistence and the response
// simulator. A single mutex serializes all operations, including timer
// completions, modelling the one logical UI thread.
type Controller struct {
	store    *store.Store
	gateway  persist.Gateway
	sim      *responder.Simulator
	renderer Renderer
	maxInput int

	mu          sync.Mutex
	outstanding int
}

// New creates a controller. maxInput of 0 selects the default limit.
func New(st *store.Store, gateway persist.Gateway, sim *responder.Simulator, renderer Renderer, maxInput int) *Controller {
	if maxInput <= 0 {
		maxInput = DefaultMaxInputLength
	}

	return &Controller{
		store:    st,
		gateway:  gateway,
		sim:      sim,
		renderer: renderer,
		maxInput: maxInput,
	}
}

// LoadStore builds a session store from the gateway. A missing or
// unreadable snapshot falls back to a fresh in-memory store, and an
// empty store gets its first chat, so the result is always usable for
// sending.
func LoadStore(gateway persist.Gateway, maxMessages int) *store.Store {
	var st *store.Store

	snap, err := gateway.Load()
	switch {
	case err == nil:
		st = store.FromSnapshot(snap, maxMessages)
	case errors.Is(err, persist.ErrNotFound):
		st = store.New(maxMessages)
	default:
		log.Error().Err(err).Msg("Failed to load state, starting fresh")
		st = store.New(maxMessages)
	}

	if st.Len() == 0 {
		st.CreateChat("")
	}

	return st
}

// Store exposes the underlying session store for read-only projection.
func (c *Controller) Store() *store.Store {
	return c.store
}

// Busy reports whether any simulated response is outstanding.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outstanding > 0
}

// SendUserMessage validates, sanitizes and appends a user message to
// the active chat, then schedules the simulated reply. Invalid input is
// surfaced as a warning and aborts the send.
func (c *Controller) SendUserMessage(text string) {
	defer c.recovered("send")

	c.mu.Lock()
	defer c.mu.Unlock()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		c.renderer.OnError("Message cannot be empty", SeverityWarning)
		return
	}
	if len(trimmed) > c.maxInput {
		c.renderer.OnError("Message too long", SeverityWarning)
		return
	}

	active := c.store.GetActive()
	if active == nil {
		c.renderer.OnError("No active chat", SeverityWarning)
		return
	}

	sanitized := store.Sanitize(text)
	if err := c.store.AppendMessage(active.ID, sanitized, true); err != nil {
		log.Error().Err(err).Str("chatId", active.ID).Msg("Failed to append user message")
		c.renderer.OnError("An unexpected error occurred", SeverityError)
		return
	}

	c.renderer.OnMessageAppended(store.Message{Text: sanitized, IsUser: true})
	c.save()

	c.outstanding++
	if c.outstanding == 1 {
		c.renderer.OnBusyChanged(true)
	}

	requestID := c.sim.Respond(sanitized, c.complete)
	log.Debug().Str("requestId", requestID).Str("chatId", active.ID).Msg("User message sent")
}

// complete applies a finished simulated reply. The reply goes to the
// chat active at completion time, which may differ from the chat active
// at send time; a reply with no surviving target is dropped with a
// warning.
func (c *Controller) complete(requestID, reply string) {
	defer c.recovered("complete")

	c.mu.Lock()
	defer c.mu.Unlock()

	activeID := c.store.ActiveID()
	if activeID == "" {
		log.Warn().Str("requestId", requestID).Msg("Reply completed with no active chat, dropping")
		c.finishRequest()
		return
	}

	// Bot-generated markup is trusted and stored verbatim.
	if err := c.store.AppendMessage(activeID, reply, false); err != nil {
		log.Warn().Err(err).Str("requestId", requestID).Str("chatId", activeID).Msg("Reply target vanished, dropping")
		c.finishRequest()
		return
	}

	c.renderer.OnMessageAppended(store.Message{Text: reply, IsUser: false})
	c.save()
	c.finishRequest()
}

func (c *Controller) finishRequest() {
	c.outstanding--
	if c.outstanding == 0 {
		c.renderer.OnBusyChanged(false)
	}
}

// NewChat creates a chat with a default title and makes it active.
func (c *Controller) NewChat() string {
	defer c.recovered("newChat")

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.store.CreateChat("")
	c.renderer.OnChatListChanged()
	c.renderer.OnActiveChatChanged(c.store.GetActive())
	c.save()

	return id
}

// SwitchChat makes the given chat active. The store mutation completes
// before the renderer sees the incoming chat.
func (c *Controller) SwitchChat(id string) {
	defer c.recovered("switchChat")

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.SwitchActive(id); err != nil {
		log.Warn().Err(err).Str("chatId", id).Msg("Switch failed")
		c.renderer.OnError("Chat not found", SeverityWarning)
		return
	}

	c.renderer.OnActiveChatChanged(c.store.GetActive())
	c.save()
}

// RenameChat stores a sanitized new title. An empty title is a silent
// no-op; an unknown chat is surfaced as a warning.
func (c *Controller) RenameChat(id, title string) {
	defer c.recovered("renameChat")

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.store.RenameChat(id, title)
	switch {
	case errors.Is(err, store.ErrEmptyTitle):
		log.Debug().Str("chatId", id).Msg("Empty title, rename skipped")
		return
	case errors.Is(err, store.ErrChatNotFound):
		c.renderer.OnError("Chat not found", SeverityWarning)
		return
	case err != nil:
		log.Error().Err(err).Str("chatId", id).Msg("Rename failed")
		c.renderer.OnError("An unexpected error occurred", SeverityError)
		return
	}

	c.renderer.OnChatListChanged()
	c.save()
}

// DeleteChat removes a chat. Deleting the last remaining chat is
// rejected with a warning.
func (c *Controller) DeleteChat(id string) {
	defer c.recovered("deleteChat")

	c.mu.Lock()
	defer c.mu.Unlock()

	wasActive := c.store.ActiveID() == id

	_, err := c.store.DeleteChat(id)
	switch {
	case errors.Is(err, store.ErrLastChat):
		c.renderer.OnError("Cannot delete the last chat", SeverityWarning)
		return
	case errors.Is(err, store.ErrChatNotFound):
		c.renderer.OnError("Chat not found", SeverityWarning)
		return
	case err != nil:
		log.Error().Err(err).Str("chatId", id).Msg("Delete failed")
		c.renderer.OnError("An unexpected error occurred", SeverityError)
		return
	}

	c.renderer.OnChatListChanged()
	if wasActive {
		c.renderer.OnActiveChatChanged(c.store.GetActive())
	}
	c.save()
}

// PruneChats deletes inactive chats created longer ago than maxAge. The
// active chat and the last remaining chat always survive. Returns the
// number of chats removed.
func (c *Controller) PruneChats(maxAge time.Duration) int {
	defer c.recovered("pruneChats")

	c.mu.Lock()
	defer c.mu.Unlock()

	activeID := c.store.ActiveID()
	cutoff := time.Now().Add(-maxAge)

	pruned := 0
	for _, info := range c.store.GetAll() {
		if info.ID == activeID || !info.CreatedAt.Before(cutoff) {
			continue
		}
		if _, err := c.store.DeleteChat(info.ID); err != nil {
			// Last-chat guard, nothing left to prune.
			break
		}
		pruned++
	}

	if pruned > 0 {
		log.Info().Int("pruned", pruned).Msg("Old chats pruned")
		c.renderer.OnChatListChanged()
		c.save()
	}

	return pruned
}

// save is write-through and non-fatal: a storage failure is logged and
// the session continues in memory.
func (c *Controller) save() {
	if err := c.gateway.Save(c.store.Snapshot()); err != nil {
		log.Error().Err(err).Msg("Failed to persist state")
	}
}

// recovered is the top-level catch for any panic escaping an operation.
// The controller stays usable; the user sees a generic banner.
func (c *Controller) recovered(op string) {
	if r := recover(); r != nil {
		log.Error().Interface("panic", r).Str("op", op).Msg("Recovered from panic")
		c.renderer.OnError("An unexpected error occurred", SeverityError)
	}
}
