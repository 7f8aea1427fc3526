package responder

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMinDelay is the lower bound of the simulated reply delay.
	DefaultMinDelay = 1000 * time.Millisecond
	// DefaultMaxDelay is the exclusive upper bound of the delay.
	DefaultMaxDelay = 2500 * time.Millisecond
)

// cannedResponses is the reply pool carried over from the original
// response set. Generate does not consult it yet: every reply uses the
// fixed training notice. Preserved for future variation.
var cannedResponses = []string{
	"Hello! How can I help you today?",
	"Interesting. Tell me more.",
	"I'm listening...",
	"That's an intriguing point.",
	"Is there anything specific you'd like to discuss?",
	"I see...",
	"How fascinating!",
	"Understood.",
	"I'm processing that...",
	"Let me think about that.",
}

const craftedCodexLink = `<a href="https://craftedcodex.vercel.app/" target="_blank" style="color: #00d2ff; font-weight: bold; text-decoration: underline;">CraftedCodeX</a>`

// Generate returns the bot reply for a user message. The reply is
// trusted markup and must not be escaped by callers.
func Generate(userText string) string {
	_ = userText
	return "I am still being trained.\n\nMy abilities are limited at the moment.\n\nThank you for your patience. Till then explore " + craftedCodexLink
}

// DeliverFunc receives a completed reply together with the request id
// it belongs to.
type DeliverFunc func(requestID, reply string)

// Simulator schedules simulated replies. Safe for concurrent use.
type Simulator struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a simulator. Zero delays select the defaults; maxDelay is
// clamped to at least minDelay.
func New(minDelay, maxDelay time.Duration) *Simulator {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	return &Simulator{
		minDelay: minDelay,
		maxDelay: maxDelay,
		pending:  make(map[string]*time.Timer),
	}
}

// Respond schedules delivery of the simulated reply to userText after a
// delay drawn uniformly from [minDelay, maxDelay). The returned request
// id doubles as the pending-indicator token and as the key for Cancel.
func (s *Simulator) Respond(userText string, deliver DeliverFunc) string {
	requestID := uuid.NewString()
	delay := s.drawDelay()
	reply := Generate(userText)

	s.mu.Lock()
	s.pending[requestID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, outstanding := s.pending[requestID]
		delete(s.pending, requestID)
		s.mu.Unlock()

		// Lost the race against Cancel.
		if !outstanding {
			return
		}

		deliver(requestID, reply)
	})
	s.mu.Unlock()

	log.Debug().
		Str("requestId", requestID).
		Dur("delay", delay).
		Msg("Response scheduled")

	return requestID
}

// Cancel stops a pending delivery. Returns false if the request already
// completed or never existed.
func (s *Simulator) Cancel(requestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.pending[requestID]
	if !ok {
		return false
	}
	delete(s.pending, requestID)
	timer.Stop()

	log.Debug().Str("requestId", requestID).Msg("Response cancelled")

	return true
}

// Pending returns the number of outstanding requests.
func (s *Simulator) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels all outstanding requests.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
}

func (s *Simulator) drawDelay() time.Duration {
	spread := s.maxDelay - s.minDelay
	if spread <= 0 {
		return s.minDelay
	}
	return s.minDelay + time.Duration(rand.Int63n(int64(spread)))
}
