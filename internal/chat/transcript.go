// ABOUTME: Chat transcript state machine: Idle/AwaitingReply per turn
// ABOUTME: Handles local help/menu commands, 401 teardown, and error texts

package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/access-ed/edassist/internal/api"
)

// State is the per-turn transcript state.
type State int

const (
	// Idle means no chat request is in flight.
	Idle State = iota
	// AwaitingReply means a backend call is in flight; input is disabled.
	AwaitingReply
)

// ErrBusy is returned when Submit is called while a reply is outstanding.
var ErrBusy = errors.New("a reply is already outstanding")

// Fixed assistant texts. These are part of the user-visible contract, not
// formatting detail, so they live here rather than in the view layer.
const (
	menuAcknowledgment    = "Here are the available categories you can explore:"
	sessionExpiredMessage = "Your session has expired. Please log in again."
	apologyMessage        = "I apologize, but I encountered an error. Please try again."
)

// logoutGrace is how long the session-expired message stays readable
// before the session is torn down. Fixed and not cancellable.
const logoutGrace = 3 * time.Second

// Backend is the part of the API client a transcript needs.
type Backend interface {
	Chat(ctx context.Context, message string, history []api.HistoryMessage) (*api.ChatReply, error)
}

// SessionInvalidator tears down the stored session after a 401.
type SessionInvalidator interface {
	Invalidate()
}

// Transcript holds the ordered, append-only message sequence for one chat
// session and drives the per-turn state machine. It is cleared only by
// discarding the Transcript (the process-restart analogue of a page
// reload). Safe for concurrent use, though only one turn can be in flight.
type Transcript struct {
	mu       sync.Mutex
	backend  Backend
	sessions SessionInvalidator
	clock    Clock
	logger   *slog.Logger

	messages         []Message
	state            State
	showQuickActions bool
}

// NewTranscript creates an empty transcript with the quick-action menu
// showing. A nil clock falls back to the system clock.
func NewTranscript(backend Backend, sessions SessionInvalidator, clock Clock) *Transcript {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Transcript{
		backend:          backend,
		sessions:         sessions,
		clock:            clock,
		logger:           slog.Default().With("component", "chat"),
		showQuickActions: true,
	}
}

// Messages returns a copy of the transcript so far.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// State returns the current per-turn state.
func (t *Transcript) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ShowingQuickActions reports whether the quick-action menu should render.
func (t *Transcript) ShowingQuickActions() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.showQuickActions
}

// Submit processes one user input and returns the messages appended by the
// turn, in order. Whitespace-only input is a no-op returning nil. "help"
// and "menu" (case-insensitive) are local commands: they append the user
// message and a fixed acknowledgment, re-raise the quick-action menu, and
// never touch the backend. Anything else is a full chat turn.
//
// Submit returns ErrBusy while a previous turn is awaiting its reply.
// Turn failures do not surface as errors; per the error taxonomy they
// append fixed assistant messages instead.
func (t *Transcript) Submit(ctx context.Context, input string) ([]Message, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}

	t.mu.Lock()
	if t.state != Idle {
		t.mu.Unlock()
		return nil, ErrBusy
	}

	if lower := strings.ToLower(trimmed); lower == "help" || lower == "menu" {
		appended := t.appendLocked(
			newMessage(RoleUser, trimmed),
			newMessage(RoleAssistant, menuAcknowledgment),
		)
		t.showQuickActions = true
		t.mu.Unlock()
		return appended, nil
	}

	// Full turn: the history sent is the transcript prior to this input.
	history := historyOf(t.messages)
	userMsg := newMessage(RoleUser, trimmed)
	t.messages = append(t.messages, userMsg)
	t.showQuickActions = false
	t.state = AwaitingReply
	t.mu.Unlock()

	reply, err := t.backend.Chat(ctx, trimmed, history)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Idle

	if err != nil {
		return append([]Message{userMsg}, t.failLocked(err)...), nil
	}

	content := EnhanceWithSources(reply.Response, reply.SourceURLs, reply.SourceTitles, reply.IsGeneralChat)
	appended := t.appendLocked(newMessage(RoleAssistant, content))
	return append([]Message{userMsg}, appended...), nil
}

// SubmitQuickAction submits a quick action's message as if typed.
func (t *Transcript) SubmitQuickAction(ctx context.Context, action api.QuickAction) ([]Message, error) {
	return t.Submit(ctx, action.Message)
}

// failLocked appends the fixed assistant message for a failed turn and,
// on authentication failure, schedules session teardown after the grace
// delay. Callers must hold t.mu.
func (t *Transcript) failLocked(err error) []Message {
	if errors.Is(err, api.ErrUnauthorized) {
		t.logger.Warn("chat turn rejected, scheduling session teardown", "grace", logoutGrace)
		if t.sessions != nil {
			t.clock.AfterFunc(logoutGrace, t.sessions.Invalidate)
		}
		return t.appendLocked(newMessage(RoleAssistant, sessionExpiredMessage))
	}

	t.logger.Error("chat turn failed", "error", err)
	return t.appendLocked(newMessage(RoleAssistant, apologyMessage))
}

// appendLocked appends messages and returns the appended slice. Callers
// must hold t.mu.
func (t *Transcript) appendLocked(msgs ...Message) []Message {
	t.messages = append(t.messages, msgs...)
	return msgs
}
