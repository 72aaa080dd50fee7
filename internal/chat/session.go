// Package chat holds the in-memory transcript of one summarization
// conversation and drives message submission against the backend.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/j-casimiro/zenith-ai/internal/models"
)

// Backend is the slice of the history gateway a session needs.
type Backend interface {
	Summarize(ctx context.Context, token, text string) (string, error)
	GetSummary(ctx context.Context, token, id string) (*models.SummaryDetail, error)
}

// Session is one visitor's chat state. Appends are serialized by the
// mutex, so transcript order always matches submission order. Failed
// submissions append an error message rather than rolling back the
// optimistic user message.
type Session struct {
	mu                sync.Mutex
	transcript        []models.ChatMessage
	pendingInput      string
	submitting        bool
	selectedHistoryID string

	backend Backend
	now     func() time.Time
	newID   func() string
}

func NewSession(backend Backend) *Session {
	return &Session{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Messages returns a copy of the transcript in conversation order.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Submitting reports whether a submission is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SelectedHistoryID returns the id of the loaded history entry, or "".
func (s *Session) SelectedHistoryID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedHistoryID
}

// Submit sends text to the summarizer. Empty or whitespace-only input and
// overlapping submissions are no-ops. The user message is appended before
// the request goes out; the assistant message carries either the summary
// or a human-readable error. Returns true when the summarization
// succeeded, which is the caller's cue to refresh the history list.
func (s *Session) Submit(ctx context.Context, token, text string) bool {
	s.mu.Lock()
	if strings.TrimSpace(text) == "" || s.submitting {
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.pendingInput = text
	s.transcript = append(s.transcript, s.message(models.SenderUser, text))
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.pendingInput = ""
		s.mu.Unlock()
	}()

	if token == "" {
		s.append(s.message(models.SenderAssistant,
			"Authentication error: No access token found. Please log in again."))
		return false
	}

	summary, err := s.backend.Summarize(ctx, token, text)
	if err != nil {
		s.append(s.message(models.SenderAssistant, "Summarization failed: "+err.Error()))
		return false
	}

	s.append(s.message(models.SenderAssistant, summary))
	return true
}

// StartNew replaces the transcript with an empty one and drops the
// history selection. Idempotent.
func (s *Session) StartNew() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
	s.selectedHistoryID = ""
}

// Clear empties the transcript without touching the history selection.
// Idempotent.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
}

// SelectHistory loads a stored summarization and replaces the transcript
// with its two messages, both stamped with the stored timestamp. On any
// failure the current transcript is left untouched.
func (s *Session) SelectHistory(ctx context.Context, token, id string) {
	s.mu.Lock()
	s.selectedHistoryID = id
	s.mu.Unlock()

	if token == "" {
		return
	}

	detail, err := s.backend.GetSummary(ctx, token, id)
	if err != nil || detail == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = []models.ChatMessage{
		{ID: s.newID(), Sender: models.SenderUser, Text: detail.OriginalText, CreatedAt: detail.Timestamp},
		{ID: s.newID(), Sender: models.SenderAssistant, Text: detail.SummaryText, CreatedAt: detail.Timestamp},
	}
}

func (s *Session) message(sender models.Sender, text string) models.ChatMessage {
	return models.ChatMessage{
		ID:        s.newID(),
		Sender:    sender,
		Text:      text,
		CreatedAt: s.now(),
	}
}

func (s *Session) append(msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, msg)
}
