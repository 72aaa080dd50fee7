package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-casimiro/zenith-ai/internal/models"
)

type fakeBackend struct {
	summary      string
	summarizeErr error
	detail       *models.SummaryDetail
	getErr       error

	summarizeCalls int
	stored         map[string]*models.SummaryDetail
}

func (f *fakeBackend) Summarize(ctx context.Context, token, text string) (string, error) {
	f.summarizeCalls++
	if f.summarizeErr != nil {
		return "", f.summarizeErr
	}
	if f.stored != nil {
		f.stored["s-1"] = &models.SummaryDetail{
			OriginalText: text,
			SummaryText:  f.summary,
			Timestamp:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		}
	}
	return f.summary, nil
}

func (f *fakeBackend) GetSummary(ctx context.Context, token, id string) (*models.SummaryDetail, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored != nil {
		if d, ok := f.stored[id]; ok {
			return d, nil
		}
	}
	return f.detail, nil
}

func TestSubmit_EmptyInputIsNoOp(t *testing.T) {
	backend := &fakeBackend{summary: "gist"}
	s := NewSession(backend)

	for _, text := range []string{"", "   ", "\n\t "} {
		ok := s.Submit(context.Background(), "tok", text)
		assert.False(t, ok)
	}

	assert.Empty(t, s.Messages())
	assert.Zero(t, backend.summarizeCalls)
	assert.False(t, s.Submitting())
}

func TestSubmit_SuccessAppendsUserThenAssistant(t *testing.T) {
	s := NewSession(&fakeBackend{summary: "the gist"})

	ok := s.Submit(context.Background(), "tok", "doc text")
	assert.True(t, ok)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderUser, msgs[0].Sender)
	assert.Equal(t, "doc text", msgs[0].Text)
	assert.Equal(t, models.SenderAssistant, msgs[1].Sender)
	assert.Equal(t, "the gist", msgs[1].Text)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
	assert.False(t, s.Submitting())
}

func TestSubmit_FailureAppendsErrorMessage(t *testing.T) {
	s := NewSession(&fakeBackend{summarizeErr: errors.New("model unavailable")})

	ok := s.Submit(context.Background(), "tok", "doc text")
	assert.False(t, ok)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "doc text", msgs[0].Text)
	assert.Equal(t, models.SenderAssistant, msgs[1].Sender)
	assert.Contains(t, msgs[1].Text, "Summarization failed")
	assert.Contains(t, msgs[1].Text, "model unavailable")
	assert.False(t, s.Submitting())
}

func TestSubmit_MissingTokenAppendsAuthError(t *testing.T) {
	backend := &fakeBackend{summary: "gist"}
	s := NewSession(backend)

	ok := s.Submit(context.Background(), "", "doc text")
	assert.False(t, ok)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Text, "No access token found")
	assert.Zero(t, backend.summarizeCalls)
}

func TestSubmit_NotIdempotent(t *testing.T) {
	s := NewSession(&fakeBackend{summary: "gist"})

	s.Submit(context.Background(), "tok", "same text")
	s.Submit(context.Background(), "tok", "same text")

	assert.Len(t, s.Messages(), 4)
}

func TestStartNew_ResetsTranscriptAndSelection(t *testing.T) {
	s := NewSession(&fakeBackend{summary: "gist"})
	s.Submit(context.Background(), "tok", "doc text")
	s.SelectHistory(context.Background(), "tok", "s-9")

	s.StartNew()

	assert.Empty(t, s.Messages())
	assert.Empty(t, s.SelectedHistoryID())

	// Idempotent.
	s.StartNew()
	assert.Empty(t, s.Messages())
}

func TestClear_KeepsSelection(t *testing.T) {
	stored := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(&fakeBackend{detail: &models.SummaryDetail{
		OriginalText: "orig", SummaryText: "sum", Timestamp: stored,
	}})
	s.SelectHistory(context.Background(), "tok", "s-3")
	require.Len(t, s.Messages(), 2)

	s.Clear()

	assert.Empty(t, s.Messages())
	assert.Equal(t, "s-3", s.SelectedHistoryID())
}

func TestSelectHistory_ReplacesTranscript(t *testing.T) {
	stored := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(&fakeBackend{detail: &models.SummaryDetail{
		OriginalText: "long document",
		SummaryText:  "short summary",
		Timestamp:    stored,
	}})
	s.Submit(context.Background(), "tok", "unrelated")

	s.SelectHistory(context.Background(), "tok", "s-1")

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderUser, msgs[0].Sender)
	assert.Equal(t, "long document", msgs[0].Text)
	assert.True(t, msgs[0].CreatedAt.Equal(stored))
	assert.Equal(t, models.SenderAssistant, msgs[1].Sender)
	assert.Equal(t, "short summary", msgs[1].Text)
	assert.True(t, msgs[1].CreatedAt.Equal(stored))
	assert.Equal(t, "s-1", s.SelectedHistoryID())
}

func TestSelectHistory_FailureLeavesTranscript(t *testing.T) {
	s := NewSession(&fakeBackend{summary: "gist", getErr: errors.New("not found")})
	s.Submit(context.Background(), "tok", "doc text")
	before := s.Messages()

	s.SelectHistory(context.Background(), "tok", "missing")

	assert.Equal(t, before, s.Messages())
}

func TestSubmitThenSelectHistory_RoundTrip(t *testing.T) {
	backend := &fakeBackend{
		summary: "the gist",
		stored:  map[string]*models.SummaryDetail{},
	}
	s := NewSession(backend)

	require.True(t, s.Submit(context.Background(), "tok", "doc text"))
	submitted := s.Messages()

	s.SelectHistory(context.Background(), "tok", "s-1")
	replayed := s.Messages()

	require.Len(t, replayed, 2)
	assert.Equal(t, submitted[0].Text, replayed[0].Text)
	assert.Equal(t, submitted[1].Text, replayed[1].Text)
}

func TestManager_SessionPerToken(t *testing.T) {
	m := NewManager(&fakeBackend{summary: "gist"})

	a := m.Session("tok-a")
	b := m.Session("tok-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Session("tok-a"))

	m.Drop("tok-a")
	assert.NotSame(t, a, m.Session("tok-a"))
}
