package models

import "time"

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is a single entry in a summarization transcript. Insertion
// order is conversation order.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is the backend's summary of a stored transcript.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	Timestamp time.Time `json:"timestamp"`
}

// SummaryDetail is one stored summarization, as returned by GET /summaries/{id}.
type SummaryDetail struct {
	OriginalText string    `json:"original_text"`
	SummaryText  string    `json:"summary_text"`
	Timestamp    time.Time `json:"timestamp"`
}
