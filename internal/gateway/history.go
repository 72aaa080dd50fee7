package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/j-casimiro/zenith-ai/internal/logger"
	"github.com/j-casimiro/zenith-ai/internal/models"
)

// HistoryClient talks to the summarization endpoints: listing stored
// summaries, fetching one, and producing a new one.
type HistoryClient struct {
	baseURL string
	client  *http.Client
}

func NewHistoryClient(baseURL string) *HistoryClient {
	return &HistoryClient{
		baseURL: baseURL,
		client:  newHTTPClient(),
	}
}

// List returns the caller's stored summaries. Any failure, including a
// missing token, yields an empty slice rather than an error: the sidebar
// simply shows nothing.
func (h *HistoryClient) List(ctx context.Context, token string) []models.HistoryEntry {
	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(h.baseURL, "/summaries"), nil)
	if err != nil {
		return nil
	}
	setBearer(req, token)

	resp, err := h.client.Do(req)
	if err != nil {
		logger.Debugf("history list failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var entries []models.HistoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		logger.Debugf("history list decode failed: %v", err)
		return nil
	}
	return entries
}

// GetSummary fetches one stored summarization by id.
func (h *HistoryClient) GetSummary(ctx context.Context, token, id string) (*models.SummaryDetail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(h.baseURL, "/summaries/"+id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setBearer(req, token)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, h.backendError(resp)
	}

	var detail models.SummaryDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &detail, nil
}

// Summarize submits a document and returns the generated summary.
func (h *HistoryClient) Summarize(ctx context.Context, token, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(h.baseURL, "/summarize_document"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	setBearer(req, token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", h.backendError(resp)
	}

	var payload struct {
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode summary response: %w", err)
	}
	return payload.Summary, nil
}

func (h *HistoryClient) backendError(resp *http.Response) error {
	var payload detailPayload
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &payload)
	return &BackendError{Status: resp.StatusCode, Detail: payload.Detail}
}
