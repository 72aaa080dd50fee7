package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-casimiro/zenith-ai/internal/models"
)

func TestHistoryClient_List(t *testing.T) {
	t.Run("returns entries", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/summaries", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]models.HistoryEntry{
				{ID: "s-1", Title: "Quarterly report", Preview: "The quarter closed…"},
				{ID: "s-2", Title: "Meeting notes", Preview: "Attendees agreed…"},
			})
		}))
		defer srv.Close()

		entries := NewHistoryClient(srv.URL).List(context.Background(), "tok")
		require.Len(t, entries, 2)
		assert.Equal(t, "s-1", entries[0].ID)
		assert.Equal(t, "Meeting notes", entries[1].Title)
	})

	t.Run("empty token yields empty list without a request", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		entries := NewHistoryClient(srv.URL).List(context.Background(), "")
		assert.Empty(t, entries)
		assert.False(t, called)
	})

	t.Run("non-success yields empty list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		assert.Empty(t, NewHistoryClient(srv.URL).List(context.Background(), "tok"))
	})

	t.Run("transport error yields empty list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		assert.Empty(t, NewHistoryClient(srv.URL).List(context.Background(), "tok"))
	})
}

func TestHistoryClient_GetSummary(t *testing.T) {
	stored := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/summaries/s-1", r.URL.Path)
			json.NewEncoder(w).Encode(models.SummaryDetail{
				OriginalText: "long document",
				SummaryText:  "short summary",
				Timestamp:    stored,
			})
		}))
		defer srv.Close()

		detail, err := NewHistoryClient(srv.URL).GetSummary(context.Background(), "tok", "s-1")
		require.NoError(t, err)
		assert.Equal(t, "long document", detail.OriginalText)
		assert.Equal(t, "short summary", detail.SummaryText)
		assert.True(t, detail.Timestamp.Equal(stored))
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Summary not found"})
		}))
		defer srv.Close()

		detail, err := NewHistoryClient(srv.URL).GetSummary(context.Background(), "tok", "missing")
		assert.Nil(t, detail)
		require.Error(t, err)
		assert.Equal(t, "Summary not found", err.Error())
	})
}

func TestHistoryClient_Summarize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/summarize_document", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "doc text", body["text"])
			json.NewEncoder(w).Encode(map[string]string{"summary": "the gist"})
		}))
		defer srv.Close()

		summary, err := NewHistoryClient(srv.URL).Summarize(context.Background(), "tok", "doc text")
		require.NoError(t, err)
		assert.Equal(t, "the gist", summary)
	})

	t.Run("backend failure carries detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"detail": "model unavailable"})
		}))
		defer srv.Close()

		_, err := NewHistoryClient(srv.URL).Summarize(context.Background(), "tok", "doc text")
		require.Error(t, err)
		assert.Equal(t, "model unavailable", err.Error())
	})

	t.Run("status without detail falls back to status text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHistoryClient(srv.URL).Summarize(context.Background(), "tok", "doc text")
		require.Error(t, err)
		assert.Equal(t, "Service Unavailable", err.Error())
	})
}
