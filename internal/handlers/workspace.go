package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/j-casimiro/zenith-ai/internal/chat"
	"github.com/j-casimiro/zenith-ai/internal/guard"
	"github.com/j-casimiro/zenith-ai/internal/models"
	"github.com/j-casimiro/zenith-ai/internal/session"
)

// HistoryLister is the slice of the history gateway the workspace needs
// beyond what the chat session already holds.
type HistoryLister interface {
	List(ctx context.Context, token string) []models.HistoryEntry
}

// WorkspaceHandler serves the chat workspace and its actions.
type WorkspaceHandler struct {
	guard    *guard.Guard
	store    *session.Store
	sessions *chat.Manager
	history  HistoryLister
	render   *Renderer
}

func NewWorkspaceHandler(g *guard.Guard, store *session.Store, sessions *chat.Manager, history HistoryLister, render *Renderer) *WorkspaceHandler {
	return &WorkspaceHandler{
		guard:    g,
		store:    store,
		sessions: sessions,
		history:  history,
		render:   render,
	}
}

// Workspace renders the chat view. The in-page check runs even though the
// navigation guard already passed: a cookie that is present but expired
// gets caught here, cleared, and redirected.
func (h *WorkspaceHandler) Workspace(c *fiber.Ctx) error {
	result := h.guard.Check(c)
	if result.State != guard.StateAuthenticated {
		return c.Redirect("/auth/login", fiber.StatusFound)
	}

	token := h.store.Token(c)
	sess := h.sessions.Session(token)

	return h.render.Render(c, "workspace.html", fiber.Map{
		"UserName":          result.DisplayName,
		"Messages":          sess.Messages(),
		"History":           h.history.List(c.Context(), token),
		"Submitting":        sess.Submitting(),
		"SelectedHistoryID": sess.SelectedHistoryID(),
	})
}

// Summarize submits the pasted document. The redirect back to the
// workspace re-renders the transcript and refetches the history list, so
// a successful summarization shows up in the sidebar immediately.
func (h *WorkspaceHandler) Summarize(c *fiber.Ctx) error {
	token := h.store.Token(c)
	h.sessions.Session(token).Submit(c.Context(), token, c.FormValue("text"))
	return c.Redirect("/workspace", fiber.StatusSeeOther)
}

// NewChat starts a fresh transcript and drops the history selection.
func (h *WorkspaceHandler) NewChat(c *fiber.Ctx) error {
	h.sessions.Session(h.store.Token(c)).StartNew()
	return c.Redirect("/workspace", fiber.StatusSeeOther)
}

// ClearChat empties the transcript, keeping the history selection.
func (h *WorkspaceHandler) ClearChat(c *fiber.Ctx) error {
	h.sessions.Session(h.store.Token(c)).Clear()
	return c.Redirect("/workspace", fiber.StatusSeeOther)
}

// SelectHistory loads a stored summarization into the transcript. On
// fetch failure the transcript is left as it was.
func (h *WorkspaceHandler) SelectHistory(c *fiber.Ctx) error {
	token := h.store.Token(c)
	h.sessions.Session(token).SelectHistory(c.Context(), token, c.Params("id"))
	return c.Redirect("/workspace", fiber.StatusFound)
}
