package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/j-casimiro/zenith-ai/internal/guard"
)

// HomeHandler serves the landing page, which doubles as the authenticated
// home when the visitor's token checks out.
type HomeHandler struct {
	guard  *guard.Guard
	render *Renderer
}

func NewHomeHandler(g *guard.Guard, render *Renderer) *HomeHandler {
	return &HomeHandler{guard: g, render: render}
}

// Landing resolves the auth check and renders either the authenticated
// home or the marketing page. The landing route is public, so an
// unauthenticated visitor is never redirected from here.
func (h *HomeHandler) Landing(c *fiber.Ctx) error {
	result := h.guard.Check(c)
	if result.State == guard.StateAuthenticated {
		return h.render.Render(c, "home.html", fiber.Map{
			"UserName": result.DisplayName,
		})
	}
	return h.render.Render(c, "landing.html", fiber.Map{
		"Year": time.Now().Year(),
	})
}
