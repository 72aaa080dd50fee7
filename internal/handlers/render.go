package handlers

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/j-casimiro/zenith-ai/internal/assets"
)

// Renderer executes embedded page templates into fiber responses.
type Renderer struct {
	tpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tpl, err := assets.Templates()
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl}, nil
}

// Render executes the named template into a buffer first so a template
// error never produces a half-written page.
func (r *Renderer) Render(c *fiber.Ctx, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
