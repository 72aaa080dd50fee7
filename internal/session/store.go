// Package session owns the bearer token held in the visitor's cookies.
// There is no server-side session state: the cookie is the session, and
// validity is always delegated to the auth backend.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	AccessTokenCookie = "access_token"
	// RefreshTokenCookie is issued by the backend; this store only ever
	// clears it.
	RefreshTokenCookie = "refresh_token"
)

// Store reads and writes the access token cookie on a request context.
// It performs no expiry validation of its own.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Token returns the bearer token from the request, or "" when absent.
func (s *Store) Token(c *fiber.Ctx) string {
	return c.Cookies(AccessTokenCookie)
}

// Set stores the access token with the given lifetime, path=/.
func (s *Store) Set(c *fiber.Ctx, token string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear deletes both token cookies by issuing them with a past expiry.
func (s *Store) Clear(c *fiber.Ctx) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		})
	}
}
