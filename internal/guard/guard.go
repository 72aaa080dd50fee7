// Package guard decides what a visitor may see. Two independent layers:
// a cheap cookie-presence check applied to every navigation, and the
// per-page check that actually validates the token with the backend.
// They can disagree on a stale cookie; the page check clears the cookie
// when that happens, so the layers converge on the next navigation.
package guard

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/j-casimiro/zenith-ai/internal/logger"
	"github.com/j-casimiro/zenith-ai/internal/models"
	"github.com/j-casimiro/zenith-ai/internal/session"
)

// State is the outcome of the per-page auth check.
type State int

const (
	// StateUnknown is the initial state, before the check has resolved.
	// Pages must not render protected content while Unknown.
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// DefaultDisplayName is shown when the profile fetch fails after a
// successful validate.
const DefaultDisplayName = "User"

// AuthVerifier is the slice of the auth gateway the guard needs.
type AuthVerifier interface {
	Validate(ctx context.Context, token string) (bool, error)
	CurrentUser(ctx context.Context, token string) (*models.UserProfile, error)
}

// Result is the resolved page-check outcome.
type Result struct {
	State       State
	DisplayName string
	Profile     *models.UserProfile
}

type Guard struct {
	store *session.Store
	auth  AuthVerifier
}

func New(store *session.Store, auth AuthVerifier) *Guard {
	return &Guard{store: store, auth: auth}
}

// Check runs the per-page state machine once for this request:
//
//	unknown -> unauthenticated   no token, invalid token, or validate error
//	unknown -> authenticated     validate succeeded
//
// An invalid or erroring token is cleared so the navigation layer agrees
// on the next request. A failed profile fetch does not demote the state;
// the page renders with the default display name.
func (g *Guard) Check(c *fiber.Ctx) Result {
	result := Result{State: StateUnknown, DisplayName: DefaultDisplayName}

	token := g.store.Token(c)
	if token == "" {
		result.State = StateUnauthenticated
		return result
	}

	valid, err := g.auth.Validate(c.Context(), token)
	if err != nil || !valid {
		if err != nil {
			logger.Debugf("auth check failed: %v", err)
		}
		g.store.Clear(c)
		result.State = StateUnauthenticated
		return result
	}

	if profile, err := g.auth.CurrentUser(c.Context(), token); err == nil {
		result.Profile = profile
		if profile.Name != "" {
			result.DisplayName = profile.Name
		}
	} else {
		logger.Debugf("profile fetch failed: %v", err)
	}

	result.State = StateAuthenticated
	return result
}

// Navigation returns the coarse cookie-presence middleware. It never calls
// the backend: a present-but-expired token passes here and is caught by
// Check on the page itself.
func (g *Guard) Navigation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := g.store.Token(c)
		path := c.Path()

		if token != "" && (path == "/auth/login" || path == "/auth/register") {
			return c.Redirect("/", fiber.StatusFound)
		}

		if token == "" && path != "/" &&
			!strings.HasPrefix(path, "/auth") &&
			!strings.HasPrefix(path, "/static") {
			return c.Redirect("/auth/login", fiber.StatusFound)
		}

		return c.Next()
	}
}
