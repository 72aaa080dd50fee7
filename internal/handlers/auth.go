package handlers

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/j-casimiro/zenith-ai/internal/gateway"
	"github.com/j-casimiro/zenith-ai/internal/logger"
	"github.com/j-casimiro/zenith-ai/internal/models"
	"github.com/j-casimiro/zenith-ai/internal/session"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthGateway is the slice of the auth client the handlers need.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context, token string) error
	GoogleCallback(ctx context.Context, code string) (string, *models.UserProfile, error)
	GoogleLoginURL() string
}

// ProfileStore caches the profile returned by the OAuth exchange.
type ProfileStore interface {
	Put(profile *models.UserProfile) error
}

// SessionDropper discards a visitor's chat state on logout.
type SessionDropper interface {
	Drop(token string)
}

// AuthHandler serves the login, register, logout, and OAuth callback flows.
type AuthHandler struct {
	auth        AuthGateway
	store       *session.Store
	profiles    ProfileStore
	sessions    SessionDropper
	render      *Renderer
	loginMaxAge time.Duration
	oauthMaxAge time.Duration
}

func NewAuthHandler(auth AuthGateway, store *session.Store, profiles ProfileStore, sessions SessionDropper, render *Renderer, loginMaxAge, oauthMaxAge time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		store:       store,
		profiles:    profiles,
		sessions:    sessions,
		render:      render,
		loginMaxAge: loginMaxAge,
		oauthMaxAge: oauthMaxAge,
	}
}

// LoginPage renders the sign-in form. A message query parameter (set by
// register and by failed OAuth flows) is shown as a notice.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.render.Render(c, "login.html", fiber.Map{
		"Message":   c.Query("message"),
		"GoogleURL": h.auth.GoogleLoginURL(),
	})
}

// Login handles the sign-in form post. Success stores the access token
// cookie for a week and lands in the workspace; every failure re-renders
// the form with the backend's detail where available.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	renderError := func(msg string) error {
		return h.render.Render(c, "login.html", fiber.Map{
			"Error":     msg,
			"Email":     email,
			"GoogleURL": h.auth.GoogleLoginURL(),
		})
	}

	if email == "" || !emailPattern.MatchString(email) {
		return renderError("A valid email is required")
	}
	if password == "" {
		return renderError("Password is required")
	}

	pair, err := h.auth.Login(c.Context(), email, password)
	if err != nil {
		var be *gateway.BackendError
		if errors.As(err, &be) {
			msg := be.Detail
			if msg == "" {
				msg = "Login failed"
			}
			return renderError(msg)
		}
		logger.Warnf("login request failed: %v", err)
		return renderError("An error occurred during login")
	}

	h.store.Set(c, pair.AccessToken, h.loginMaxAge)
	return c.Redirect("/workspace", fiber.StatusSeeOther)
}

// RegisterPage renders the sign-up form.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return h.render.Render(c, "register.html", fiber.Map{})
}

// Register handles the sign-up form post. Success bounces to the login
// page with a notice; the account is not logged in automatically.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	renderError := func(msg string) error {
		return h.render.Render(c, "register.html", fiber.Map{
			"Error": msg,
			"Name":  name,
			"Email": email,
		})
	}

	if name == "" {
		return renderError("Name is required")
	}
	if email == "" || !emailPattern.MatchString(email) {
		return renderError("A valid email is required")
	}
	if password == "" {
		return renderError("Password is required")
	}

	if err := h.auth.Register(c.Context(), name, email, password); err != nil {
		var be *gateway.BackendError
		if errors.As(err, &be) && be.Detail != "" {
			return renderError(be.Detail)
		}
		logger.Warnf("register request failed: %v", err)
		return renderError("An error occurred during registration")
	}

	msg := url.QueryEscape("Registration successful. Please sign in.")
	return c.Redirect("/auth/login?message="+msg, fiber.StatusSeeOther)
}

// Logout invalidates the session server-side when possible, then clears
// the cookies regardless and drops the visitor's chat state.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := h.store.Token(c); token != "" {
		if err := h.auth.Logout(c.Context(), token); err != nil {
			logger.Debugf("remote logout failed: %v", err)
		}
		h.sessions.Drop(token)
	}
	h.store.Clear(c)
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// GoogleCallback exchanges the one-time code from the OAuth provider for
// an access token. OAuth sessions get the short cookie lifetime, and the
// returned profile is cached locally so the workspace can greet the user
// without another fetch.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	failed := func() error {
		return c.Redirect("/auth/login?message="+url.QueryEscape("Google login failed"), fiber.StatusFound)
	}

	code := c.Query("code")
	if code == "" {
		return failed()
	}

	token, user, err := h.auth.GoogleCallback(c.Context(), code)
	if err != nil {
		logger.Debugf("google callback failed: %v", err)
		return failed()
	}

	h.store.Set(c, token, h.oauthMaxAge)
	if h.profiles != nil {
		if err := h.profiles.Put(user); err != nil {
			logger.Warnf("profile cache write failed: %v", err)
		}
	}
	return c.Redirect("/workspace", fiber.StatusFound)
}
