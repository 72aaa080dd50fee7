package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/j-casimiro/zenith-ai/internal/models"
)

// AuthClient talks to the backend's authentication and token endpoints.
type AuthClient struct {
	baseURL string
	client  *http.Client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		baseURL: baseURL,
		client:  newHTTPClient(),
	}
}

// Validate asks the backend whether the token is still good. Transport
// errors are returned as-is; callers treat them the same as valid=false.
func (a *AuthClient) Validate(ctx context.Context, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(a.baseURL, "/validate"), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	setBearer(req, token)

	resp, err := a.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("validate request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode validate response: %w", err)
	}
	return payload.Valid, nil
}

// CurrentUser fetches the authenticated user's profile.
func (a *AuthClient) CurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(a.baseURL, "/current_user"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setBearer(req, token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("current_user request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, a.backendError(resp)
	}

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// Login performs the OAuth2 password grant. The form layout is fixed by
// the backend: empty scope and client_secret, and the literal client_id
// the API docs flow sends.
func (a *AuthClient) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	form.Set("scope", "")
	form.Set("client_id", "string")
	form.Set("client_secret", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(a.baseURL, "/login"), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		Detail       string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, &BackendError{Status: resp.StatusCode, Detail: payload.Detail}
	}
	return &models.TokenPair{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
	}, nil
}

// Register creates a new user account.
func (a *AuthClient) Register(ctx context.Context, name, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(a.baseURL, "/register"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return a.backendError(resp)
	}
	return nil
}

// Logout invalidates the session server-side. Best effort: the caller
// clears its cookies whether or not this succeeds.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(a.baseURL, "/logout"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	setBearer(req, token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return a.backendError(resp)
	}
	return nil
}

// Refresh exchanges the refresh token cookie for a new access token.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(a.baseURL, "/refresh"), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", a.backendError(resp)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	return payload.AccessToken, nil
}

// GoogleLoginURL is the redirect target that starts the Google OAuth flow.
func (a *AuthClient) GoogleLoginURL() string {
	return joinURL(a.baseURL, "/auth/google/login")
}

// GoogleCallback exchanges the one-time authorization code for an access
// token and the user's profile.
func (a *AuthClient) GoogleCallback(ctx context.Context, code string) (string, *models.UserProfile, error) {
	target := joinURL(a.baseURL, "/auth/google/callback") + "?code=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("google callback request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		AccessToken string              `json:"access_token"`
		User        *models.UserProfile `json:"user"`
		Detail      string              `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", nil, fmt.Errorf("failed to decode callback response: %w", err)
	}
	if payload.AccessToken == "" || payload.User == nil {
		return "", nil, &BackendError{Status: resp.StatusCode, Detail: payload.Detail}
	}
	return payload.AccessToken, payload.User, nil
}

func (a *AuthClient) backendError(resp *http.Response) error {
	var payload detailPayload
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &payload)
	return &BackendError{Status: resp.StatusCode, Detail: payload.Detail}
}
