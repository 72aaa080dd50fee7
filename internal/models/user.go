package models

// UserProfile is the authenticated user's display record from GET /current_user.
type UserProfile struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenPair is the response of a successful password-grant login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
