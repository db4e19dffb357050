package api

// AuthResult is the server's answer to a successful login or registration.
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns its first session.
func (c *Client) Register(email, password, displayName string) (*AuthResult, error) {
	var result AuthResult
	err := c.Post("/register", registerRequest{Email: email, Password: password, DisplayName: displayName}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Login authenticates with email and password.
func (c *Client) Login(email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.Post("/login", loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout() error {
	return c.Post("/logout", nil, nil)
}

// Me returns the authenticated account's id and email.
func (c *Client) Me() (map[string]string, error) {
	result := map[string]string{}
	if err := c.Get("/me", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RequestMagicLink asks for a passwordless login link. The development
// server returns the token directly.
func (c *Client) RequestMagicLink(email string) (string, error) {
	result := map[string]string{}
	err := c.Post("/magic-link", map[string]string{"email": email}, &result)
	if err != nil {
		return "", err
	}
	return result["token"], nil
}

// VerifyMagicLink exchanges a magic link token for a session.
func (c *Client) VerifyMagicLink(token string) (*AuthResult, error) {
	var result AuthResult
	if err := c.Get("/magic-link/"+token, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}
