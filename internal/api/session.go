package api

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Session holds the persisted login state at ~/.taskdeck/session.json.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
}

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck", "session.json"), nil
}

// LoadSession reads the persisted session. A missing file yields an empty
// session with the given fallback server URL, not an error.
func LoadSession(defaultServerURL string) (*Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &Session{ServerURL: defaultServerURL}, nil
	}

	s := &Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return &Session{ServerURL: defaultServerURL}, nil
	}
	if s.ServerURL == "" {
		s.ServerURL = defaultServerURL
	}
	return s, nil
}

// Save persists the session with owner-only permissions.
func (s *Session) Save() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Clear forgets the login but keeps the server URL.
func (s *Session) Clear() error {
	s.Token = ""
	s.UserID = ""
	s.Email = ""
	return s.Save()
}

// IsLoggedIn returns true if a token is present.
func (s *Session) IsLoggedIn() bool {
	return s.Token != ""
}

// Client builds an API client from the session.
func (s *Session) Client() *Client {
	return NewClient(s.ServerURL, s.Token)
}
