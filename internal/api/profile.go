package api

import "github.com/existflow/taskdeck/internal/model"

// ProfileFields carries the profile's editable fields. Email is immutable
// through the API.
type ProfileFields struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// GetProfile returns the owner's profile.
func (c *Client) GetProfile() (*model.Profile, error) {
	var p model.Profile
	if err := c.Get("/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile updates display name and avatar URL.
func (c *Client) UpdateProfile(fields ProfileFields) (*model.Profile, error) {
	var p model.Profile
	if err := c.Put("/profile", fields, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
