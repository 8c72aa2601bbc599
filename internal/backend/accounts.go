package backend

import (
	"context"
	"net/http"
)

// Profile is the viewer's own account document.
type Profile struct {
	UserID    int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	AvatarURL string `json:"avatar_url"`
}

func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/accounts/profile", nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// UpdateProfile sends a partial update. Only the keys present in updates are
// touched server-side; the response is the full post-update document.
func (c *Client) UpdateProfile(ctx context.Context, updates map[string]any) (Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPatch, "/accounts/profile", nil, updates, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
