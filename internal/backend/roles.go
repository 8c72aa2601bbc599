package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Role is a row of the server-managed role catalog. Permission semantics stay
// server-side; this layer never interprets them.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var resp struct {
		Results []Role `json:"results"`
	}
	if err := c.get(ctx, "/accounts/roles", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []Role{}, nil
	}
	return resp.Results, nil
}

func (c *Client) ListUserRoles(ctx context.Context, userID int64) ([]Role, error) {
	var resp struct {
		Results []Role `json:"results"`
	}
	path := fmt.Sprintf("/accounts/users/%d/roles", userID)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []Role{}, nil
	}
	return resp.Results, nil
}

func (c *Client) AssignRole(ctx context.Context, userID, roleID int64) error {
	payload := map[string]int64{"role_id": roleID}
	path := fmt.Sprintf("/accounts/users/%d/roles", userID)
	return c.post(ctx, path, payload, nil)
}

func (c *Client) RevokeRole(ctx context.Context, userID, roleID int64) error {
	path := fmt.Sprintf("/accounts/users/%d/roles/%d", userID, roleID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
