package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RelationshipStatus mirrors the status payload returned by every follow
// endpoint. Counts are computed server-side only.
type RelationshipStatus struct {
	IsFollowing    bool `json:"is_following"`
	FollowersCount int  `json:"followers_count"`
}

// UserSummary is one row of a follower/following/directory listing.
type UserSummary struct {
	UserID      int64  `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	IsFollowing bool   `json:"is_following"`
}

// ConnectionPage is one page of user rows plus cursor state.
type ConnectionPage struct {
	Items      []UserSummary
	TotalCount int
	HasMore    bool
}

type connectionPageResponse struct {
	Results []UserSummary `json:"results"`
	Count   int           `json:"count"`
	Next    *string       `json:"next"`
}

func (r connectionPageResponse) page() ConnectionPage {
	items := r.Results
	if items == nil {
		items = []UserSummary{}
	}
	return ConnectionPage{
		Items:      items,
		TotalCount: r.Count,
		HasMore:    r.Next != nil,
	}
}

func (c *Client) CheckStatus(ctx context.Context, subjectID int64) (RelationshipStatus, error) {
	var status RelationshipStatus
	path := fmt.Sprintf("/relationships/status/%d", subjectID)
	if err := c.get(ctx, path, nil, &status); err != nil {
		return RelationshipStatus{}, err
	}
	return status, nil
}

func (c *Client) Follow(ctx context.Context, subjectID int64) (RelationshipStatus, error) {
	var status RelationshipStatus
	path := fmt.Sprintf("/relationships/follow/%d", subjectID)
	if err := c.post(ctx, path, nil, &status); err != nil {
		return RelationshipStatus{}, err
	}
	return status, nil
}

func (c *Client) Unfollow(ctx context.Context, subjectID int64) (RelationshipStatus, error) {
	var status RelationshipStatus
	path := fmt.Sprintf("/relationships/unfollow/%d", subjectID)
	if err := c.post(ctx, path, nil, &status); err != nil {
		return RelationshipStatus{}, err
	}
	return status, nil
}

func (c *Client) ListFollowers(ctx context.Context, subjectID int64, page int) (ConnectionPage, error) {
	return c.listConnections(ctx, fmt.Sprintf("/relationships/followers/%d", subjectID), page)
}

func (c *Client) ListFollowing(ctx context.Context, subjectID int64, page int) (ConnectionPage, error) {
	return c.listConnections(ctx, fmt.Sprintf("/relationships/following/%d", subjectID), page)
}

func (c *Client) listConnections(ctx context.Context, path string, page int) (ConnectionPage, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{"page": {strconv.Itoa(page)}}

	var resp connectionPageResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return ConnectionPage{}, err
	}
	return resp.page(), nil
}
