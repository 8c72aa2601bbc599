package backend

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchUsers pages through the public user directory. query narrows results
// server-side; an empty query lists everyone.
func (c *Client) SearchUsers(ctx context.Context, page int, query string) (ConnectionPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{"page": {strconv.Itoa(page)}}
	if q := strings.TrimSpace(query); q != "" {
		params.Set("search", q)
	}

	var resp connectionPageResponse
	if err := c.get(ctx, "/accounts/users/", params, &resp); err != nil {
		return ConnectionPage{}, err
	}
	return resp.page(), nil
}
