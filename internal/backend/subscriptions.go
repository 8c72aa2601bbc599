package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Subscription is the server's record of an email subscription.
type Subscription struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// Subscribe registers an email address and returns the server's record, whose
// ID seeds the opaque unsubscribe token minted by this layer.
func (c *Client) Subscribe(ctx context.Context, email string) (Subscription, error) {
	payload := map[string]string{"email": email}
	var sub Subscription
	if err := c.post(ctx, "/subscriptions/", payload, &sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

func (c *Client) Unsubscribe(ctx context.Context, subscriptionID int64) error {
	path := fmt.Sprintf("/subscriptions/%d", subscriptionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
