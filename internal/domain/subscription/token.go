package subscription

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

// ErrInvalidToken marks an unsubscribe token that does not decode to a
// subscription ID. Callers treat it as bad input, not a server fault.
var ErrInvalidToken = errors.New("invalid unsubscribe token")

// TokenCodec turns subscription IDs into opaque unsubscribe tokens and back.
// Tokens are not secrets, just unguessable enough to keep unsubscribe links
// from being enumerable.
type TokenCodec struct {
	h *hashids.HashID
}

func NewTokenCodec(salt string) (*TokenCodec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("building hashid codec: %w", err)
	}
	return &TokenCodec{h: h}, nil
}

func (c *TokenCodec) Encode(subscriptionID int64) (string, error) {
	token, err := c.h.EncodeInt64([]int64{subscriptionID})
	if err != nil {
		return "", fmt.Errorf("encoding subscription %d: %w", subscriptionID, err)
	}
	return token, nil
}

func (c *TokenCodec) Decode(token string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(token)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidToken
	}
	return ids[0], nil
}
