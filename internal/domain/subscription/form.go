package subscription

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"fintalkweb/internal/backend"
)

// SubscriptionClient is the slice of the backend API the subscribe box needs.
type SubscriptionClient interface {
	Subscribe(ctx context.Context, email string) (backend.Subscription, error)
	Unsubscribe(ctx context.Context, subscriptionID int64) error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Status tracks where the subscribe box is in its submit cycle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSubscribed Status = "subscribed"
	StatusError      Status = "error"
)

// Messages surfaced through FormState. Exported so the HTTP layer can map
// them back onto status codes.
const (
	DuplicateMessage    = "This email address is already subscribed."
	InvalidEmailMessage = "Enter a valid email address."
)

// Form backs the email subscription box. After a successful submit it carries
// the subscriber's unsubscribe URL, minted from the server-assigned
// subscription ID.
type Form struct {
	client          SubscriptionClient
	codec           *TokenCodec
	unsubscribeBase string

	mu             sync.Mutex
	status         Status
	email          string
	unsubscribeURL string
	errMsg         string
	closed         bool
}

type FormState struct {
	Status         Status `json:"status"`
	Email          string `json:"email"`
	UnsubscribeURL string `json:"unsubscribe_url,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// NewForm builds a subscribe form. unsubscribeBase is the absolute URL of the
// unsubscribe route without a trailing token segment.
func NewForm(client SubscriptionClient, codec *TokenCodec, unsubscribeBase string) *Form {
	return &Form{
		client:          client,
		codec:           codec,
		unsubscribeBase: strings.TrimRight(unsubscribeBase, "/"),
		status:          StatusIdle,
	}
}

// Submit validates the address and posts it. Invalid addresses never reach the
// server. A duplicate subscription gets its own message instead of the generic
// fallback.
func (f *Form) Submit(ctx context.Context, email string) {
	f.mu.Lock()
	if f.status == StatusSubmitting || f.closed {
		f.mu.Unlock()
		return
	}
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		f.status = StatusError
		f.errMsg = InvalidEmailMessage
		f.mu.Unlock()
		return
	}
	f.status = StatusSubmitting
	f.errMsg = ""
	f.mu.Unlock()

	sub, err := f.client.Subscribe(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if err != nil {
		f.status = StatusError
		if errors.Is(err, backend.ErrConflict) {
			f.errMsg = DuplicateMessage
		} else {
			f.errMsg = backend.UserMessage(err)
		}
		return
	}
	f.status = StatusSubscribed
	f.email = sub.Email
	if token, err := f.codec.Encode(sub.ID); err == nil {
		f.unsubscribeURL = f.unsubscribeBase + "/" + token
	}
}

// RetryAfterError returns the form to idle so the address can be resubmitted.
func (f *Form) RetryAfterError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.status != StatusError {
		return
	}
	f.status = StatusIdle
	f.errMsg = ""
}

func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{
		Status:         f.status,
		Email:          f.email,
		UnsubscribeURL: f.unsubscribeURL,
		ErrorMessage:   f.errMsg,
	}
}
