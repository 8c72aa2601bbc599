package subscription

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"fintalkweb/internal/backend"
)

type fakeSubscriptionClient struct {
	mu sync.Mutex

	subscribeResult backend.Subscription
	subscribeErr    error
	subscribeCalls  int
	gotEmail        string

	unsubscribeErr   error
	unsubscribeCalls int
	gotID            int64
}

func (f *fakeSubscriptionClient) Subscribe(_ context.Context, email string) (backend.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribeCalls++
	f.gotEmail = email
	return f.subscribeResult, f.subscribeErr
}

func (f *fakeSubscriptionClient) Unsubscribe(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsubscribeCalls++
	f.gotID = id
	return f.unsubscribeErr
}

func newTestForm(t *testing.T, client *fakeSubscriptionClient) *Form {
	t.Helper()
	codec, err := NewTokenCodec("form-test-salt")
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	return NewForm(client, codec, "https://fintalk.test/v1/subscriptions/unsubscribe/")
}

func TestSubmitMintsUnsubscribeURL(t *testing.T) {
	t.Parallel()

	client := &fakeSubscriptionClient{
		subscribeResult: backend.Subscription{ID: 91, Email: "reader@example.com", IsActive: true},
	}
	form := newTestForm(t, client)

	form.Submit(context.Background(), "  reader@example.com ")

	state := form.State()
	if state.Status != StatusSubscribed {
		t.Fatalf("Status = %q, want %q", state.Status, StatusSubscribed)
	}
	if client.gotEmail != "reader@example.com" {
		t.Fatalf("submitted email = %q, want trimmed address", client.gotEmail)
	}
	prefix := "https://fintalk.test/v1/subscriptions/unsubscribe/"
	if !strings.HasPrefix(state.UnsubscribeURL, prefix) {
		t.Fatalf("UnsubscribeURL = %q, want prefix %q", state.UnsubscribeURL, prefix)
	}
	token := strings.TrimPrefix(state.UnsubscribeURL, prefix)
	codec, err := NewTokenCodec("form-test-salt")
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	if id, err := codec.Decode(token); err != nil || id != 91 {
		t.Fatalf("Decode(%q) = %d, %v, want 91, nil", token, id, err)
	}
}

func TestSubmitRejectsInvalidAddressWithoutRequest(t *testing.T) {
	t.Parallel()

	client := &fakeSubscriptionClient{}
	form := newTestForm(t, client)

	form.Submit(context.Background(), "not-an-address")

	state := form.State()
	if state.Status != StatusError {
		t.Fatalf("Status = %q, want %q", state.Status, StatusError)
	}
	if state.ErrorMessage == "" {
		t.Fatal("expected a validation message")
	}
	if client.subscribeCalls != 0 {
		t.Fatalf("Subscribe calls = %d, want 0", client.subscribeCalls)
	}
}

func TestSubmitSurfacesDuplicateDistinctly(t *testing.T) {
	t.Parallel()

	client := &fakeSubscriptionClient{
		subscribeErr: &backend.RequestError{StatusCode: http.StatusConflict, Message: "already subscribed"},
	}
	form := newTestForm(t, client)

	form.Submit(context.Background(), "reader@example.com")

	state := form.State()
	if state.Status != StatusError {
		t.Fatalf("Status = %q, want %q", state.Status, StatusError)
	}
	if state.ErrorMessage != DuplicateMessage {
		t.Fatalf("ErrorMessage = %q, want %q", state.ErrorMessage, DuplicateMessage)
	}
	if state.UnsubscribeURL != "" {
		t.Fatalf("UnsubscribeURL = %q, want empty after failure", state.UnsubscribeURL)
	}
}

func TestRetryAfterErrorAllowsResubmit(t *testing.T) {
	t.Parallel()

	client := &fakeSubscriptionClient{
		subscribeErr: &backend.RequestError{StatusCode: http.StatusBadGateway, Message: "upstream down"},
	}
	form := newTestForm(t, client)

	form.Submit(context.Background(), "reader@example.com")
	if got := form.State().Status; got != StatusError {
		t.Fatalf("Status = %q, want %q", got, StatusError)
	}

	form.RetryAfterError()
	if state := form.State(); state.Status != StatusIdle || state.ErrorMessage != "" {
		t.Fatalf("State after retry = %+v, want idle with no message", state)
	}

	client.mu.Lock()
	client.subscribeErr = nil
	client.subscribeResult = backend.Subscription{ID: 4, Email: "reader@example.com", IsActive: true}
	client.mu.Unlock()

	form.Submit(context.Background(), "reader@example.com")
	if got := form.State().Status; got != StatusSubscribed {
		t.Fatalf("Status = %q, want %q", got, StatusSubscribed)
	}
	if client.subscribeCalls != 2 {
		t.Fatalf("Subscribe calls = %d, want 2", client.subscribeCalls)
	}
}

func TestCloseDiscardsLateResponse(t *testing.T) {
	t.Parallel()

	client := &fakeSubscriptionClient{
		subscribeResult: backend.Subscription{ID: 12, Email: "reader@example.com", IsActive: true},
	}
	form := newTestForm(t, client)

	form.Close()
	form.Submit(context.Background(), "reader@example.com")

	if client.subscribeCalls != 0 {
		t.Fatalf("Subscribe calls = %d, want 0 after Close", client.subscribeCalls)
	}
	if got := form.State().Status; got != StatusIdle {
		t.Fatalf("Status = %q, want %q", got, StatusIdle)
	}
}
