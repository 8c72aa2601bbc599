package follow

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"fintalkweb/internal/backend"
)

func TestInitializeUsesServerValues(t *testing.T) {
	t.Parallel()

	client := &fakeClient{status: backend.RelationshipStatus{IsFollowing: true, FollowersCount: 41}}
	toggle := NewToggle(client, 7)
	toggle.Initialize(context.Background())

	state := toggle.State()
	if !state.IsFollowing {
		t.Fatalf("IsFollowing = false, want true")
	}
	if state.FollowersCount != 41 {
		t.Fatalf("FollowersCount = %d, want 41", state.FollowersCount)
	}
	if state.Loading {
		t.Fatalf("Loading = true after initialize")
	}
}

func TestInitializeFailureKeepsDefaultAndRetryClears(t *testing.T) {
	t.Parallel()

	client := &fakeClient{statusErr: errors.New("connection refused")}
	toggle := NewToggle(client, 7)
	toggle.Initialize(context.Background())

	state := toggle.State()
	if state.IsFollowing {
		t.Fatalf("IsFollowing = true after failed initialize, want default false")
	}
	if state.ErrorMessage != backend.GenericErrorMessage {
		t.Fatalf("ErrorMessage = %q, want generic fallback", state.ErrorMessage)
	}

	toggle.RetryAfterError()
	state = toggle.State()
	if state.ErrorMessage != "" {
		t.Fatalf("ErrorMessage = %q after retry, want cleared", state.ErrorMessage)
	}
	if statusCalls, _, _, _ := client.calls(); statusCalls != 1 {
		t.Fatalf("statusCalls = %d, want 1 (retry must not refetch)", statusCalls)
	}
}

func TestToggleFollowsAndNotifiesObserverOnce(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		followResp: backend.RelationshipStatus{IsFollowing: true, FollowersCount: 6},
	}
	toggle := NewToggle(client, 42)

	var changes []EdgeChange
	toggle.OnEdgeChanged(func(change EdgeChange) {
		changes = append(changes, change)
	})

	toggle.Toggle(context.Background())

	state := toggle.State()
	if !state.IsFollowing || state.FollowersCount != 6 {
		t.Fatalf("state = %+v, want following with 6 followers", state)
	}
	if len(changes) != 1 {
		t.Fatalf("observer fired %d times, want 1", len(changes))
	}
	change := changes[0]
	if change.Action != ActionFollowed {
		t.Fatalf("Action = %q, want %q", change.Action, ActionFollowed)
	}
	if change.SubjectUserID != 42 || !change.IsFollowing || change.FollowersCount != 6 {
		t.Fatalf("EdgeChange = %+v", change)
	}
}

func TestToggleUnfollowsWhenAlreadyFollowing(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		status:       backend.RelationshipStatus{IsFollowing: true, FollowersCount: 6},
		unfollowResp: backend.RelationshipStatus{IsFollowing: false, FollowersCount: 5},
	}
	toggle := NewToggle(client, 42)
	toggle.Initialize(context.Background())

	var gotAction Action
	toggle.OnEdgeChanged(func(change EdgeChange) { gotAction = change.Action })

	toggle.Toggle(context.Background())

	_, followCalls, unfollowCalls, _ := client.calls()
	if followCalls != 0 || unfollowCalls != 1 {
		t.Fatalf("followCalls = %d, unfollowCalls = %d, want 0 and 1", followCalls, unfollowCalls)
	}
	if gotAction != ActionUnfollowed {
		t.Fatalf("Action = %q, want %q", gotAction, ActionUnfollowed)
	}
	if state := toggle.State(); state.IsFollowing || state.FollowersCount != 5 {
		t.Fatalf("state = %+v, want not following with 5 followers", state)
	}
}

func TestToggleWhileLoadingIssuesNoRequest(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		followResp: backend.RelationshipStatus{IsFollowing: true, FollowersCount: 1},
		gate:       make(chan struct{}),
		started:    make(chan struct{}, 1),
	}
	toggle := NewToggle(client, 42)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		toggle.Toggle(context.Background())
	}()
	<-client.started

	// Second press lands while the first request is still in flight.
	toggle.Toggle(context.Background())

	close(client.gate)
	wg.Wait()

	_, followCalls, unfollowCalls, _ := client.calls()
	if followCalls+unfollowCalls != 1 {
		t.Fatalf("outbound requests = %d, want 1", followCalls+unfollowCalls)
	}
}

func TestFailedToggleLeavesEdgeUnchanged(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		status:      backend.RelationshipStatus{IsFollowing: true, FollowersCount: 5},
		unfollowErr: &backend.RequestError{StatusCode: http.StatusServiceUnavailable, Message: "try again later"},
	}
	toggle := NewToggle(client, 42)
	toggle.Initialize(context.Background())

	fired := false
	toggle.OnEdgeChanged(func(EdgeChange) { fired = true })

	toggle.Toggle(context.Background())

	state := toggle.State()
	if !state.IsFollowing || state.FollowersCount != 5 {
		t.Fatalf("state = %+v, want pre-call values preserved", state)
	}
	if state.ErrorMessage != "try again later" {
		t.Fatalf("ErrorMessage = %q, want server message", state.ErrorMessage)
	}
	if state.Loading {
		t.Fatalf("Loading = true after failure, want cleared")
	}
	if fired {
		t.Fatalf("observer fired on failure")
	}
}

func TestCloseDiscardsLateResponse(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		followResp: backend.RelationshipStatus{IsFollowing: true, FollowersCount: 99},
		gate:       make(chan struct{}),
		started:    make(chan struct{}, 1),
	}
	toggle := NewToggle(client, 42)

	fired := false
	toggle.OnEdgeChanged(func(EdgeChange) { fired = true })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		toggle.Toggle(context.Background())
	}()
	<-client.started

	toggle.Close()
	close(client.gate)
	wg.Wait()

	state := toggle.State()
	if state.IsFollowing || state.FollowersCount != 0 || state.ErrorMessage != "" {
		t.Fatalf("state mutated after close: %+v", state)
	}
	if fired {
		t.Fatalf("observer fired after close")
	}
}

func TestFollowerCountLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		count int
		want  string
	}{
		{0, ""},
		{1, "1 follower"},
		{6, "6 followers"},
	}
	for _, tc := range cases {
		if got := FollowerCountLabel(tc.count); got != tc.want {
			t.Fatalf("FollowerCountLabel(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}
