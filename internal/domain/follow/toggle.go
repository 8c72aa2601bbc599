package follow

import (
	"context"
	"sync"

	"fintalkweb/internal/backend"
)

// Toggle is the view-model behind a single follow/unfollow button. It owns the
// relationship edge between the viewer and one subject; counts always come
// from the server, never from local arithmetic, so concurrent follows by other
// viewers cannot drift the display.
//
// Requests are never retried or resubmitted automatically. A failure becomes
// visible error state paired with a manual retry affordance.
type Toggle struct {
	client    RelationshipClient
	subjectID int64

	mu             sync.Mutex
	isFollowing    bool
	followersCount int
	loading        bool
	errMsg         string
	closed         bool
	onEdgeChanged  func(EdgeChange)
}

// ToggleState is a render-ready snapshot.
type ToggleState struct {
	SubjectUserID  int64  `json:"subject_user_id"`
	IsFollowing    bool   `json:"is_following"`
	FollowersCount int    `json:"followers_count"`
	FollowersLabel string `json:"followers_label,omitempty"`
	Loading        bool   `json:"loading"`
	ErrorMessage   string `json:"error,omitempty"`
}

func NewToggle(client RelationshipClient, subjectID int64) *Toggle {
	return &Toggle{client: client, subjectID: subjectID}
}

// OnEdgeChanged registers the single observer notified after each successful
// toggle. The handler runs synchronously after the state commit, outside the
// toggle's lock, so it may patch sibling views.
func (t *Toggle) OnEdgeChanged(handler func(EdgeChange)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEdgeChanged = handler
}

// Initialize fetches the current relationship status. On failure the edge
// stays at its default (not following) and the error becomes visible state.
func (t *Toggle) Initialize(ctx context.Context) {
	t.mu.Lock()
	if t.loading || t.closed {
		t.mu.Unlock()
		return
	}
	t.loading = true
	t.errMsg = ""
	t.mu.Unlock()

	status, err := t.client.CheckStatus(ctx, t.subjectID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.loading = false
	if err != nil {
		t.errMsg = backend.UserMessage(err)
		return
	}
	t.isFollowing = status.IsFollowing
	t.followersCount = status.FollowersCount
}

// Toggle follows or unfollows depending on the current edge. Re-entrant calls
// while a request is in flight are rejected silently; a failed request leaves
// the edge exactly as it was.
func (t *Toggle) Toggle(ctx context.Context) {
	t.mu.Lock()
	if t.loading || t.closed {
		t.mu.Unlock()
		return
	}
	wasFollowing := t.isFollowing
	t.loading = true
	t.errMsg = ""
	t.mu.Unlock()

	var status backend.RelationshipStatus
	var err error
	if wasFollowing {
		status, err = t.client.Unfollow(ctx, t.subjectID)
	} else {
		status, err = t.client.Follow(ctx, t.subjectID)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.loading = false
	if err != nil {
		t.errMsg = backend.UserMessage(err)
		t.mu.Unlock()
		return
	}

	t.isFollowing = status.IsFollowing
	t.followersCount = status.FollowersCount
	action := ActionFollowed
	if wasFollowing {
		action = ActionUnfollowed
	}
	change := EdgeChange{
		SubjectUserID:  t.subjectID,
		IsFollowing:    t.isFollowing,
		FollowersCount: t.followersCount,
		Action:         action,
	}
	handler := t.onEdgeChanged
	t.mu.Unlock()

	if handler != nil {
		handler(change)
	}
}

// RetryAfterError clears the error so the control can be pressed again. It
// never resubmits on its own.
func (t *Toggle) RetryAfterError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.errMsg = ""
}

// Close tears the component down. Responses that resolve afterwards are
// discarded without touching state or firing observers.
func (t *Toggle) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.onEdgeChanged = nil
}

func (t *Toggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ToggleState{
		SubjectUserID:  t.subjectID,
		IsFollowing:    t.isFollowing,
		FollowersCount: t.followersCount,
		FollowersLabel: FollowerCountLabel(t.followersCount),
		Loading:        t.loading,
		ErrorMessage:   t.errMsg,
	}
}
