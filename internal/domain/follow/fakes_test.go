package follow

import (
	"context"
	"sync"

	"fintalkweb/internal/backend"
)

// fakeClient implements RelationshipClient for tests with scripted responses,
// call counting, and an optional gate for simulating slow requests.
type fakeClient struct {
	mu sync.Mutex

	status    backend.RelationshipStatus
	statusErr error

	followResp backend.RelationshipStatus
	followErr  error

	unfollowResp backend.RelationshipStatus
	unfollowErr  error

	followerPages  map[int]backend.ConnectionPage
	followingPages map[int]backend.ConnectionPage
	listErr        error

	statusCalls   int
	followCalls   int
	unfollowCalls int
	listCalls     int

	// When set, every call signals started (if non-nil) and then blocks until
	// gate is closed.
	gate    chan struct{}
	started chan struct{}
}

var _ RelationshipClient = (*fakeClient)(nil)

func (f *fakeClient) wait() {
	f.mu.Lock()
	gate, started := f.gate, f.started
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
}

func (f *fakeClient) CheckStatus(context.Context, int64) (backend.RelationshipStatus, error) {
	f.mu.Lock()
	f.statusCalls++
	f.mu.Unlock()
	f.wait()
	if f.statusErr != nil {
		return backend.RelationshipStatus{}, f.statusErr
	}
	return f.status, nil
}

func (f *fakeClient) Follow(context.Context, int64) (backend.RelationshipStatus, error) {
	f.mu.Lock()
	f.followCalls++
	f.mu.Unlock()
	f.wait()
	if f.followErr != nil {
		return backend.RelationshipStatus{}, f.followErr
	}
	return f.followResp, nil
}

func (f *fakeClient) Unfollow(context.Context, int64) (backend.RelationshipStatus, error) {
	f.mu.Lock()
	f.unfollowCalls++
	f.mu.Unlock()
	f.wait()
	if f.unfollowErr != nil {
		return backend.RelationshipStatus{}, f.unfollowErr
	}
	return f.unfollowResp, nil
}

func (f *fakeClient) ListFollowers(_ context.Context, _ int64, page int) (backend.ConnectionPage, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	f.wait()
	if f.listErr != nil {
		return backend.ConnectionPage{}, f.listErr
	}
	return f.followerPages[page], nil
}

func (f *fakeClient) ListFollowing(_ context.Context, _ int64, page int) (backend.ConnectionPage, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	f.wait()
	if f.listErr != nil {
		return backend.ConnectionPage{}, f.listErr
	}
	return f.followingPages[page], nil
}

func (f *fakeClient) calls() (status, follow, unfollow, list int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls, f.followCalls, f.unfollowCalls, f.listCalls
}

func summaries(ids ...int64) []backend.UserSummary {
	out := make([]backend.UserSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, backend.UserSummary{UserID: id})
	}
	return out
}
