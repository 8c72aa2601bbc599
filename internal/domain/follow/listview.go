package follow

import (
	"context"
	"sync"

	"fintalkweb/internal/backend"
)

// ListMode selects which side of the follow edge a list view walks.
type ListMode string

const (
	ModeFollowers ListMode = "followers"
	ModeFollowing ListMode = "following"
)

// ListView is the paginated view-model behind a followers or following list.
// Rows accumulate append-only in server order until the subject changes; a
// failed page keeps everything already loaded so retry re-requests the same
// next page.
type ListView struct {
	client RelationshipClient
	mode   ListMode

	mu         sync.Mutex
	subjectID  int64
	items      []backend.UserSummary
	page       int
	hasMore    bool
	totalCount int
	loaded     bool
	loading    bool
	errMsg     string
	closed     bool
}

// ListState is a render-ready snapshot. Loaded distinguishes the valid empty
// result from the error state.
type ListState struct {
	SubjectUserID int64                 `json:"subject_user_id"`
	Mode          ListMode              `json:"mode"`
	Items         []backend.UserSummary `json:"items"`
	Page          int                   `json:"page"`
	HasMore       bool                  `json:"has_more"`
	TotalCount    int                   `json:"total_count"`
	Loaded        bool                  `json:"loaded"`
	Loading       bool                  `json:"loading"`
	ErrorMessage  string                `json:"error,omitempty"`
}

func NewListView(client RelationshipClient, mode ListMode) *ListView {
	return &ListView{client: client, mode: mode}
}

// Initialize resets all state for a new subject and fetches the first page.
func (v *ListView) Initialize(ctx context.Context, subjectID int64) {
	v.mu.Lock()
	if v.loading || v.closed {
		v.mu.Unlock()
		return
	}
	v.subjectID = subjectID
	v.items = nil
	v.page = 0
	v.hasMore = false
	v.totalCount = 0
	v.loaded = false
	v.errMsg = ""
	v.loading = true
	v.mu.Unlock()

	result, err := v.fetch(ctx, subjectID, 1)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.loading = false
	if err != nil {
		v.errMsg = backend.UserMessage(err)
		return
	}
	v.items = result.Items
	v.page = 1
	v.hasMore = result.HasMore
	v.totalCount = result.TotalCount
	v.loaded = true
}

// LoadMore appends the next page. No-op while loading or when the server
// reported no further pages. A partial failure preserves loaded rows and the
// cursor, so the next attempt re-requests the same page.
func (v *ListView) LoadMore(ctx context.Context) {
	v.mu.Lock()
	if v.loading || v.closed || !v.hasMore {
		v.mu.Unlock()
		return
	}
	subjectID := v.subjectID
	nextPage := v.page + 1
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	result, err := v.fetch(ctx, subjectID, nextPage)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.loading = false
	if err != nil {
		v.errMsg = backend.UserMessage(err)
		return
	}
	v.items = append(v.items, result.Items...)
	v.page = nextPage
	v.hasMore = result.HasMore
	v.totalCount = result.TotalCount
}

// ApplyEdgeUpdate patches the follow flag of the matching row in place,
// leaving its position and every other row untouched. Unknown users no-op.
func (v *ListView) ApplyEdgeUpdate(userID int64, isFollowing bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	for i := range v.items {
		if v.items[i].UserID == userID {
			v.items[i].IsFollowing = isFollowing
			return
		}
	}
}

// Close tears the view down; late page responses are discarded.
func (v *ListView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *ListView) State() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := make([]backend.UserSummary, len(v.items))
	copy(items, v.items)
	return ListState{
		SubjectUserID: v.subjectID,
		Mode:          v.mode,
		Items:         items,
		Page:          v.page,
		HasMore:       v.hasMore,
		TotalCount:    v.totalCount,
		Loaded:        v.loaded,
		Loading:       v.loading,
		ErrorMessage:  v.errMsg,
	}
}

func (v *ListView) fetch(ctx context.Context, subjectID int64, page int) (backend.ConnectionPage, error) {
	if v.mode == ModeFollowing {
		return v.client.ListFollowing(ctx, subjectID, page)
	}
	return v.client.ListFollowers(ctx, subjectID, page)
}
