package directory

import (
	"context"
	"strings"
	"sync"

	"fintalkweb/internal/backend"
)

// DirectoryClient is the slice of the backend API the user directory needs.
type DirectoryClient interface {
	SearchUsers(ctx context.Context, page int, query string) (backend.ConnectionPage, error)
}

// Browser is the paginated view-model behind the user directory. Rows
// accumulate append-only in server order; changing the search query resets the
// accumulation, and a failed page keeps everything already loaded so retry
// re-requests the same next page.
type Browser struct {
	client DirectoryClient

	mu         sync.Mutex
	query      string
	items      []backend.UserSummary
	page       int
	hasMore    bool
	totalCount int
	loaded     bool
	loading    bool
	errMsg     string
	closed     bool
}

// BrowserState is a render-ready snapshot. Loaded distinguishes an empty
// result set from the error state.
type BrowserState struct {
	Query        string                `json:"query"`
	Items        []backend.UserSummary `json:"items"`
	Page         int                   `json:"page"`
	HasMore      bool                  `json:"has_more"`
	TotalCount   int                   `json:"total_count"`
	Loaded       bool                  `json:"loaded"`
	Loading      bool                  `json:"loading"`
	ErrorMessage string                `json:"error,omitempty"`
}

func NewBrowser(client DirectoryClient) *Browser {
	return &Browser{client: client}
}

// Search resets all state for the given query and fetches the first page.
// An empty query browses the full directory.
func (b *Browser) Search(ctx context.Context, query string) {
	b.mu.Lock()
	if b.loading || b.closed {
		b.mu.Unlock()
		return
	}
	query = strings.TrimSpace(query)
	b.query = query
	b.items = nil
	b.page = 0
	b.hasMore = false
	b.totalCount = 0
	b.loaded = false
	b.errMsg = ""
	b.loading = true
	b.mu.Unlock()

	result, err := b.client.SearchUsers(ctx, 1, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.loading = false
	if err != nil {
		b.errMsg = backend.UserMessage(err)
		return
	}
	b.items = result.Items
	b.page = 1
	b.hasMore = result.HasMore
	b.totalCount = result.TotalCount
	b.loaded = true
}

// LoadMore appends the next page for the current query. No-op while loading or
// when the server reported no further pages. A partial failure preserves
// loaded rows and the cursor.
func (b *Browser) LoadMore(ctx context.Context) {
	b.mu.Lock()
	if b.loading || b.closed || !b.hasMore {
		b.mu.Unlock()
		return
	}
	query := b.query
	nextPage := b.page + 1
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()

	result, err := b.client.SearchUsers(ctx, nextPage, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.loading = false
	if err != nil {
		b.errMsg = backend.UserMessage(err)
		return
	}
	b.items = append(b.items, result.Items...)
	b.page = nextPage
	b.hasMore = result.HasMore
	b.totalCount = result.TotalCount
}

// ApplyEdgeUpdate patches the follow flag of the matching row in place so a
// follow toggle elsewhere on the page is reflected here. Unknown users no-op.
func (b *Browser) ApplyEdgeUpdate(userID int64, isFollowing bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for i := range b.items {
		if b.items[i].UserID == userID {
			b.items[i].IsFollowing = isFollowing
			return
		}
	}
}

// Close tears the browser down; late page responses are discarded.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *Browser) State() BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]backend.UserSummary, len(b.items))
	copy(items, b.items)
	return BrowserState{
		Query:        b.query,
		Items:        items,
		Page:         b.page,
		HasMore:      b.hasMore,
		TotalCount:   b.totalCount,
		Loaded:       b.loaded,
		Loading:      b.loading,
		ErrorMessage: b.errMsg,
	}
}
