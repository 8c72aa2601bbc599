package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckStatusSendsViewerToken(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"is_following": true, "followers_count": 6}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client()).ForViewer("token-123")
	status, err := client.CheckStatus(context.Background(), 42)
	if err != nil {
		t.Fatalf("CheckStatus() error = %v", err)
	}
	if gotPath != "/relationships/status/42" {
		t.Fatalf("path = %q, want %q", gotPath, "/relationships/status/42")
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer token-123")
	}
	if gotRequestID == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if !status.IsFollowing || status.FollowersCount != 6 {
		t.Fatalf("status = %+v, want following with 6 followers", status)
	}
}

func TestFollowUsesPost(t *testing.T) {
	t.Parallel()

	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{"is_following": true, "followers_count": 1}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	if _, err := client.Follow(context.Background(), 7); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q, want %q", gotMethod, http.MethodPost)
	}
}

func TestListFollowersPagination(t *testing.T) {
	t.Parallel()

	var gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{
			"results": [
				{"id": 1, "username": "ada", "full_name": "Ada L", "is_following": true},
				{"id": 2, "username": "grace", "full_name": "Grace H", "is_following": false}
			],
			"count": 12,
			"next": "https://api.fintalk.test/relationships/followers/9?page=3"
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	page, err := client.ListFollowers(context.Background(), 9, 2)
	if err != nil {
		t.Fatalf("ListFollowers() error = %v", err)
	}
	if gotPage != "2" {
		t.Fatalf("page query = %q, want %q", gotPage, "2")
	}
	if len(page.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(page.Items))
	}
	if page.Items[0].Username != "ada" || page.Items[1].Username != "grace" {
		t.Fatalf("items out of order: %+v", page.Items)
	}
	if page.TotalCount != 12 {
		t.Fatalf("TotalCount = %d, want 12", page.TotalCount)
	}
	if !page.HasMore {
		t.Fatalf("HasMore = false, want true")
	}
}

func TestListFollowingLastPageHasNoMore(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [], "count": 0, "next": null}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	page, err := client.ListFollowing(context.Background(), 9, 1)
	if err != nil {
		t.Fatalf("ListFollowing() error = %v", err)
	}
	if page.HasMore {
		t.Fatalf("HasMore = true, want false")
	}
	if page.Items == nil {
		t.Fatalf("Items = nil, want empty slice")
	}
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "you cannot follow yourself"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	_, err := client.Follow(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error type = %T, want *RequestError", err)
	}
	if reqErr.StatusCode != http.StatusForbidden {
		t.Fatalf("StatusCode = %d, want %d", reqErr.StatusCode, http.StatusForbidden)
	}
	if got := UserMessage(err); got != "you cannot follow yourself" {
		t.Fatalf("UserMessage() = %q, want server message", got)
	}
}

func TestErrorWithoutBodyFallsBack(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	_, err := client.CheckStatus(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := UserMessage(err); got != GenericErrorMessage {
		t.Fatalf("UserMessage() = %q, want generic fallback", got)
	}
}

func TestNotFoundUnwraps(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such user"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	_, err := client.GetProfile(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(err, ErrNotFound) = false, err = %v", err)
	}
}

func TestConflictUnwraps(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "already subscribed"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	_, err := client.Subscribe(context.Background(), "a@b.test")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("errors.Is(err, ErrConflict) = false, err = %v", err)
	}
}

func TestSearchUsersQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"results": [], "count": 0, "next": null}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	if _, err := client.SearchUsers(context.Background(), 3, "  ada "); err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if gotQuery != "page=3&search=ada" {
		t.Fatalf("query = %q, want %q", gotQuery, "page=3&search=ada")
	}
}
