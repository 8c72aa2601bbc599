package main

import (
	"fmt"
	"net/http"
	"strings"

	"fintalkweb/internal/domain/directory"
)

// searchUsersHandler renders the user directory, optionally filtered by a
// search term. Terms starting with "@" are treated as username lookups and
// must be well-formed handles.
func (app *application) searchUsersHandler(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	if handle, ok := strings.CutPrefix(search, "@"); ok {
		if err := Validate.Var(handle, "username"); err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid username %q", handle))
			return
		}
		search = handle
	}

	browser := directory.NewBrowser(app.api)
	browser.Search(r.Context(), search)

	state := browser.State()
	if !state.Loaded {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}

	for state.Page < page && state.HasMore {
		browser.LoadMore(r.Context())
		next := browser.State()
		if next.ErrorMessage != "" {
			app.upstreamErrorResponse(w, r, next.ErrorMessage)
			return
		}
		state = next
	}

	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}
