package main

import (
	"net/http"
	"strconv"

	"fintalkweb/internal/domain/follow"
)

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (app *application) listFollowersHandler(w http.ResponseWriter, r *http.Request) {
	app.renderConnections(w, r, follow.ModeFollowers)
}

func (app *application) listFollowingHandler(w http.ResponseWriter, r *http.Request) {
	app.renderConnections(w, r, follow.ModeFollowing)
}

// renderConnections accumulates pages 1..page so the response carries every
// row the client would have after scrolling that far.
func (app *application) renderConnections(w http.ResponseWriter, r *http.Request, mode follow.ListMode) {
	subjectID, err := app.subjectID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	page := pageParam(r)

	view := follow.NewListView(app.viewerAPI(r), mode)
	view.Initialize(r.Context(), subjectID)

	state := view.State()
	if !state.Loaded {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}

	for state.Page < page && state.HasMore {
		view.LoadMore(r.Context())
		next := view.State()
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
