package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fintalkweb/internal/domain/follow"
)

func (app *application) subjectID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user ID %q", idStr)
	}
	return id, nil
}

// followStatusHandler renders the follow button state for the subject user.
func (app *application) followStatusHandler(w http.ResponseWriter, r *http.Request) {
	subjectID, err := app.subjectID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	toggle := follow.NewToggle(app.viewerAPI(r), subjectID)
	toggle.Initialize(r.Context())

	state := toggle.State()
	if state.ErrorMessage != "" {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) followUserHandler(w http.ResponseWriter, r *http.Request) {
	app.driveToggle(w, r, true)
}

func (app *application) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	app.driveToggle(w, r, false)
}

// driveToggle flips the follow edge toward the desired direction. Requests
// that match the current state are idempotent and return it unchanged.
func (app *application) driveToggle(w http.ResponseWriter, r *http.Request, wantFollowing bool) {
	subjectID, err := app.subjectID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	toggle := follow.NewToggle(app.viewerAPI(r), subjectID)
	toggle.Initialize(r.Context())

	state := toggle.State()
	if state.ErrorMessage != "" {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}

	if state.IsFollowing != wantFollowing {
		toggle.Toggle(r.Context())
		state = toggle.State()
		if state.ErrorMessage != "" {
			app.upstreamErrorResponse(w, r, state.ErrorMessage)
			return
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}
