package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fintalkweb/internal/domain/roles"
)

type assignRolePayload struct {
	RoleID int64 `json:"role_id" validate:"required,min=1"`
}

func (app *application) listRolesHandler(w http.ResponseWriter, r *http.Request) {
	manager := roles.NewManager(app.viewerAPI(r))
	manager.LoadCatalog(r.Context())

	state := manager.State()
	if state.ErrorMessage != "" {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listUserRolesHandler(w http.ResponseWriter, r *http.Request) {
	subjectID, err := app.subjectID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	manager := roles.NewManager(app.viewerAPI(r))
	manager.LoadUserRoles(r.Context(), subjectID)

	app.renderRoles(w, r, manager)
}

func (app *application) assignRoleHandler(w http.ResponseWriter, r *http.Request) {
	subjectID, err := app.subjectID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload assignRolePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	manager := roles.NewManager(app.viewerAPI(r))
	manager.LoadUserRoles(r.Context(), subjectID)
	if state := manager.State(); state.NotFound || state.ErrorMessage != "" {
		app.renderRoles(w, r, manager)
		return
	}

	manager.LoadCatalog(r.Context())
	manager.Assign(r.Context(), payload.RoleID)

	app.renderRoles(w, r, manager)
}

func (app *application) revokeRoleHandler(w http.ResponseWriter, r *http.Request) {
	subjectID, err := app.subjectID(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	roleID, err := strconv.ParseInt(chi.URLParam(r, "roleID"), 10, 64)
	if err != nil || roleID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid role ID"))
		return
	}

	manager := roles.NewManager(app.viewerAPI(r))
	manager.LoadUserRoles(r.Context(), subjectID)
	if state := manager.State(); state.NotFound || state.ErrorMessage != "" {
		app.renderRoles(w, r, manager)
		return
	}

	manager.Revoke(r.Context(), roleID)

	app.renderRoles(w, r, manager)
}

func (app *application) renderRoles(w http.ResponseWriter, r *http.Request, manager *roles.Manager) {
	state := manager.State()
	if state.NotFound {
		app.notFoundResponse(w, r, fmt.Errorf("user or role not found"))
		return
	}
	if state.ErrorMessage != "" {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}
