package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintalkweb/internal/backend"
	"fintalkweb/internal/domain/subscription"
)

type subscribePayload struct {
	Email string `json:"email" validate:"required,email"`
}

// unsubscribeBase is where minted unsubscribe links point back to.
func (app *application) unsubscribeBase() string {
	return app.config.externalURL + "/v1/subscriptions/unsubscribe"
}

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var payload subscribePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form := subscription.NewForm(app.api, app.unsubTokens, app.unsubscribeBase())
	form.Submit(r.Context(), payload.Email)

	state := form.State()
	switch {
	case state.Status == subscription.StatusSubscribed:
		if err := app.jsonResponse(w, http.StatusCreated, state); err != nil {
			app.internalServerError(w, r, err)
		}
	case state.ErrorMessage == subscription.DuplicateMessage:
		app.conflictResponse(w, r, state.ErrorMessage)
	case state.ErrorMessage == subscription.InvalidEmailMessage:
		app.badRequestResponse(w, r, fmt.Errorf("%s", state.ErrorMessage))
	default:
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
	}
}

func (app *application) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	subscriptionID, err := app.unsubTokens.Decode(token)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid unsubscribe link"))
		return
	}

	if err := app.api.Unsubscribe(r.Context(), subscriptionID); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.upstreamErrorResponse(w, r, backend.UserMessage(err))
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "You have been unsubscribed."}); err != nil {
		app.internalServerError(w, r, err)
	}
}
