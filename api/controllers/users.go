package controllers

import (
	"net/http"

	"github.com/lenddesk/lenddesk-backend/api/responses"
	"github.com/lenddesk/lenddesk-backend/api/validators"
	"github.com/lenddesk/lenddesk-backend/internal/users"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

type userCreatePayload struct {
	Name string `json:"name" validate:"required,max=200"`
}

// UserCreate registers a new borrower.
func UserCreate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload userCreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Create(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// UserList returns every registered borrower in insertion order.
func UserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
