package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lenddesk/lenddesk-backend/api/responses"
	"github.com/lenddesk/lenddesk-backend/api/validators"
	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

type itemCreatePayload struct {
	Name            string `json:"name" validate:"required,max=200"`
	InventoryNumber string `json:"inventory_number" validate:"required,max=64"`
}

// ItemCreate registers a new loanable item.
func ItemCreate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload itemCreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), payload.Name, payload.InventoryNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ItemList returns every registered item in insertion order.
func ItemList(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ItemLoans returns the loan history of one item in insertion order.
func ItemLoans(svc loans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "item id must be a valid uuid"))
			return
		}

		history, err := svc.LoansForItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
