package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lenddesk/lenddesk-backend/api/responses"
	"github.com/lenddesk/lenddesk-backend/api/validators"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

type loanProposePayload struct {
	Variant   string `json:"loan_type" validate:"required"`
	ItemID    string `json:"item_id" validate:"required,uuid"`
	UserID    string `json:"user_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Note      string `json:"note" validate:"max=500"`
}

// LoanPropose submits a candidate loan to the workflow engine. The
// response is 201 with the recorded loan, or the engine's rejection.
func LoanPropose(svc loans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loanProposePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "item_id must be a valid uuid"))
			return
		}
		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "user_id must be a valid uuid"))
			return
		}

		loan, err := svc.ProposeLoan(r.Context(), loans.Proposal{
			Variant: payload.Variant,
			ItemID:  itemID,
			UserID:  userID,
			Start:   payload.StartTime,
			End:     payload.EndTime,
			Extras:  loans.Extras{Note: payload.Note},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, loan)
	}
}
