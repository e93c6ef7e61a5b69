package controllers

import (
	"context"
	"net/http"

	"github.com/lenddesk/lenddesk-backend/api/responses"
	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive answers as soon as the process is serving requests.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady answers only when the record store is reachable.
func HealthReady(store Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "record store unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
