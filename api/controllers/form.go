package controllers

import (
	"net/http"

	"github.com/formcraft/formcraft-backend/api/responses"
	"github.com/formcraft/formcraft-backend/api/validators"
	"github.com/formcraft/formcraft-backend/internal/form"
	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// FormGet returns the storefront's form configuration.
func FormGet(svc form.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cfg, err := svc.GetForm(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cfg)
	}
}

// FormPut replaces the form configuration.
func FormPut(svc form.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var cfg models.FormConfig
		if err := validators.DecodeJSONBody(r, &cfg); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		saved, err := svc.PutForm(ctx, &cfg)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}
