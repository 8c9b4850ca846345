package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/formcraft/formcraft-backend/api/middleware"
	"github.com/formcraft/formcraft-backend/api/responses"
	"github.com/formcraft/formcraft-backend/api/validators"
	"github.com/formcraft/formcraft-backend/internal/submissions"
	"github.com/formcraft/formcraft-backend/pkg/config"
	"github.com/formcraft/formcraft-backend/pkg/enums"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/logger"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

type createSubmissionRequest struct {
	FieldValues    types.StringMap `json:"field_values" validate:"required"`
	ShippingMethod string          `json:"shipping_method" validate:"required,oneof=pickup delivery"`
}

// SubmissionCreate freezes the session cart into an order.
func SubmissionCreate(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req createSubmissionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		method, err := enums.ParseShippingMethod(req.ShippingMethod)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method"))
			return
		}

		sub, err := svc.Create(ctx, submissions.CreateInput{
			SessionID:      middleware.SessionID(ctx),
			FieldValues:    req.FieldValues,
			ShippingMethod: method,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sub)
	}
}

func submissionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "submissionId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid submission id")
	}
	return id, nil
}

// SubmissionList returns submissions newest first, optionally filtered
// by ?status=.
func SubmissionList(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var filter submissions.ListFilter
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParsePaymentStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filter.Status = &status
		}

		subs, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"submissions": subs})
	}
}

// SubmissionGet returns one submission.
func SubmissionGet(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := submissionID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sub, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sub)
	}
}

// SubmissionSlipUpload attaches a payment slip image to the order.
func SubmissionSlipUpload(svc submissions.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := submissionID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(cfg.Media.MaxUploadBytes); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("slip")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "slip file is required"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !allowedUploadType(cfg.Media.AllowedTypes, contentType) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unsupported slip content type"))
			return
		}

		sub, err := svc.AttachSlip(ctx, id, contentType, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sub)
	}
}

func allowedUploadType(allowed []string, contentType string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}

type paymentStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending confirmed rejected"`
	Note   *string `json:"note"`
}

// SubmissionPaymentPatch records a payment review decision.
func SubmissionPaymentPatch(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := submissionID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req paymentStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParsePaymentStatus(req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
			return
		}

		sub, err := svc.UpdatePaymentStatus(ctx, id, status, req.Note)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sub)
	}
}
