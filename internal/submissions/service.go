package submissions

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/formcraft/formcraft-backend/internal/cart"
	"github.com/formcraft/formcraft-backend/internal/form"
	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/enums"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/logger"
	"github.com/formcraft/formcraft-backend/pkg/metrics"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// SlipUploader stores a payment slip and returns its public URL.
type SlipUploader interface {
	Upload(ctx context.Context, objectName string, contentType string, body io.Reader) (string, error)
}

// CreateInput is the checkout payload. Items come from the session cart,
// never from the request body.
type CreateInput struct {
	SessionID      string
	FieldValues    types.StringMap
	ShippingMethod enums.ShippingMethod
}

// Service exposes the submission lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	List(ctx context.Context, filter ListFilter) ([]models.Submission, error)
	AttachSlip(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (*models.Submission, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus, note *string) (*models.Submission, error)
}

type service struct {
	repo  Repository
	cart  cart.Service
	form  form.Service
	slips SlipUploader
	logg  *logger.Logger
	nowFn func() time.Time
}

// NewService wires the submissions service. slips may be nil when slip
// uploads are disabled.
func NewService(repo Repository, cartSvc cart.Service, formSvc form.Service, slips SlipUploader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if formSvc == nil {
		return nil, fmt.Errorf("form service is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:  repo,
		cart:  cartSvc,
		form:  formSvc,
		slips: slips,
		logg:  logg,
		nowFn: time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Submission, error) {
	if input.SessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if !input.ShippingMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping method")
	}

	cfg, err := s.form.GetForm(ctx)
	if err != nil {
		return nil, err
	}

	if fieldErrs := form.ValidateAnswers(cfg.Sections, input.FieldValues, input.ShippingMethod); len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form answers rejected").
			WithDetails(map[string]any{"fields": fieldErrs})
	}

	view, err := s.cart.GetCart(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	// Totals are recomputed here; client-sent amounts are never trusted.
	subtotal := cart.Subtotal(view.Lines)
	shippingCost := decimal.Zero
	if input.ShippingMethod == enums.ShippingMethodDelivery && cfg.ShippingEnabled {
		shippingCost = cfg.ShippingCost
	}

	sub := &models.Submission{
		SubmittedAt:    s.nowFn(),
		FieldValues:    input.FieldValues,
		Items:          view.Lines,
		ShippingMethod: input.ShippingMethod,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		Total:          subtotal.Add(shippingCost),
		PaymentStatus:  enums.PaymentStatusPending,
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating submission")
	}

	if err := s.cart.Clear(ctx, input.SessionID); err != nil {
		// The order exists; a stale cart is recoverable.
		s.logg.Warn(ctx, "clearing cart after submission failed", err)
	}

	metrics.SubmissionsCreated.Inc()
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"submission_id": created.ID.String(),
		"total":         created.Total.String(),
	}), "submission created")

	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finding submission")
	}
	return sub, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Submission, error) {
	subs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing submissions")
	}
	return subs, nil
}

func (s *service) AttachSlip(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (*models.Submission, error) {
	if s.slips == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "slip uploads are not configured")
	}

	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("slips/%s-%d", sub.ID, s.nowFn().Unix())
	url, err := s.slips.Upload(ctx, objectName, contentType, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading payment slip")
	}

	sub.PaymentSlipURL = &url
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving slip url")
	}

	s.logg.Info(s.logg.WithField(ctx, "submission_id", sub.ID.String()), "payment slip attached")
	return sub, nil
}

// allowedTransition gates payment review moves. Decisions can be undone
// by resetting to pending, but never flipped directly.
func allowedTransition(from, to enums.PaymentStatus) bool {
	switch from {
	case enums.PaymentStatusPending:
		return to == enums.PaymentStatusConfirmed || to == enums.PaymentStatusRejected
	case enums.PaymentStatusConfirmed, enums.PaymentStatusRejected:
		return to == enums.PaymentStatusPending
	}
	return false
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus, note *string) (*models.Submission, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !allowedTransition(sub.PaymentStatus, status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment status transition disallowed").
			WithDetails(map[string]any{
				"from": sub.PaymentStatus.String(),
				"to":   status.String(),
			})
	}

	sub.PaymentStatus = status
	sub.PaymentNote = note
	switch status {
	case enums.PaymentStatusConfirmed:
		now := s.nowFn()
		sub.PaymentConfirmedAt = &now
	default:
		sub.PaymentConfirmedAt = nil
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving payment status")
	}

	metrics.PaymentDecisions.WithLabelValues(status.String()).Inc()
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"submission_id": sub.ID.String(),
		"status":        status.String(),
	}), "payment status updated")

	return sub, nil
}
