package export

import (
	"context"
	"fmt"
	"time"

	"github.com/formcraft/formcraft-backend/internal/catalog"
	"github.com/formcraft/formcraft-backend/internal/form"
	"github.com/formcraft/formcraft-backend/internal/submissions"
	"github.com/formcraft/formcraft-backend/pkg/logger"
	"github.com/formcraft/formcraft-backend/pkg/metrics"
)

// Service renders order exports.
type Service interface {
	OrdersCSV(ctx context.Context, onlyConfirmed bool) (*File, error)
}

type service struct {
	submissions submissions.Service
	catalog     catalog.Service
	form        form.Service
	logg        *logger.Logger
	nowFn       func() time.Time
}

// NewService wires the export service.
func NewService(subSvc submissions.Service, catalogSvc catalog.Service, formSvc form.Service, logg *logger.Logger) (Service, error) {
	if subSvc == nil {
		return nil, fmt.Errorf("submissions service is required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if formSvc == nil {
		return nil, fmt.Errorf("form service is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		submissions: subSvc,
		catalog:     catalogSvc,
		form:        formSvc,
		logg:        logg,
		nowFn:       time.Now,
	}, nil
}

func (s *service) OrdersCSV(ctx context.Context, onlyConfirmed bool) (*File, error) {
	subs, err := s.submissions.List(ctx, submissions.ListFilter{})
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.form.GetForm(ctx)
	if err != nil {
		return nil, err
	}

	file := Build(subs, products, cfg.Sections, onlyConfirmed, s.nowFn())

	scope := "all"
	if onlyConfirmed {
		scope = "confirmed"
	}
	metrics.ExportsGenerated.WithLabelValues(scope).Inc()
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"filename": file.Filename,
		"rows":     len(subs),
	}), "orders csv generated")

	return file, nil
}
