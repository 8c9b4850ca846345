package form

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/enums"
	pkgerrors "github.com/formcraft/formcraft-backend/pkg/errors"
	"github.com/formcraft/formcraft-backend/pkg/logger"
)

// Service exposes the form configuration surface.
type Service interface {
	GetForm(ctx context.Context) (*models.FormConfig, error)
	PutForm(ctx context.Context, cfg *models.FormConfig) (*models.FormConfig, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the form service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) GetForm(ctx context.Context) (*models.FormConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Seed migration inserts the row; a missing row means the
			// database was never migrated.
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "form configuration not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading form configuration")
	}
	return cfg, nil
}

func (s *service) PutForm(ctx context.Context, cfg *models.FormConfig) (*models.FormConfig, error) {
	if cfg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form configuration is required")
	}
	if err := validateForm(cfg); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving form configuration")
	}

	s.logg.Info(s.logg.WithField(ctx, "section_count", len(cfg.Sections)), "form configuration saved")
	return cfg, nil
}

func validateForm(cfg *models.FormConfig) error {
	var problems []string

	if cfg.ShippingCost.IsNegative() {
		problems = append(problems, "shipping cost must not be negative")
	}

	fieldIDs := make(map[string]bool)
	for _, section := range cfg.Sections {
		if section.ID == "" {
			problems = append(problems, "section id must not be empty")
		}
		for _, field := range section.Fields {
			if field.ID == "" {
				problems = append(problems, fmt.Sprintf("section %q has a field without id", section.ID))
				continue
			}
			if fieldIDs[field.ID] {
				problems = append(problems, fmt.Sprintf("duplicate field id %q", field.ID))
			}
			fieldIDs[field.ID] = true

			if !field.Type.IsValid() {
				problems = append(problems, fmt.Sprintf("field %q has invalid type %q", field.ID, field.Type))
			}
			if needsOptions(field.Type) && len(field.Options) == 0 {
				problems = append(problems, fmt.Sprintf("field %q needs options for type %q", field.ID, field.Type))
			}
		}
	}

	// Condition targets may reference any field or the shipping sentinel;
	// dangling references are tolerated because evaluation fails open.

	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "form validation failed").
			WithDetails(map[string]any{"problems": problems})
	}
	return nil
}

func needsOptions(t enums.FieldType) bool {
	switch t {
	case enums.FieldTypeSelect, enums.FieldTypeDropdown, enums.FieldTypeChoice:
		return true
	}
	return false
}
