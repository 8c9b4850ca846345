package form

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/formcraft/formcraft-backend/pkg/db/models"
)

// Repository persists the singleton form configuration.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context) (*models.FormConfig, error)
	Upsert(ctx context.Context, cfg *models.FormConfig) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a form repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Get(ctx context.Context) (*models.FormConfig, error) {
	var cfg models.FormConfig
	err := r.db.WithContext(ctx).
		Where("id = ?", models.FormConfigID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) Upsert(ctx context.Context, cfg *models.FormConfig) error {
	cfg.ID = models.FormConfigID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(cfg).Error
}
