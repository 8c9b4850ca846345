package submissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/enums"
)

// Repository persists order submissions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	List(ctx context.Context, filter ListFilter) ([]models.Submission, error)
	Update(ctx context.Context, sub *models.Submission) error
}

// ListFilter narrows the submission listing.
type ListFilter struct {
	Status *enums.PaymentStatus
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a submissions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Submission, error) {
	query := r.db.WithContext(ctx).Order("submitted_at DESC")
	if filter.Status != nil {
		query = query.Where("payment_status = ?", *filter.Status)
	}

	var subs []models.Submission
	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *repository) Update(ctx context.Context, sub *models.Submission) error {
	return r.db.WithContext(ctx).Save(sub).Error
}
