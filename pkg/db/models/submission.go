package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// Submission is a frozen checkout snapshot. Items and pricing are
// immutable after creation; only the payment review fields change.
type Submission struct {
	ID                 uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SubmittedAt        time.Time            `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
	FieldValues        types.StringMap      `gorm:"column:field_values;type:jsonb;serializer:json" json:"field_values"`
	Items              types.CartLines      `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	ShippingMethod     enums.ShippingMethod `gorm:"column:shipping_method;not null" json:"shipping_method"`
	Subtotal           decimal.Decimal      `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	ShippingCost       decimal.Decimal      `gorm:"column:shipping_cost;type:numeric(12,2);not null" json:"shipping_cost"`
	Total              decimal.Decimal      `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	PaymentSlipURL     *string              `gorm:"column:payment_slip_url" json:"payment_slip_url,omitempty"`
	PaymentStatus      enums.PaymentStatus  `gorm:"column:payment_status;not null;default:'pending'" json:"payment_status"`
	PaymentNote        *string              `gorm:"column:payment_note" json:"payment_note,omitempty"`
	PaymentConfirmedAt *time.Time           `gorm:"column:payment_confirmed_at" json:"payment_confirmed_at,omitempty"`
}

// BeforeCreate assigns the id when the caller did not.
func (s *Submission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
