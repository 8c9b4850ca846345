package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/types"
)

// FormConfigID is the primary key of the singleton form record.
const FormConfigID = "default"

// FormConfig is the admin-authored intake form. Exactly one row exists;
// PutForm upserts it.
type FormConfig struct {
	ID              string             `gorm:"column:id;primaryKey" json:"id"`
	Title           string             `gorm:"column:title;not null" json:"title"`
	Subtitle        string             `gorm:"column:subtitle" json:"subtitle"`
	Theme           string             `gorm:"column:theme;not null;default:'light'" json:"theme"`
	CoverColor      string             `gorm:"column:cover_color" json:"cover_color"`
	AccentColor     string             `gorm:"column:accent_color" json:"accent_color"`
	LogoEmoji       string             `gorm:"column:logo_emoji" json:"logo_emoji"`
	BannerImage     *string            `gorm:"column:banner_image" json:"banner_image,omitempty"`
	QRCodeImage     *string            `gorm:"column:qr_code_image" json:"qr_code_image,omitempty"`
	Published       bool               `gorm:"column:published;not null;default:false" json:"published"`
	ShippingEnabled bool               `gorm:"column:shipping_enabled;not null;default:false" json:"shipping_enabled"`
	ShippingCost    decimal.Decimal    `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0" json:"shipping_cost"`
	PaymentNote     string             `gorm:"column:payment_note" json:"payment_note"`
	PromptPayID     string             `gorm:"column:promptpay_id" json:"promptpay_id"`
	Sections        types.FormSections `gorm:"column:sections;type:jsonb;serializer:json" json:"sections"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
