package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// Product is one catalog entry, either a standalone single or a bundled
// set. Variants apply to singles only; SetItems to sets only.
type Product struct {
	ID            string              `gorm:"column:id;primaryKey" json:"id"`
	Type          enums.ProductType   `gorm:"column:type;not null" json:"type"`
	Name          string              `gorm:"column:name;not null" json:"name"`
	Code          string              `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Price         decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal    `gorm:"column:original_price;type:numeric(12,2)" json:"original_price,omitempty"`
	Images        pq.StringArray      `gorm:"column:images;type:text[]" json:"images"`
	Tags          pq.StringArray      `gorm:"column:tags;type:text[]" json:"tags,omitempty"`
	Description   *string             `gorm:"column:description" json:"description,omitempty"`
	AspectRatio   *string             `gorm:"column:aspect_ratio" json:"aspect_ratio,omitempty"`
	Variants      types.VariantGroups `gorm:"column:variants;type:jsonb;serializer:json" json:"variants"`
	SetItems      types.SetItems      `gorm:"column:set_items;type:jsonb;serializer:json" json:"set_items,omitempty"`
	Position      int                 `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// IsSet reports whether the product is a bundled set.
func (p Product) IsSet() bool {
	return p.Type == enums.ProductTypeSet
}
