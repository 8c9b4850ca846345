package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StringMap is a string-keyed JSONB mapping (field answers, variant
// selections). Iteration order is undefined; callers that need the
// variant-group declaration order must use the line's SelectionOrder.
type StringMap map[string]string

// Value serializes the map to JSON.
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan decodes JSONB into the map.
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded StringMap
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*m = decoded
	return nil
}

// SetMemberDetail snapshots one set member's resolved variant choice on a
// cart line. VariantLabel/VariantCode are empty for members without
// variants.
type SetMemberDetail struct {
	ProductName  string `json:"product_name"`
	ProductCode  string `json:"product_code"`
	VariantLabel string `json:"variant_label,omitempty"`
	VariantCode  string `json:"variant_code,omitempty"`
}

// SetMemberDetails is the ordered member snapshot list.
type SetMemberDetails []SetMemberDetail

// CartLine is one addition event to the cart. Everything on it is a
// snapshot taken at add time: later catalog edits never change the line.
type CartLine struct {
	CartID            string           `json:"cart_id"`
	ProductID         string           `json:"product_id"`
	ProductName       string           `json:"product_name"`
	ProductCode       string           `json:"product_code"`
	ProductImages     []string         `json:"product_images,omitempty"`
	UnitPrice         decimal.Decimal  `json:"unit_price"`
	Qty               int              `json:"qty"`
	VariantSelections StringMap        `json:"variant_selections,omitempty"`
	VariantCodes      StringMap        `json:"variant_codes,omitempty"`
	SelectionOrder    []string         `json:"selection_order,omitempty"`
	IsSet             bool             `json:"is_set,omitempty"`
	SetDetails        SetMemberDetails `json:"set_details,omitempty"`
}

// LineTotal is unit price times quantity.
func (c CartLine) LineTotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Qty)))
}

// CartLines is a frozen line list persisted as JSONB on submissions.
type CartLines []CartLine

// Value serializes the lines to JSON.
func (c CartLines) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan decodes JSONB into the line slice.
func (c *CartLines) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded CartLines
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*c = decoded
	return nil
}
