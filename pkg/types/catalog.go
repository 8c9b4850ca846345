package types

import (
	"database/sql/driver"
	"encoding/json"
)

// VariantOption is one selectable choice inside a variant group.
type VariantOption struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Code  string  `json:"code"`
	Image *string `json:"image,omitempty"`
}

// VariantGroup is a named set of mutually exclusive options the buyer
// resolves before a product can be added to the cart.
type VariantGroup struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Required         bool            `json:"required"`
	Options          []VariantOption `json:"options"`
	ExpandAsProducts bool            `json:"expand_as_products,omitempty"`
}

// VariantGroups is the ordered group list persisted as JSONB.
type VariantGroups []VariantGroup

// Value serializes the groups to JSON.
func (v VariantGroups) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// Scan decodes JSONB into the group slice.
func (v *VariantGroups) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded VariantGroups
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*v = decoded
	return nil
}

// SetItem references one single product bundled into a set.
type SetItem struct {
	ProductID string `json:"product_id"`
	Label     string `json:"label"`
}

// SetItems is the ordered member list persisted as JSONB.
type SetItems []SetItem

// Value serializes the members to JSON.
func (s SetItems) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan decodes JSONB into the member slice.
func (s *SetItems) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded SetItems
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*s = decoded
	return nil
}
