package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/formcraft/formcraft-backend/pkg/enums"
)

// FieldCondition gates the visibility of a field or section on another
// answer. A nil condition means always visible.
type FieldCondition struct {
	FieldID  string                  `json:"field_id"`
	Operator enums.ConditionOperator `json:"operator"`
	Value    string                  `json:"value"`
}

// FormField is one configurable input on the intake form.
type FormField struct {
	ID                string           `json:"id"`
	Type              enums.FieldType  `json:"type"`
	Label             string           `json:"label"`
	Placeholder       string           `json:"placeholder,omitempty"`
	Required          bool             `json:"required"`
	Options           []string         `json:"options,omitempty"`
	Width             enums.FieldWidth `json:"width,omitempty"`
	Condition         *FieldCondition  `json:"condition,omitempty"`
	ValidationRegex   string           `json:"validation_regex,omitempty"`
	ValidationMessage string           `json:"validation_message,omitempty"`
}

// FormSection groups fields under a heading, optionally gated as a whole.
type FormSection struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Fields    []FormField     `json:"fields"`
	Condition *FieldCondition `json:"condition,omitempty"`
}

// FormSections is the ordered section list persisted as JSONB.
type FormSections []FormSection

// Value serializes the sections to JSON.
func (f FormSections) Value() (driver.Value, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f)
}

// Scan decodes JSONB into the section slice.
func (f *FormSections) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded FormSections
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*f = decoded
	return nil
}
