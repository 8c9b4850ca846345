package form

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// FieldError is one rejected answer, keyed by field id.
type FieldError struct {
	FieldID string `json:"field_id"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// ValidateAnswers checks the submitted answers against the form. Hidden
// fields are skipped entirely: their required flags and patterns do not
// apply while a condition hides them.
func ValidateAnswers(sections types.FormSections, fieldValues types.StringMap, shippingMethod enums.ShippingMethod) []FieldError {
	var errs []FieldError
	for _, field := range VisibleFields(sections, fieldValues, shippingMethod) {
		value := strings.TrimSpace(fieldValues[field.ID])

		if field.Required && value == "" {
			errs = append(errs, FieldError{
				FieldID: field.ID,
				Label:   field.Label,
				Message: fmt.Sprintf("%s is required", field.Label),
			})
			continue
		}

		if value == "" || field.ValidationRegex == "" {
			continue
		}

		re, err := regexp.Compile(field.ValidationRegex)
		if err != nil {
			// Broken admin pattern must not block checkout.
			continue
		}
		if !re.MatchString(value) {
			message := field.ValidationMessage
			if message == "" {
				message = fmt.Sprintf("%s has an invalid format", field.Label)
			}
			errs = append(errs, FieldError{FieldID: field.ID, Label: field.Label, Message: message})
		}
	}
	return errs
}
