package form

import (
	"strings"

	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// ShippingFieldID is the sentinel field id conditions use to depend on
// the chosen shipping method instead of a form answer.
const ShippingFieldID = "__shipping__"

// EvaluateCondition decides whether a conditionally gated field or
// section is visible. A nil condition is always visible, and unknown
// operators resolve to visible so a bad config never hides the form.
func EvaluateCondition(cond *types.FieldCondition, fieldValues types.StringMap, shippingMethod enums.ShippingMethod) bool {
	if cond == nil {
		return true
	}

	var actual string
	if cond.FieldID == ShippingFieldID {
		actual = shippingMethod.String()
	} else {
		actual = fieldValues[cond.FieldID]
	}

	switch cond.Operator {
	case enums.ConditionOperatorEquals:
		return actual == cond.Value
	case enums.ConditionOperatorNotEquals:
		return actual != cond.Value
	case enums.ConditionOperatorContains:
		return strings.Contains(actual, cond.Value)
	default:
		return true
	}
}

// VisibleFields walks the sections and returns every field the buyer can
// currently see, honoring both section and field level conditions.
func VisibleFields(sections types.FormSections, fieldValues types.StringMap, shippingMethod enums.ShippingMethod) []types.FormField {
	var visible []types.FormField
	for _, section := range sections {
		if !EvaluateCondition(section.Condition, fieldValues, shippingMethod) {
			continue
		}
		for _, field := range section.Fields {
			if !EvaluateCondition(field.Condition, fieldValues, shippingMethod) {
				continue
			}
			visible = append(visible, field)
		}
	}
	return visible
}
