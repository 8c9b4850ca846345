package form

import (
	"testing"

	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

func TestEvaluateConditionNilIsVisible(t *testing.T) {
	t.Parallel()

	if !EvaluateCondition(nil, nil, enums.ShippingMethodPickup) {
		t.Fatal("nil condition must be visible")
	}
}

func TestEvaluateConditionOperators(t *testing.T) {
	t.Parallel()

	values := types.StringMap{"contact": "line"}

	cases := []struct {
		name string
		cond types.FieldCondition
		want bool
	}{
		{"equals match", types.FieldCondition{FieldID: "contact", Operator: enums.ConditionOperatorEquals, Value: "line"}, true},
		{"equals miss", types.FieldCondition{FieldID: "contact", Operator: enums.ConditionOperatorEquals, Value: "email"}, false},
		{"not equals", types.FieldCondition{FieldID: "contact", Operator: enums.ConditionOperatorNotEquals, Value: "email"}, true},
		{"contains", types.FieldCondition{FieldID: "contact", Operator: enums.ConditionOperatorContains, Value: "in"}, true},
		{"contains miss", types.FieldCondition{FieldID: "contact", Operator: enums.ConditionOperatorContains, Value: "zz"}, false},
		{"missing answer equals", types.FieldCondition{FieldID: "ghost", Operator: enums.ConditionOperatorEquals, Value: "x"}, false},
		{"unknown operator is visible", types.FieldCondition{FieldID: "contact", Operator: "between", Value: "x"}, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cond := tc.cond
			if got := EvaluateCondition(&cond, values, enums.ShippingMethodPickup); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluateConditionShippingSentinel(t *testing.T) {
	t.Parallel()

	cond := &types.FieldCondition{
		FieldID:  ShippingFieldID,
		Operator: enums.ConditionOperatorEquals,
		Value:    "delivery",
	}

	if !EvaluateCondition(cond, nil, enums.ShippingMethodDelivery) {
		t.Fatal("delivery should satisfy the sentinel condition")
	}
	if EvaluateCondition(cond, nil, enums.ShippingMethodPickup) {
		t.Fatal("pickup should not satisfy the sentinel condition")
	}
	// A form answer under the sentinel key must not shadow the method.
	if EvaluateCondition(cond, types.StringMap{ShippingFieldID: "delivery"}, enums.ShippingMethodPickup) {
		t.Fatal("sentinel must read the shipping method, not the answers")
	}
}

func TestVisibleFieldsSectionGate(t *testing.T) {
	t.Parallel()

	sections := types.FormSections{
		{
			ID:    "contact",
			Title: "Contact",
			Fields: []types.FormField{
				{ID: "name", Type: enums.FieldTypeText, Label: "Name", Required: true},
			},
		},
		{
			ID:    "delivery",
			Title: "Delivery",
			Condition: &types.FieldCondition{
				FieldID:  ShippingFieldID,
				Operator: enums.ConditionOperatorEquals,
				Value:    "delivery",
			},
			Fields: []types.FormField{
				{ID: "address", Type: enums.FieldTypeTextarea, Label: "Address", Required: true},
				{
					ID: "gate_code", Type: enums.FieldTypeText, Label: "Gate code",
					Condition: &types.FieldCondition{
						FieldID:  "building",
						Operator: enums.ConditionOperatorEquals,
						Value:    "condo",
					},
				},
			},
		},
	}

	pickup := VisibleFields(sections, nil, enums.ShippingMethodPickup)
	if len(pickup) != 1 || pickup[0].ID != "name" {
		t.Fatalf("pickup should hide the delivery section: %+v", pickup)
	}

	delivery := VisibleFields(sections, types.StringMap{"building": "condo"}, enums.ShippingMethodDelivery)
	if len(delivery) != 3 {
		t.Fatalf("delivery with condo should show all 3 fields, got %d", len(delivery))
	}

	house := VisibleFields(sections, types.StringMap{"building": "house"}, enums.ShippingMethodDelivery)
	if len(house) != 2 {
		t.Fatalf("house should hide the gate code, got %d", len(house))
	}
}
