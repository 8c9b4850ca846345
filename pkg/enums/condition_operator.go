package enums

// ConditionOperator compares a form answer against a condition's value.
//
// Operators outside this set are tolerated at evaluation time: the
// evaluator treats them as always-true rather than hiding content behind
// a comparison it cannot perform.
type ConditionOperator string

const (
	ConditionOperatorEquals    ConditionOperator = "equals"
	ConditionOperatorNotEquals ConditionOperator = "not_equals"
	ConditionOperatorContains  ConditionOperator = "contains"
)

var validConditionOperators = []ConditionOperator{
	ConditionOperatorEquals,
	ConditionOperatorNotEquals,
	ConditionOperatorContains,
}

// String implements fmt.Stringer.
func (c ConditionOperator) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConditionOperator.
func (c ConditionOperator) IsValid() bool {
	for _, candidate := range validConditionOperators {
		if candidate == c {
			return true
		}
	}
	return false
}
