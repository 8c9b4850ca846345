package enums

// FieldType identifies the input widget backing a form field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeChoice   FieldType = "choice"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFile     FieldType = "file"
)

var validFieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypeTel,
	FieldTypeTextarea,
	FieldTypeSelect,
	FieldTypeDropdown,
	FieldTypeChoice,
	FieldTypeCheckbox,
	FieldTypeFile,
}

// String implements fmt.Stringer.
func (f FieldType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FieldType.
func (f FieldType) IsValid() bool {
	for _, candidate := range validFieldTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// FieldWidth controls the field's layout on the rendered form.
type FieldWidth string

const (
	FieldWidthFull FieldWidth = "full"
	FieldWidthHalf FieldWidth = "half"
)

// IsValid reports whether the value is a known FieldWidth.
func (f FieldWidth) IsValid() bool {
	return f == FieldWidthFull || f == FieldWidthHalf
}
