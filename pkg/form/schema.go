package form

// FieldRule applies one validator to a list of fields.
type FieldRule struct {
	Fields    []string
	Validator Validator
}

// Rule creates a FieldRule.
func Rule(v Validator, fields ...string) FieldRule {
	return FieldRule{Fields: fields, Validator: v}
}

// Schema is an ordered list of rules.
type Schema []FieldRule

// Validate runs the rules in order against values and returns the first
// failure as a ValidationError carrying the field name. Missing fields
// validate as empty strings.
func (s Schema) Validate(values map[string]string) error {
	for _, rule := range s {
		for _, field := range rule.Fields {
			err := rule.Validator.Validate(values[field])
			if err == nil {
				continue
			}
			if ve, ok := err.(ValidationError); ok {
				ve.Field = field
				return ve
			}
			return ValidationError{Field: field, Message: err.Error()}
		}
	}
	return nil
}
