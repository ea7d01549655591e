// Package form validates submitted form fields.
//
// Field values arrive from the client as a name to value map. A Schema is
// an ordered list of rules, each applying one Validator to one or more
// fields. Validation stops at the first failing rule, so rule order
// decides which message the user sees.
//
//	schema := form.Schema{
//	    form.Rule(form.Required("Please fill in all fields"), "name", "email", "message"),
//	    form.Rule(form.Email("Please enter a valid email address"), "email"),
//	}
//	if err := schema.Validate(fields); err != nil {
//	    toast.Error(n, err.Error())
//	}
//
// # Built-in Validators
//
//   - Required: value is non-empty
//   - Email: value looks like local@domain.tld
//   - MaxLength: rune count bound
//
// Format validators accept empty values; pair them with Required.
package form
