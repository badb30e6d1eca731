package validation

import "strings"

// FieldError is a single rejected field, rendered to clients as {field, message}.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered set of field errors found in one request.
type Errors []FieldError

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns nil for an empty set so callers can use the usual err != nil check.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
