package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrValidation marks data that failed manifest validation.
var ErrValidation = errors.New("data does not satisfy manifest")

// FieldError reports one field's validation failure. It matches
// ErrValidation through errors.Is.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func (e *FieldError) Is(target error) bool { return target == ErrValidation }

// Validate checks data against the manifest's declared fields. All fields
// are checked before returning, so one call reports every problem. Keys in
// data that the manifest does not declare pass through unchecked.
func (m *Manifest) Validate(data map[string]any) error {
	var errs []error
	for _, field := range m.Fields {
		value, present := data[field.Name]
		if !present || value == nil {
			if field.Required {
				errs = append(errs, &FieldError{Field: field.Name, Err: errors.New("required value is missing")})
			}
			continue
		}
		if field.Schema == nil {
			continue
		}

		normalized, err := jsonNormalize(value)
		if err != nil {
			errs = append(errs, &FieldError{Field: field.Name, Err: fmt.Errorf("value is not JSON-representable: %w", err)})
			continue
		}
		if err := field.Schema.VisitJSON(normalized); err != nil {
			errs = append(errs, &FieldError{Field: field.Name, Err: err})
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("manifest: %w", errors.Join(errs...))
	}
	return nil
}

// jsonNormalize rewrites a Go value into JSON-native types. Schema
// validation switches on the JSON type system, so typed Go values such as
// int or custom structs go through an encode and decode first.
func jsonNormalize(value any) (any, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
