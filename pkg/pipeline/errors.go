package pipeline

import "errors"

var (
	// ErrMissingID marks request data without a usable "id" value.
	ErrMissingID = errors.New(`data has no "id" value`)

	// ErrSourceNotFound marks a template path that cannot be found on
	// disk.
	ErrSourceNotFound = errors.New("template file not found")
)
