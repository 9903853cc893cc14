package render

import "errors"

var (
	// ErrSyntax marks template content that failed to parse.
	ErrSyntax = errors.New("template syntax error")

	// ErrExecution marks templates that parsed but failed during
	// evaluation, such as a filter fault.
	ErrExecution = errors.New("template execution error")

	// ErrMissingTranslator is routed to the missing-translation handler
	// when translation helpers run without a configured Translator.
	ErrMissingTranslator = errors.New("no translator configured")
)
