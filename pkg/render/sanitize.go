package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizeOnce   sync.Once
	sanitizePolicy *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	sanitizeOnce.Do(func() {
		sanitizePolicy = bluemonday.StrictPolicy()
	})
	return sanitizePolicy
}

// Sanitize strips markup from a value and returns plain text. Entities are
// decoded afterwards so the engine's autoescaping stays the single place
// where output encoding happens.
func Sanitize(value string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(value)))
}
