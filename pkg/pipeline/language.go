package pipeline

import "strings"

// DefaultLanguageCode is the language used when neither the request nor the
// configuration supplies one.
const DefaultLanguageCode = "pl"

// ResolveLanguage picks the language code for a run: the per-request
// override when given, else the configured fallback, else
// DefaultLanguageCode. A region subtag is stripped, so "pl-PL" resolves to
// "pl". The result is injected into the render data under
// render.LanguageKey; nothing else interprets it.
func ResolveLanguage(override, configured string) string {
	lang := strings.TrimSpace(override)
	if lang == "" {
		lang = strings.TrimSpace(configured)
	}
	if lang == "" {
		lang = DefaultLanguageCode
	}
	lang, _, _ = strings.Cut(lang, "-")
	return lang
}
