package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"
	"gopkg.in/yaml.v3"
)

// LanguageKey is the data key carrying the resolved language code into a
// render. Templates read it through current_lang().
const LanguageKey = "lang_code"

// Translator resolves message keys for a language.
type Translator interface {
	Translate(lang, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what the translation helpers emit when a
// message cannot be resolved.
type MissingTranslationHandler func(lang, key string, err error) string

func missingTranslationDefault(_, key string, _ error) string {
	return key
}

// Catalog is an in-memory Translator mapping language code to message key to
// message. Messages may carry fmt verbs filled by translate() arguments.
type Catalog map[string]map[string]string

// Translate implements Translator.
func (c Catalog) Translate(lang, key string, args ...any) (string, error) {
	messages, ok := c[lang]
	if !ok {
		return "", fmt.Errorf("render: no messages for language %q", lang)
	}
	msg, ok := messages[key]
	if !ok {
		return "", fmt.Errorf("render: no message %q for language %q", key, lang)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}

// LoadCatalog reads a YAML catalog file shaped as language -> key -> message.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read catalog %q: %w", path, err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("render: parse catalog %q: %w", path, err)
	}
	return c, nil
}

// i18nContext builds the translation helpers for one render. The helpers
// close over the render's resolved language.
func i18nContext(t Translator, lang string, onMissing MissingTranslationHandler) pongo2.Context {
	return pongo2.Context{
		"translate": func(key string, args ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			if t == nil {
				return onMissing(lang, key, ErrMissingTranslator)
			}
			msg, err := t.Translate(lang, key, args...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(lang, key, err)
			}
			return msg
		},
		"current_lang": func() string {
			return lang
		},
	}
}

func languageOf(data map[string]any) string {
	raw, ok := data[LanguageKey]
	if !ok {
		return ""
	}
	lang, _ := raw.(string)
	return lang
}
