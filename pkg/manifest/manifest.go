// Package manifest describes the fillable fields of a document template.
// A manifest travels next to the template file and lets callers validate
// data before rendering, prompt for missing values, and fill defaults.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Manifest is the parsed description of one template's fields.
type Manifest struct {
	Name        string
	Description string
	Language    string
	Fields      []Field
}

// Field describes one fillable value.
type Field struct {
	Name     string
	Title    string
	Prompt   string
	Required bool
	Default  any
	Schema   *openapi3.Schema
}

type manifestDoc struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Language    string     `yaml:"language" json:"language"`
	Fields      []fieldDoc `yaml:"fields" json:"fields"`
}

type fieldDoc struct {
	Name     string         `yaml:"name" json:"name"`
	Title    string         `yaml:"title" json:"title"`
	Prompt   string         `yaml:"prompt" json:"prompt"`
	Required bool           `yaml:"required" json:"required"`
	Default  any            `yaml:"default" json:"default"`
	Schema   map[string]any `yaml:"schema" json:"schema"`
}

// Load reads and parses a manifest file. YAML and JSON are both accepted;
// JSON is a YAML subset, so one decoder covers both.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %q: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: parse %q: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest content. Field names must be present and unique;
// field schemas are compiled into OpenAPI schema objects.
func Parse(data []byte) (*Manifest, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}

	m := &Manifest{
		Name:        doc.Name,
		Description: doc.Description,
		Language:    doc.Language,
		Fields:      make([]Field, 0, len(doc.Fields)),
	}

	seen := make(map[string]struct{}, len(doc.Fields))
	for i, fd := range doc.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("manifest: field %d: name is required", i)
		}
		if _, dup := seen[fd.Name]; dup {
			return nil, fmt.Errorf("manifest: field %q declared twice", fd.Name)
		}
		seen[fd.Name] = struct{}{}

		field := Field{
			Name:     fd.Name,
			Title:    fd.Title,
			Prompt:   fd.Prompt,
			Required: fd.Required,
			Default:  fd.Default,
		}
		if len(fd.Schema) > 0 {
			schema, err := compileSchema(fd.Schema)
			if err != nil {
				return nil, fmt.Errorf("manifest: field %q: %w", fd.Name, err)
			}
			field.Schema = schema
		}
		m.Fields = append(m.Fields, field)
	}
	return m, nil
}

// Field returns the named field, if declared.
func (m *Manifest) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (m *Manifest) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}

// ApplyDefaults returns a copy of data with declared defaults filled in for
// absent keys. The input map is not modified.
func (m *Manifest) ApplyDefaults(data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+len(m.Fields))
	for key, value := range data {
		out[key] = value
	}
	for _, field := range m.Fields {
		if field.Default == nil {
			continue
		}
		if _, ok := out[field.Name]; ok {
			continue
		}
		out[field.Name] = field.Default
	}
	return out
}

// compileSchema turns the raw mapping from the manifest file into an
// OpenAPI schema. The mapping round-trips through JSON because that is the
// encoding the schema type unmarshals from.
func compileSchema(raw map[string]any) (*openapi3.Schema, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	schema := &openapi3.Schema{}
	if err := schema.UnmarshalJSON(encoded); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
