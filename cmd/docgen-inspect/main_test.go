package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	docgen "github.com/goliatone/go-docgen"
	"github.com/goliatone/go-docgen/pkg/manifest"
)

func TestScanVariables(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []string
	}{
		{"plain expression", "Hello {{ name }}", []string{"name"}},
		{"dotted path", "{{ customer.address.city }}", []string{"customer.address.city"}},
		{"filter dropped", `{{ total|currency:"EUR" }}`, []string{"total"}},
		{"chained filters", "{{ note|sanitize|trim }}", []string{"note"}},
		{"loop locals dropped", "{% for item in items %}{{ item.name }}{% endfor %}", []string{"items"}},
		{"pair loop", "{% for k, v in prices %}{{ k }}: {{ v }}{% endfor %}", []string{"prices"}},
		{"condition", "{% if total > 100 %}big{% endif %}", []string{"total"}},
		{"engine helpers dropped", `{{ translate("greeting") }} {{ current_lang() }} {{ lang_code }}`, nil},
		{"string literal dropped", `{{ translate("name") }}`, nil},
		{"no constructs", "<text:p>static</text:p>", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, scanVariables(tc.source)); diff != "" {
				t.Fatalf("variables mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildReportOnStarterTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "starter.odt")
	if err := docgen.WriteStarterTemplate(template); err != nil {
		t.Fatalf("write starter template: %v", err)
	}
	manifestPath := filepath.Join(dir, "starter.manifest.yaml")
	if err := os.WriteFile(manifestPath, docgen.StarterManifest(), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	dataPath := filepath.Join(dir, "data.yaml")
	if err := os.WriteFile(dataPath, []byte("title: Offer\n"), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}

	rep, err := buildReport(template, manifestPath, dataPath, []string{"content.xml", "styles.xml", "meta.xml"})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	if len(rep.Members) == 0 || rep.Members[0].Name != "mimetype" {
		t.Fatalf("unexpected members: %+v", rep.Members)
	}
	if diff := cmp.Diff([]string{"id", "name", "title"}, rep.Variables["content.xml"]); diff != "" {
		t.Fatalf("content variables mismatch (-want +got):\n%s", diff)
	}
	if vars, scanned := rep.Variables["styles.xml"]; !scanned || vars != nil {
		t.Fatalf("styles.xml variables = %v (scanned %v), want none", vars, scanned)
	}
	if _, scanned := rep.Variables["meta.xml"]; scanned {
		t.Fatal("meta.xml is not in the package and must not be scanned")
	}

	want := []fieldStatus{
		{Name: "title", Required: false, State: "satisfied"},
		{Name: "name", Required: true, State: "missing"},
	}
	if diff := cmp.Diff(want, rep.Fields); diff != "" {
		t.Fatalf("field coverage mismatch (-want +got):\n%s", diff)
	}
	if got := rep.missingRequired(); got != 1 {
		t.Fatalf("missingRequired = %d, want 1", got)
	}
}

func TestFieldState(t *testing.T) {
	cases := []struct {
		name  string
		field manifest.Field
		data  map[string]any
		want  string
	}{
		{"present value", manifest.Field{Name: "total"}, map[string]any{"total": 12}, "satisfied"},
		{"nil value counts as absent", manifest.Field{Name: "total", Required: true}, map[string]any{"total": nil}, "missing"},
		{"default covers absence", manifest.Field{Name: "lang", Default: "pl"}, nil, "defaulted"},
		{"required without default", manifest.Field{Name: "name", Required: true}, nil, "missing"},
		{"optional without default", manifest.Field{Name: "note"}, nil, "unset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fieldState(tc.field, tc.data); got != tc.want {
				t.Fatalf("fieldState = %q, want %q", got, tc.want)
			}
		})
	}
}
