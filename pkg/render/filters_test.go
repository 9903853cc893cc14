package render_test

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-docgen/pkg/render"
)

func TestSanitizeStripsMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello", "hello"},
		{"inline tags", "Bold <b>move</b>", "Bold move"},
		{"entities survive", "Fish & Chips", "Fish & Chips"},
		{"script content dropped", `<script>alert("x")</script>ok`, "ok"},
		{"surrounding whitespace", "  padded  ", "padded"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := render.Sanitize(tc.in); got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeFilterInTemplate(t *testing.T) {
	engine := newEngine(t)

	got := renderString(t, engine, "{{ bio|sanitize }}", map[string]any{
		"bio": "Bold <b>move</b> & more",
	})
	if got != "Bold move &amp; more" {
		t.Fatalf("render = %q, want %q", got, "Bold move &amp; more")
	}
}

func TestTrimFilterInTemplate(t *testing.T) {
	engine := newEngine(t)

	got := renderString(t, engine, "[{{ title|trim }}]", map[string]any{
		"title": "  Quarterly Report ",
	})
	if got != "[Quarterly Report]" {
		t.Fatalf("render = %q, want %q", got, "[Quarterly Report]")
	}
}

func TestCustomFilterWithParameter(t *testing.T) {
	engine := newEngine(t, render.WithFilter("currency", func(in, param any) (any, error) {
		symbol, _ := param.(string)
		if symbol == "" {
			symbol = "PLN"
		}
		return fmt.Sprintf("%v %s", in, symbol), nil
	}))

	got := renderString(t, engine, `{{ total|currency:"EUR" }}`, map[string]any{"total": 120})
	if got != "120 EUR" {
		t.Fatalf("render = %q, want %q", got, "120 EUR")
	}
}

func TestRegisterFilterValidation(t *testing.T) {
	newEngine(t)

	identity := func(in, _ any) (any, error) { return in, nil }

	if err := render.RegisterFilter("", identity); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := render.RegisterFilter("trim", identity); err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if err := render.RegisterFilter("noop", nil); err == nil {
		t.Fatal("expected error for nil function")
	}
}
