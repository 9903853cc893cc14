package pipeline_test

import (
	"testing"

	"github.com/goliatone/go-docgen/pkg/pipeline"
)

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name       string
		override   string
		configured string
		want       string
	}{
		{"override wins", "en", "pl", "en"},
		{"override region stripped", "pl-PL", "en", "pl"},
		{"configured fallback", "", "en-US", "en"},
		{"built-in default", "", "", "pl"},
		{"blank override ignored", "   ", "en", "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pipeline.ResolveLanguage(tc.override, tc.configured); got != tc.want {
				t.Fatalf("ResolveLanguage(%q, %q) = %q, want %q", tc.override, tc.configured, got, tc.want)
			}
		})
	}
}
