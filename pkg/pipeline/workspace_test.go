package pipeline_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-docgen/pkg/pipeline"
)

func TestArchiveBaseName(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"odt stays", filepath.Join("srv", "templates", "report.odt"), "report.odt"},
		{"zip swapped", "report.zip", "report.odt"},
		{"no extension", filepath.Join("x", "report"), "report.odt"},
		{"multiple dots", "a.b.odt", "a.b.odt"},
		{"multiple dots other extension", "a.b.zip", "a.b.odt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pipeline.ArchiveBaseName(tc.source); got != tc.want {
				t.Fatalf("ArchiveBaseName(%q) = %q, want %q", tc.source, got, tc.want)
			}
		})
	}
}

func TestNewWorkspace(t *testing.T) {
	root := filepath.Join("tmp", "docgen")
	ws := pipeline.NewWorkspace(root, "42", filepath.Join("srv", "report.zip"), "")

	if want := filepath.Join(root, "42"); ws.Dir != want {
		t.Fatalf("Dir = %q, want %q", ws.Dir, want)
	}
	if want := filepath.Join(root, "report.odt"); ws.Archive != want {
		t.Fatalf("Archive = %q, want %q", ws.Archive, want)
	}
}

func TestNewWorkspaceWithSuffix(t *testing.T) {
	root := filepath.Join("tmp", "docgen")
	ws := pipeline.NewWorkspace(root, "42", filepath.Join("srv", "report.zip"), "abcd1234")

	if want := filepath.Join(root, "42-abcd1234"); ws.Dir != want {
		t.Fatalf("Dir = %q, want %q", ws.Dir, want)
	}
	if want := filepath.Join(root, "report-abcd1234.odt"); ws.Archive != want {
		t.Fatalf("Archive = %q, want %q", ws.Archive, want)
	}
}
