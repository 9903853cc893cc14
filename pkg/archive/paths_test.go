package archive_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-docgen/pkg/archive"
)

func TestTrimPath(t *testing.T) {
	cases := []struct {
		name string
		dir  string
		path string
		want string
	}{
		{
			name: "root level file",
			dir:  filepath.Join("tmp", "work", "42"),
			path: filepath.Join("tmp", "work", "42", "content.xml"),
			want: "content.xml",
		},
		{
			name: "nested member",
			dir:  filepath.Join("tmp", "work", "42"),
			path: filepath.Join("tmp", "work", "42", "meta-inf", "manifest.xml"),
			want: "meta-inf/manifest.xml",
		},
		{
			name: "inner directory repeating the root name",
			dir:  filepath.Join("tmp", "work", "42"),
			path: filepath.Join("tmp", "work", "42", "42", "copy.xml"),
			want: "42/copy.xml",
		},
		{
			name: "bare relative root keeps its segment",
			dir:  "docs",
			path: filepath.Join("docs", "a.txt"),
			want: "docs/a.txt",
		},
		{
			name: "root directory itself",
			dir:  filepath.Join("tmp", "work", "42"),
			path: filepath.Join("tmp", "work", "42"),
			want: "42",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parent, root := archive.SplitRoot(tc.dir)
			if got := archive.TrimPath(parent, root, tc.path); got != tc.want {
				t.Fatalf("TrimPath(%q, %q, %q) = %q, want %q", parent, root, tc.path, got, tc.want)
			}
		})
	}
}

func TestSplitRoot(t *testing.T) {
	parent, root := archive.SplitRoot(filepath.Join("tmp", "work", "42") + string(filepath.Separator))
	if root != "42" {
		t.Fatalf("root = %q, want %q", root, "42")
	}
	if parent != filepath.Join("tmp", "work")+string(filepath.Separator) {
		t.Fatalf("parent = %q", parent)
	}

	parent, root = archive.SplitRoot("docs")
	if parent != "" || root != "docs" {
		t.Fatalf("bare dir split = (%q, %q)", parent, root)
	}
}

func TestNormalizeMemberPath(t *testing.T) {
	got := archive.NormalizeMemberPath(filepath.Join("pictures", "logo.png"))
	if got != "pictures/logo.png" {
		t.Fatalf("normalized path = %q", got)
	}
}
