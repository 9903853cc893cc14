package docgen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/archive"
	"github.com/goliatone/go-docgen/pkg/manifest"
)

func TestStarterAssetsFSHoldsPackageMembers(t *testing.T) {
	fsys := StarterAssetsFS()
	for _, name := range []string{"mimetype", "content.xml", "styles.xml", "META-INF/manifest.xml"} {
		if _, err := fs.ReadFile(fsys, name); err != nil {
			t.Fatalf("read embedded %s: %v", name, err)
		}
	}

	mimetype, err := fs.ReadFile(fsys, "mimetype")
	if err != nil {
		t.Fatalf("read embedded mimetype: %v", err)
	}
	if got := string(mimetype); got != "application/vnd.oasis.opendocument.text" {
		t.Fatalf("mimetype member = %q", got)
	}
}

func TestStarterManifestParses(t *testing.T) {
	m, err := manifest.Parse(StarterManifest())
	if err != nil {
		t.Fatalf("parse manifest skeleton: %v", err)
	}
	if diff := cmp.Diff([]string{"title", "name"}, m.FieldNames()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
	name, ok := m.Field("name")
	if !ok {
		t.Fatal("skeleton has no name field")
	}
	if !name.Required {
		t.Fatal("name field is not required")
	}
}

func TestWriteStarterTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starter.odt")
	if err := WriteStarterTemplate(path); err != nil {
		t.Fatalf("write starter template: %v", err)
	}

	members, err := archive.List(path)
	if err != nil {
		t.Fatalf("list template: %v", err)
	}
	if len(members) == 0 {
		t.Fatal("template has no members")
	}
	if members[0].Name != "mimetype" {
		t.Fatalf("first member = %q, want mimetype", members[0].Name)
	}
	if members[0].Compressed {
		t.Fatal("mimetype member is compressed")
	}

	content, err := archive.ReadMember(path, "content.xml")
	if err != nil {
		t.Fatalf("read content.xml: %v", err)
	}
	if !strings.Contains(string(content), "Hello {{ name }}") {
		t.Fatalf("content.xml is not fillable:\n%s", content)
	}
}

func TestWriteStarterTemplateCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "starter.odt")
	if err := WriteStarterTemplate(path); err != nil {
		t.Fatalf("write starter template: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat template: %v", err)
	}
}
