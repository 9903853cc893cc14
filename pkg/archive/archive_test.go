package archive_test

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/archive"
	"github.com/goliatone/go-docgen/pkg/testsupport"
)

func TestExtractRepackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "report.odt")
	testsupport.WriteDocument(t, source, testsupport.TemplateMembers())

	workDir := filepath.Join(dir, "work", "42")
	if err := archive.Extract(source, workDir); err != nil {
		t.Fatalf("extract: %v", err)
	}

	repacked := filepath.Join(dir, "repacked.odt")
	if err := archive.Repack(workDir, repacked); err != nil {
		t.Fatalf("repack: %v", err)
	}

	want := testsupport.ReadArchive(t, source)
	got := testsupport.ReadArchive(t, repacked)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	for name := range got {
		if strings.HasPrefix(name, "/") || strings.Contains(name, "work") || strings.Contains(name, "42") {
			t.Fatalf("member %q carries workspace path segments", name)
		}
	}
}

func TestExtractCreatesDestDir(t *testing.T) {
	dir := t.TempDir()
	source := testsupport.WriteTemplate(t, dir)

	dest := filepath.Join(dir, "a", "b", "c")
	if err := archive.Extract(source, dest); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "content.xml")); err != nil {
		t.Fatalf("extracted member missing: %v", err)
	}
}

func TestExtractOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	source := testsupport.WriteTemplate(t, dir)
	dest := filepath.Join(dir, "work")

	if err := archive.Extract(source, dest); err != nil {
		t.Fatalf("first extract: %v", err)
	}
	stale := filepath.Join(dest, "content.xml")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write stale member: %v", err)
	}
	if err := archive.Extract(source, dest); err != nil {
		t.Fatalf("second extract: %v", err)
	}

	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatalf("read member: %v", err)
	}
	if string(data) != testsupport.FixtureContentXML {
		t.Fatalf("member not overwritten, got %q", data)
	}
}

func TestExtractUnreadableArchive(t *testing.T) {
	dir := t.TempDir()

	err := archive.Extract(filepath.Join(dir, "missing.odt"), filepath.Join(dir, "out"))
	if !errors.Is(err, archive.ErrUnreadableArchive) {
		t.Fatalf("missing archive: want ErrUnreadableArchive, got %v", err)
	}

	garbage := filepath.Join(dir, "garbage.odt")
	if err := os.WriteFile(garbage, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	err = archive.Extract(garbage, filepath.Join(dir, "out"))
	if !errors.Is(err, archive.ErrUnreadableArchive) {
		t.Fatalf("garbage archive: want ErrUnreadableArchive, got %v", err)
	}
}

func TestExtractRejectsEscapingMember(t *testing.T) {
	dir := t.TempDir()
	evil := filepath.Join(dir, "evil.zip")

	f, err := os.Create(evil)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "../escape.txt", Method: zip.Deflate})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := w.Write([]byte("out of bounds")); err != nil {
		t.Fatalf("write member: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if err := archive.Extract(evil, filepath.Join(dir, "out")); err == nil {
		t.Fatal("extract accepted an escaping member path")
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("escaping member written outside dest: %v", err)
	}
}

func TestRepackNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := archive.Repack(file, filepath.Join(dir, "out.zip")); !errors.Is(err, archive.ErrNotADirectory) {
		t.Fatalf("want ErrNotADirectory, got %v", err)
	}
	if err := archive.Repack(filepath.Join(dir, "missing"), filepath.Join(dir, "out.zip")); !errors.Is(err, archive.ErrNotADirectory) {
		t.Fatalf("missing dir: want ErrNotADirectory, got %v", err)
	}
}

func TestRepackSynthesizesEmptyDirEntries(t *testing.T) {
	dir := t.TempDir()
	workDir := filepath.Join(dir, "doc")
	writeTree(t, workDir, map[string]string{
		"content.xml":    "<doc/>",
		"Thumbnails/":    "",
		"Pictures/a.png": "PNG",
	})

	target := filepath.Join(dir, "doc.odt")
	if err := archive.Repack(workDir, target); err != nil {
		t.Fatalf("repack: %v", err)
	}

	members := testsupport.ReadArchive(t, target)
	if _, ok := members["Thumbnails/"]; !ok {
		t.Fatalf("empty directory entry missing, members: %v", memberNames(members))
	}
	if _, ok := members["Pictures/"]; ok {
		t.Fatal("non-empty directory got its own entry")
	}
	if members["Pictures/a.png"] != "PNG" {
		t.Fatalf("nested member content mismatch: %q", members["Pictures/a.png"])
	}
}

func TestRepackMimetypeFirstAndStored(t *testing.T) {
	dir := t.TempDir()
	workDir := filepath.Join(dir, "doc")
	writeTree(t, workDir, map[string]string{
		"content.xml": "<doc/>",
		"mimetype":    testsupport.DocumentMimetype,
		"styles.xml":  "<styles/>",
	})

	target := filepath.Join(dir, "doc.odt")
	if err := archive.Repack(workDir, target); err != nil {
		t.Fatalf("repack: %v", err)
	}

	members, err := archive.List(target)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) == 0 || members[0].Name != "mimetype" {
		t.Fatalf("mimetype is not the first member: %+v", members)
	}
	if members[0].Compressed {
		t.Fatal("mimetype member is compressed")
	}
	for _, m := range members[1:] {
		if !m.Compressed {
			t.Fatalf("member %q not deflated", m.Name)
		}
	}
}

func TestRepackCarriesUnshadowedMembers(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.odt")
	testsupport.WriteDocument(t, target, map[string]string{
		"content.xml":       "old content",
		"Pictures/logo.png": "LOGO",
	})

	workDir := filepath.Join(dir, "doc")
	writeTree(t, workDir, map[string]string{
		"content.xml": "new content",
	})
	if err := archive.Repack(workDir, target); err != nil {
		t.Fatalf("repack: %v", err)
	}

	members := testsupport.ReadArchive(t, target)
	if members["content.xml"] != "new content" {
		t.Fatalf("shadowed member not replaced: %q", members["content.xml"])
	}
	if members["Pictures/logo.png"] != "LOGO" {
		t.Fatalf("unshadowed member lost, members: %v", memberNames(members))
	}
}

func TestRepackReplacesStaleNonZip(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.odt")
	if err := os.WriteFile(target, []byte("stale garbage"), 0o644); err != nil {
		t.Fatalf("write stale target: %v", err)
	}

	workDir := filepath.Join(dir, "doc")
	writeTree(t, workDir, map[string]string{"content.xml": "<doc/>"})
	if err := archive.Repack(workDir, target); err != nil {
		t.Fatalf("repack: %v", err)
	}

	members := testsupport.ReadArchive(t, target)
	if members["content.xml"] != "<doc/>" {
		t.Fatalf("rebuilt archive content mismatch: %v", members)
	}
}

func TestReadMember(t *testing.T) {
	dir := t.TempDir()
	source := testsupport.WriteTemplate(t, dir)

	data, err := archive.ReadMember(source, "content.xml")
	if err != nil {
		t.Fatalf("read member: %v", err)
	}
	if string(data) != testsupport.FixtureContentXML {
		t.Fatalf("member content mismatch: %q", data)
	}

	if _, err := archive.ReadMember(source, "nope.xml"); err == nil {
		t.Fatal("missing member did not error")
	}
}

func writeTree(t *testing.T, root string, entries map[string]string) {
	t.Helper()

	for name, content := range entries {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir parent of %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func memberNames(members map[string]string) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	return names
}
