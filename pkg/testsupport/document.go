package testsupport

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Minimal OpenDocument text members used by fixture packages.
const (
	DocumentMimetype = "application/vnd.oasis.opendocument.text"

	FixtureContentXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" office:version="1.2">
  <office:body>
    <office:text>
      <text:p>Hello {{ name }}</text:p>
    </office:text>
  </office:body>
</office:document-content>
`

	FixtureStylesXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" office:version="1.2">
  <office:styles/>
</office:document-styles>
`

	FixtureManifestXML = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
  <manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
  <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
  <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`
)

// TemplateMembers returns the member set of a minimal fillable document
// package whose body renders "Hello {{ name }}".
func TemplateMembers() map[string]string {
	return map[string]string{
		"mimetype":              DocumentMimetype,
		"content.xml":           FixtureContentXML,
		"styles.xml":            FixtureStylesXML,
		"META-INF/manifest.xml": FixtureManifestXML,
	}
}

// WriteDocument writes a zip package at path with the given members. Names
// ending in "/" become directory entries. A "mimetype" member is ordered
// first and stored uncompressed; everything else is deflated, matching how
// document packages are laid out in the wild.
func WriteDocument(t *testing.T, path string, members map[string]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir document dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range orderedMemberNames(members) {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		if name == "mimetype" || strings.HasSuffix(name, "/") {
			header.Method = zip.Store
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("create member %s: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := io.WriteString(w, members[name]); err != nil {
			t.Fatalf("write member %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close document: %v", err)
	}
}

// WriteTemplate writes the minimal fillable package into dir and returns its
// path.
func WriteTemplate(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "template.odt")
	WriteDocument(t, path, TemplateMembers())
	return path
}

// ReadArchive reads every member of the zip package at path into a map of
// member name to content. Directory entries map to empty strings.
func ReadArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	members := make(map[string]string, len(zr.File))
	for _, member := range zr.File {
		rc, err := member.Open()
		if err != nil {
			t.Fatalf("open member %s: %v", member.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read member %s: %v", member.Name, err)
		}
		members[member.Name] = string(data)
	}
	return members
}

func orderedMemberNames(members map[string]string) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		if name == "mimetype" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if _, ok := members["mimetype"]; ok {
		names = append([]string{"mimetype"}, names...)
	}
	return names
}
