package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extract unpacks the zip archive at archivePath into destDir, creating
// destDir and any parents when absent. Member paths are preserved relative
// to destDir; files already present are overwritten, so re-extracting into a
// reused working directory is legal. Members whose names escape destDir are
// rejected.
//
// A missing archive or one that is not a valid zip fails with an error
// matching ErrUnreadableArchive.
func Extract(archivePath, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("archive: open %q: %w: %w", archivePath, ErrUnreadableArchive, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("archive: create dest dir %q: %w", destDir, err)
	}

	for _, member := range zr.File {
		if err := extractMember(member, destDir); err != nil {
			return fmt.Errorf("archive: extract %q from %q: %w", member.Name, archivePath, err)
		}
	}
	return nil
}

func extractMember(member *zip.File, destDir string) error {
	rel := filepath.Clean(filepath.FromSlash(member.Name))
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("member path %q escapes destination", member.Name)
	}
	target := filepath.Join(destDir, rel)

	if member.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	mode := member.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	rc, err := member.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// MemberInfo describes one entry of a zip package.
type MemberInfo struct {
	Name             string
	UncompressedSize uint64
	Compressed       bool
}

// List returns the members of the zip archive at archivePath in stored
// order. It shares Extract's error contract for unreadable archives.
func List(archivePath string) ([]MemberInfo, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("archive: open %q: %w: %w", archivePath, ErrUnreadableArchive, err)
	}
	defer zr.Close()

	members := make([]MemberInfo, 0, len(zr.File))
	for _, member := range zr.File {
		members = append(members, MemberInfo{
			Name:             member.Name,
			UncompressedSize: member.UncompressedSize64,
			Compressed:       member.Method != zip.Store,
		})
	}
	return members, nil
}

// ReadMember returns the decompressed content of one member of the archive
// at archivePath. Member names use forward slashes as stored in the archive.
func ReadMember(archivePath, name string) ([]byte, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("archive: open %q: %w: %w", archivePath, ErrUnreadableArchive, err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		if member.Name != name && strings.TrimSuffix(member.Name, "/") != name {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("archive: open member %q in %q: %w", name, archivePath, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("archive: read member %q in %q: %w", name, archivePath, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("archive: member %q not found in %q", name, archivePath)
}
