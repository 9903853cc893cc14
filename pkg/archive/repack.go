package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const mimetypeMember = "mimetype"

// Repack packs the directory tree rooted at dirPath into a zip archive at
// zipPath. Member paths are computed with TrimPath, so they come out
// relative to dirPath. Files are written with deflate compression; a
// root-level "mimetype" file is ordered first and stored uncompressed.
// Directories containing no files and no subdirectories produce a
// zero-length "name/" entry.
//
// When zipPath already exists and is a readable archive, members not
// shadowed by the directory tree are carried over unchanged; delete a stale
// archive first if a clean rebuild is required. The result is staged in a
// sibling temp file and renamed into place, so a failed repack never leaves
// a truncated archive behind.
//
// Repack fails with an error matching ErrNotADirectory when dirPath does
// not resolve to a directory.
func Repack(dirPath, zipPath string) error {
	if info, err := os.Stat(dirPath); err != nil || !info.IsDir() {
		return fmt.Errorf("archive: repack %q: %w", dirPath, ErrNotADirectory)
	}

	members, err := collectMembers(dirPath)
	if err != nil {
		return err
	}
	orderForPackage(members)

	existing := openExisting(zipPath)
	staged, err := writeStaged(zipPath, members, existing)
	if existing != nil {
		existing.Close()
	}
	if err != nil {
		return err
	}

	if err := os.Rename(staged, zipPath); err != nil {
		os.Remove(staged)
		return fmt.Errorf("archive: replace %q: %w", zipPath, err)
	}
	return nil
}

type treeMember struct {
	fsPath  string
	name    string // archive member path; directory entries end in "/"
	dir     bool
	mode    fs.FileMode
	modTime time.Time
}

func collectMembers(dirPath string) ([]treeMember, error) {
	parentDir, rootName := SplitRoot(dirPath)

	var members []treeMember
	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				members = append(members, treeMember{
					name:    TrimPath(parentDir, rootName, path) + "/",
					dir:     true,
					modTime: info.ModTime(),
				})
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		members = append(members, treeMember{
			fsPath:  path,
			name:    TrimPath(parentDir, rootName, path),
			mode:    info.Mode(),
			modTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("archive: walk %q: %w", dirPath, err)
	}
	return members, nil
}

// orderForPackage moves a root-level mimetype member to the front so package
// sniffers that expect it as the first entry keep working.
func orderForPackage(members []treeMember) {
	for i, m := range members {
		if m.name == mimetypeMember {
			first := members[i]
			copy(members[1:i+1], members[:i])
			members[0] = first
			return
		}
	}
}

func openExisting(zipPath string) *zip.ReadCloser {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil
	}
	return zr
}

func writeStaged(zipPath string, members []treeMember, existing *zip.ReadCloser) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(zipPath), filepath.Base(zipPath)+".stage-*")
	if err != nil {
		return "", fmt.Errorf("archive: stage for %q: %w", zipPath, err)
	}

	zw := zip.NewWriter(tmp)
	werr := writeMembers(zw, members, existing)
	if cerr := zw.Close(); werr == nil {
		werr = cerr
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("archive: write %q: %w", zipPath, werr)
	}
	return tmp.Name(), nil
}

func writeMembers(zw *zip.Writer, members []treeMember, existing *zip.ReadCloser) error {
	for _, m := range members {
		if err := writeMember(zw, m); err != nil {
			return err
		}
	}
	for _, carried := range carriedMembers(existing, members) {
		if err := zw.Copy(carried); err != nil {
			return fmt.Errorf("carry member %q: %w", carried.Name, err)
		}
	}
	return nil
}

func writeMember(zw *zip.Writer, m treeMember) error {
	header := &zip.FileHeader{
		Name:     m.name,
		Method:   zip.Deflate,
		Modified: m.modTime,
	}

	if m.dir {
		header.Method = zip.Store
		header.SetMode(fs.ModeDir | 0o755)
		if _, err := zw.CreateHeader(header); err != nil {
			return fmt.Errorf("create dir member %q: %w", m.name, err)
		}
		return nil
	}

	if m.name == mimetypeMember {
		header.Method = zip.Store
	}
	header.SetMode(m.mode.Perm())

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create member %q: %w", m.name, err)
	}
	f, err := os.Open(m.fsPath)
	if err != nil {
		return fmt.Errorf("open %q: %w", m.fsPath, err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write member %q: %w", m.name, err)
	}
	return nil
}

// carriedMembers selects members of the previous archive generation that the
// fresh tree does not shadow.
func carriedMembers(existing *zip.ReadCloser, members []treeMember) []*zip.File {
	if existing == nil {
		return nil
	}
	shadowed := make(map[string]struct{}, len(members))
	for _, m := range members {
		shadowed[m.name] = struct{}{}
	}

	var keep []*zip.File
	for _, f := range existing.File {
		if _, ok := shadowed[f.Name]; ok {
			continue
		}
		keep = append(keep, f)
	}
	return keep
}
