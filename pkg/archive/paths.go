package archive

import (
	"path/filepath"
	"runtime"
	"strings"
)

// TrimPath converts a filesystem path inside a packed directory into the
// archive member path it should carry. parentDir is the packed directory's
// parent (with or without a trailing separator) and rootName its final
// segment, as produced by SplitRoot.
//
// The transformation strips the first occurrence of parentDir, then one
// duplicate "rootName/" prefix, then any leading separators, and finally
// normalizes the result with NormalizeMemberPath. Member paths come out
// relative to the packed directory root: "/tmp/work/42/META-INF/manifest.xml"
// packed from "/tmp/work/42" becomes "META-INF/manifest.xml".
//
// When parentDir is empty (packing a bare relative directory name), the
// root segment is kept, so "42/report.txt" stays "42/report.txt".
func TrimPath(parentDir, rootName, path string) string {
	trimmed := path
	if parentDir != "" {
		trimmed = strings.Replace(trimmed, parentDir, "", 1)
		trimmed = strings.Replace(trimmed, rootName+string(filepath.Separator), "", 1)
	}
	trimmed = strings.TrimLeft(trimmed, string(filepath.Separator))
	return NormalizeMemberPath(trimmed)
}

// SplitRoot splits a directory path into the parent prefix and the final
// segment used by TrimPath. The parent keeps its trailing separator so a
// plain prefix strip cannot eat a sibling directory sharing the same name.
func SplitRoot(dirPath string) (parentDir, rootName string) {
	return filepath.Split(filepath.Clean(dirPath))
}

// NormalizeMemberPath folds a filesystem-flavored member path into archive
// form: forward slashes, case folded on case-insensitive platforms. On
// case-sensitive filesystems the case normalization is a no-op.
func NormalizeMemberPath(path string) string {
	normalized := filepath.ToSlash(path)
	if runtime.GOOS == "windows" {
		normalized = strings.ToLower(normalized)
	}
	return normalized
}
