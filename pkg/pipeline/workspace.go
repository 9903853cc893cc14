package pipeline

import (
	"path/filepath"
	"strings"
)

// Workspace holds the two temporary paths one run owns: the directory the
// template package is extracted into and the intermediate archive the
// filled package is repacked to. Both live directly under the temp root and
// are removed when the run succeeds.
type Workspace struct {
	Dir     string
	Archive string
}

// NewWorkspace derives the workspace for a run. A non-empty runSuffix
// namespaces both paths so concurrent runs sharing a document id or a
// template file name cannot collide.
func NewWorkspace(tempRoot, documentID, sourcePath, runSuffix string) Workspace {
	dirName := documentID
	archiveName := ArchiveBaseName(sourcePath)
	if runSuffix != "" {
		dirName += "-" + runSuffix
		ext := filepath.Ext(archiveName)
		archiveName = strings.TrimSuffix(archiveName, ext) + "-" + runSuffix + ext
	}
	return Workspace{
		Dir:     filepath.Join(tempRoot, dirName),
		Archive: filepath.Join(tempRoot, archiveName),
	}
}

// ArchiveBaseName is the file name of the intermediate archive for a
// source template: the source's base name with its extension replaced by
// ".odt". A source without an extension gets ".odt" appended.
func ArchiveBaseName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".odt"
}
