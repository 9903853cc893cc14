package archive

import "errors"

var (
	// ErrUnreadableArchive marks extraction failures caused by a missing
	// path or a file that is not a valid zip archive.
	ErrUnreadableArchive = errors.New("unreadable archive")

	// ErrNotADirectory marks repack calls whose source path does not
	// resolve to a directory.
	ErrNotADirectory = errors.New("not a directory")
)
