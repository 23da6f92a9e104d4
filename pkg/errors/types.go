package errors

import (
	"fmt"
)

// NotADirectory represents a directory operation invoked on an entry that is
// not a directory. This is a programming error in the caller.
type NotADirectory struct {
	Name string
}

func (err NotADirectory) Error() string {
	return fmt.Sprintf("%q is not a directory", err.Name)
}

// NotAFile represents a file operation invoked on an entry that is not a
// file. This is a programming error in the caller.
type NotAFile struct {
	Name string
}

func (err NotAFile) Error() string {
	return fmt.Sprintf("%q is not a file", err.Name)
}

// IndexOutOfRange represents a child lookup with an invalid index.
type IndexOutOfRange struct {
	Index int
	Count int
}

func (err IndexOutOfRange) Error() string {
	return fmt.Sprintf("child index %d is out of range (%d children)", err.Index, err.Count)
}

// AlbumNotFound represents an album that no longer exists in the external
// library. Listings of sibling subtrees are unaffected.
type AlbumNotFound struct {
	ID string
}

func (err AlbumNotFound) Error() string {
	return fmt.Sprintf("album %q does not exist", err.ID)
}

// AssetUnavailable represents an asset whose data could not be exported,
// either because the export failed or because the data is only available
// remotely.
type AssetUnavailable struct {
	ID string
}

func (err AssetUnavailable) Error() string {
	return fmt.Sprintf("asset %q is not available for export", err.ID)
}

// InvalidConfiguration represents a root configuration identifier that can't
// be used to build a root at all.
type InvalidConfiguration struct {
	Reason string
}

func (err InvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %s", err.Reason)
}

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}
