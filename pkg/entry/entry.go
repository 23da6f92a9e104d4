// Package entry defines the node type of the projected filesystem tree.
//
// The synchronization engine only ever sees the Entry interface. Directory
// operations on files and file operations on directories fail with typed
// errors rather than being absent from the interface, so that every backing
// implementation (static entries, album projections) exposes the exact same
// capability set.
package entry

import (
	"time"

	"github.com/driftloom/photofs/pkg/errors"
)

// Entry is a node in the projected tree, either a file or a directory. The
// projection is read-only from the engine's perspective; there are no write
// operations.
type Entry interface {
	// Name returns the name of the entry within its parent directory.
	Name() string

	// IsDirectory returns whether the entry is a directory.
	IsDirectory() bool

	// ModifiedTime returns the modification time of the entry.
	ModifiedTime() time.Time

	// ChildCount returns the number of children of a directory. It fails
	// with errors.NotADirectory on file entries.
	ChildCount() (int, error)

	// Child returns the child at the given index. It fails with
	// errors.NotADirectory on file entries and errors.IndexOutOfRange on
	// invalid indices. Children are ordered by name, ascending.
	Child(i int) (Entry, error)

	// ByteSize returns the size of a file's contents. It fails with
	// errors.NotAFile on directories.
	ByteSize() (int64, error)

	// ReadAllBytes returns the full contents of a file. It fails with
	// errors.NotAFile on directories.
	ReadAllBytes() ([]byte, error)
}

// base provides the failing defaults for every capability. Each variant
// embeds it and overrides only the operations it actually supports.
type base struct {
	name    string
	modTime time.Time
}

func (b base) Name() string {
	return b.name
}

func (b base) ModifiedTime() time.Time {
	return b.modTime
}

func (b base) ChildCount() (int, error) {
	return 0, errors.NotADirectory{Name: b.name}
}

func (b base) Child(i int) (Entry, error) {
	return nil, errors.NotADirectory{Name: b.name}
}

func (b base) ByteSize() (int64, error) {
	return 0, errors.NotAFile{Name: b.name}
}

func (b base) ReadAllBytes() ([]byte, error) {
	return nil, errors.NotAFile{Name: b.name}
}
