package entry

import (
	"fmt"
	"sort"
	"time"

	"github.com/driftloom/photofs/pkg/errors"
)

// Directory is a directory entry with a fixed set of children. It's used for
// the static skeleton of the projected tree (markers, intermediate
// directories) and for the transient trees built during album refreshes.
//
// Directories are mutated only while their tree is being built, by a single
// goroutine. Once a tree has been handed to the engine it is read-only.
type Directory struct {
	base
	children []Entry
}

// NewDirectory creates an empty directory.
func NewDirectory(name string, modTime time.Time) *Directory {
	return &Directory{base: base{name: name, modTime: modTime}}
}

func (d *Directory) IsDirectory() bool {
	return true
}

func (d *Directory) ChildCount() (int, error) {
	return len(d.children), nil
}

func (d *Directory) Child(i int) (Entry, error) {
	if i < 0 || i >= len(d.children) {
		return nil, errors.IndexOutOfRange{Index: i, Count: len(d.children)}
	}
	return d.children[i], nil
}

// ChildNamed returns the child with the given name, if any.
func (d *Directory) ChildNamed(name string) (Entry, bool) {
	i := sort.Search(len(d.children), func(i int) bool {
		return d.children[i].Name() >= name
	})
	if i < len(d.children) && d.children[i].Name() == name {
		return d.children[i], true
	}
	return nil, false
}

// Children returns the directory's children, ordered by name.
func (d *Directory) Children() []Entry {
	childrenCopy := make([]Entry, len(d.children))
	copy(childrenCopy, d.children)
	return childrenCopy
}

// Add inserts a child, keeping the children ordered by name. Adding a second
// child with the same name is an error.
func (d *Directory) Add(child Entry) error {
	i := sort.Search(len(d.children), func(i int) bool {
		return d.children[i].Name() >= child.Name()
	})
	if i < len(d.children) && d.children[i].Name() == child.Name() {
		return errors.New(fmt.Sprintf("duplicate entry %q in %q", child.Name(), d.name))
	}

	d.children = append(d.children, nil)
	copy(d.children[i+1:], d.children[i:])
	d.children[i] = child
	return nil
}

// EnsureDirectory returns the subdirectory with the given name, creating it
// if it doesn't exist. If a non-directory child already has the name, the
// tree being built conflicts with itself and EnsureDirectory fails with
// errors.NotADirectory.
func (d *Directory) EnsureDirectory(name string) (*Directory, error) {
	if existing, ok := d.ChildNamed(name); ok {
		if sub, ok := existing.(*Directory); ok {
			return sub, nil
		}
		return nil, errors.NotADirectory{Name: name}
	}

	sub := NewDirectory(name, d.modTime)
	if err := d.Add(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// File is a file entry with fixed contents, used for the reserved marker and
// ignore entries of the static skeleton.
type File struct {
	base
	contents []byte
}

// NewFile creates a file entry with the given contents.
func NewFile(name string, contents []byte, modTime time.Time) *File {
	return &File{base: base{name: name, modTime: modTime}, contents: contents}
}

func (f *File) IsDirectory() bool {
	return false
}

func (f *File) ByteSize() (int64, error) {
	return int64(len(f.contents)), nil
}

func (f *File) ReadAllBytes() ([]byte, error) {
	return f.contents, nil
}
