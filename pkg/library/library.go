// Package library defines the surface of the external asset store that
// albums are projected from. The real photo library lives outside this
// process; this package only consumes it.
package library

import (
	"time"
)

// Kind is the media kind of an asset.
type Kind int

const (
	// KindImage is a still image. Only images are currently projected into
	// the synthesized tree.
	KindImage Kind = iota

	// KindVideo is a video. Videos are deliberately skipped when projecting
	// albums; see pkg/album.
	KindVideo

	// KindOther is any other media kind.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "other"
	}
}

// Asset is a single media item in the external library.
type Asset interface {
	// ID identifies the asset within the library. It's used for logging and
	// error reporting.
	ID() string

	// FileName returns the name the asset should have when projected as a
	// file.
	FileName() string

	// Kind returns the media kind of the asset.
	Kind() Kind

	// CreationTime returns the capture time of the asset, or the zero time
	// if the library doesn't know it.
	CreationTime() time.Time

	// LocallyAvailable returns whether the asset's data is resident on this
	// device. Exports of remote-only assets are not attempted.
	LocallyAvailable() bool

	// Export synchronously returns the highest-quality representation of
	// the asset's data. It blocks the calling goroutine and is never
	// retried or cancelled by this layer.
	Export() ([]byte, error)
}

// Album is a collection of assets in the external library.
type Album interface {
	ID() string

	// Assets enumerates the album's assets in library order.
	Assets() ([]Asset, error)
}

// Library resolves albums by their identifier.
type Library interface {
	// AlbumByID returns the album with the given identifier, or
	// errors.AlbumNotFound if it doesn't exist.
	AlbumByID(id string) (Album, error)
}
