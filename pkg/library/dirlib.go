package library

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/driftloom/photofs/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// imageExtensions are the file extensions treated as still images by the
// directory-backed library.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".heic": true, ".heif": true, ".tif": true, ".tiff": true,
	".webp": true, ".bmp": true, ".dng": true, ".raw": true,
}

var videoExtensions = map[string]bool{
	".mov": true, ".mp4": true, ".m4v": true, ".avi": true, ".mkv": true,
}

// DirectoryLibrary is a Library backed by a plain directory: each immediate
// subdirectory is one album, and each regular file inside an album directory
// is one asset. It lets the projection layer run against a folder of photos
// when the device's real photo library isn't available, and doubles as a
// fixture for tests and the CLI.
type DirectoryLibrary struct {
	root string
}

// NewDirectoryLibrary creates a library rooted at the given directory.
func NewDirectoryLibrary(root string) *DirectoryLibrary {
	return &DirectoryLibrary{root: root}
}

// AlbumByID resolves the album stored at <root>/<id>.
func (l *DirectoryLibrary) AlbumByID(id string) (Album, error) {
	path := filepath.Join(l.root, id)
	fi, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AlbumNotFound{ID: id}
		}
		return nil, errors.WithContext(err, "stat album directory")
	}
	if !fi.IsDir() {
		return nil, errors.AlbumNotFound{ID: id}
	}
	return &directoryAlbum{id: id, path: path}, nil
}

type directoryAlbum struct {
	id   string
	path string
}

func (a *directoryAlbum) ID() string {
	return a.id
}

func (a *directoryAlbum) Assets() ([]Asset, error) {
	infos, err := afero.ReadDir(fs, a.path)
	if err != nil {
		return nil, errors.WithContext(err, "read album directory")
	}

	var assets []Asset
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		assets = append(assets, &fileAsset{
			path: filepath.Join(a.path, fi.Name()),
			info: fi,
		})
	}
	return assets, nil
}

type fileAsset struct {
	path string
	info os.FileInfo
}

func (f *fileAsset) ID() string {
	return f.path
}

func (f *fileAsset) FileName() string {
	return f.info.Name()
}

func (f *fileAsset) Kind() Kind {
	ext := strings.ToLower(filepath.Ext(f.info.Name()))
	switch {
	case imageExtensions[ext]:
		return KindImage
	case videoExtensions[ext]:
		return KindVideo
	default:
		return KindOther
	}
}

func (f *fileAsset) CreationTime() time.Time {
	return f.info.ModTime()
}

func (f *fileAsset) LocallyAvailable() bool {
	return true
}

func (f *fileAsset) Export() ([]byte, error) {
	data, err := afero.ReadFile(fs, f.path)
	if err != nil {
		return nil, errors.WithContext(err, "read asset file")
	}
	return data, nil
}
