package library

import (
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/driftloom/photofs/pkg/errors"
)

func TestChangeCounter(t *testing.T) {
	counter := &ChangeCounter{}
	assert.Equal(t, int64(0), counter.Value())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				counter.Bump()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(2000), counter.Value())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "video", KindVideo.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestDirectoryLibraryAlbums(t *testing.T) {
	fs = afero.NewMemMapFs()
	modTime := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

	files := []string{
		"/photos/summer/beach.jpg",
		"/photos/summer/alps.HEIC",
		"/photos/summer/clip.mov",
		"/photos/summer/notes.txt",
		"/photos/other-album/pic.png",
	}
	for _, path := range files {
		assert.NoError(t, afero.WriteFile(fs, path, []byte("data-"+path), 0644))
		assert.NoError(t, fs.Chtimes(path, modTime, modTime))
	}
	// Nested directories aren't assets.
	assert.NoError(t, fs.MkdirAll("/photos/summer/nested", 0755))

	lib := NewDirectoryLibrary("/photos")
	album, err := lib.AlbumByID("summer")
	assert.NoError(t, err)
	assert.Equal(t, "summer", album.ID())

	assets, err := album.Assets()
	assert.NoError(t, err)
	assert.Len(t, assets, 4)

	kinds := map[string]Kind{}
	for _, asset := range assets {
		kinds[asset.FileName()] = asset.Kind()
		assert.True(t, asset.LocallyAvailable())
		assert.Equal(t, modTime, asset.CreationTime())
	}
	assert.Equal(t, map[string]Kind{
		"beach.jpg": KindImage,
		"alps.HEIC": KindImage,
		"clip.mov":  KindVideo,
		"notes.txt": KindOther,
	}, kinds)
}

func TestDirectoryLibraryExport(t *testing.T) {
	fs = afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/photos/summer/beach.jpg", []byte("beach bytes"), 0644))

	lib := NewDirectoryLibrary("/photos")
	album, err := lib.AlbumByID("summer")
	assert.NoError(t, err)

	assets, err := album.Assets()
	assert.NoError(t, err)
	assert.Len(t, assets, 1)

	data, err := assets[0].Export()
	assert.NoError(t, err)
	assert.Equal(t, []byte("beach bytes"), data)
}

func TestDirectoryLibraryAlbumNotFound(t *testing.T) {
	fs = afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/photos/file-not-album", nil, 0644))

	lib := NewDirectoryLibrary("/photos")

	_, err := lib.AlbumByID("missing")
	assert.Equal(t, errors.AlbumNotFound{ID: "missing"}, err)

	// A plain file isn't an album either.
	_, err = lib.AlbumByID("file-not-album")
	assert.Equal(t, errors.AlbumNotFound{ID: "file-not-album"}, err)
}
