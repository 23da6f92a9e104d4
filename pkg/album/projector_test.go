package album

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/driftloom/photofs/pkg/entry"
	"github.com/driftloom/photofs/pkg/errors"
	"github.com/driftloom/photofs/pkg/library"
)

type mockAsset struct {
	id        string
	name      string
	kind      library.Kind
	taken     time.Time
	remote    bool
	data      []byte
	exportErr error

	exports int
}

func (a *mockAsset) ID() string              { return a.id }
func (a *mockAsset) FileName() string        { return a.name }
func (a *mockAsset) Kind() library.Kind      { return a.kind }
func (a *mockAsset) CreationTime() time.Time { return a.taken }
func (a *mockAsset) LocallyAvailable() bool  { return !a.remote }

func (a *mockAsset) Export() ([]byte, error) {
	a.exports++
	if a.exportErr != nil {
		return nil, a.exportErr
	}
	return a.data, nil
}

type mockAlbum struct {
	id     string
	assets []library.Asset

	enumerations int
}

func (a *mockAlbum) ID() string { return a.id }

func (a *mockAlbum) Assets() ([]library.Asset, error) {
	a.enumerations++
	return a.assets, nil
}

type mockLibrary struct {
	albums map[string]*mockAlbum
}

func (l *mockLibrary) AlbumByID(id string) (library.Album, error) {
	album, ok := l.albums[id]
	if !ok {
		return nil, errors.AlbumNotFound{ID: id}
	}
	return album, nil
}

func image(id, name string, taken time.Time) *mockAsset {
	return &mockAsset{id: id, name: name, kind: library.KindImage, taken: taken, data: []byte(id)}
}

func newTestProjector(album *mockAlbum, config Config,
	counter *library.ChangeCounter, clock clockwork.Clock) *Projector {

	lib := &mockLibrary{albums: map[string]*mockAlbum{album.id: album}}
	config.AlbumID = album.id
	return NewProjector("album", config, lib, counter, clock)
}

func childNames(t *testing.T, e entry.Entry) []string {
	count, err := e.ChildCount()
	assert.NoError(t, err)

	var names []string
	for i := 0; i < count; i++ {
		child, err := e.Child(i)
		assert.NoError(t, err)
		names = append(names, child.Name())
	}
	return names
}

var taken = time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)

func TestProjectorListsOnlyImages(t *testing.T) {
	album := &mockAlbum{id: "abc", assets: []library.Asset{
		image("1", "beach.jpg", taken),
		image("2", "alps.jpg", taken),
		&mockAsset{id: "3", name: "clip.mov", kind: library.KindVideo, taken: taken},
		&mockAsset{id: "4", name: "notes.txt", kind: library.KindOther, taken: taken},
	}}

	projector := newTestProjector(album, Config{}, &library.ChangeCounter{}, clockwork.NewFakeClock())
	assert.Equal(t, []string{"alps.jpg", "beach.jpg"}, childNames(t, projector))
	assert.Equal(t, 1, album.enumerations)
}

func TestProjectorCachesListing(t *testing.T) {
	album := &mockAlbum{id: "abc", assets: []library.Asset{image("1", "a.jpg", taken)}}
	projector := newTestProjector(album, Config{}, &library.ChangeCounter{}, clockwork.NewFakeClock())

	for i := 0; i < 3; i++ {
		count, err := projector.ChildCount()
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	}
	assert.Equal(t, 1, album.enumerations)
}

func TestProjectorChangeCounterInvalidates(t *testing.T) {
	counter := &library.ChangeCounter{}
	album := &mockAlbum{id: "abc", assets: []library.Asset{image("1", "a.jpg", taken)}}
	projector := newTestProjector(album, Config{}, counter, clockwork.NewFakeClock())

	assert.Equal(t, []string{"a.jpg"}, childNames(t, projector))
	assert.Equal(t, 1, album.enumerations)

	// The library changed: the next listing re-enumerates and picks up the
	// new asset.
	album.assets = append(album.assets, image("2", "b.jpg", taken))
	counter.Bump()

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, childNames(t, projector))
	assert.Equal(t, 2, album.enumerations)
}

func TestProjectorTTLInvalidates(t *testing.T) {
	clock := clockwork.NewFakeClock()
	album := &mockAlbum{id: "abc", assets: []library.Asset{image("1", "a.jpg", taken)}}
	projector := newTestProjector(album, Config{}, &library.ChangeCounter{}, clock)

	childNames(t, projector)
	assert.Equal(t, 1, album.enumerations)

	// Half an hour later the cache is still fresh.
	clock.Advance(30 * time.Minute)
	childNames(t, projector)
	assert.Equal(t, 1, album.enumerations)

	// Past the one hour TTL it is stale.
	clock.Advance(31 * time.Minute)
	childNames(t, projector)
	assert.Equal(t, 2, album.enumerations)
}

func TestProjectorAlbumNotFound(t *testing.T) {
	lib := &mockLibrary{albums: map[string]*mockAlbum{}}
	projector := NewProjector("album", Config{AlbumID: "gone"}, lib,
		&library.ChangeCounter{}, clockwork.NewFakeClock())

	_, err := projector.ChildCount()
	assert.Equal(t, errors.AlbumNotFound{ID: "gone"}, err)

	// A failed refresh isn't cached; the next listing retries.
	_, err = projector.ChildCount()
	assert.Equal(t, errors.AlbumNotFound{ID: "gone"}, err)
}

func TestProjectorGroupsByDate(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	album := &mockAlbum{id: "abc", assets: []library.Asset{
		// 23:30 UTC on May 17th is already May 18th in UTC+2.
		image("1", "late.jpg", time.Date(2024, 5, 17, 23, 30, 0, 0, time.UTC)),
		image("2", "early.jpg", time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)),
		image("3", "newyear.jpg", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
	}}

	projector := newTestProjector(album, Config{Structure: ByYearMonthDay, Location: zone},
		&library.ChangeCounter{}, clockwork.NewFakeClock())
	assert.Equal(t, []string{"2023", "2024"}, childNames(t, projector))

	year2024, err := projector.Child(1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"05"}, childNames(t, year2024))

	month, err := year2024.Child(0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"17", "18"}, childNames(t, month))

	day17, err := month.Child(0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"early.jpg"}, childNames(t, day17))

	day18, err := month.Child(1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"late.jpg"}, childNames(t, day18))
}

func TestProjectorDuplicateFileNames(t *testing.T) {
	album := &mockAlbum{id: "abc", assets: []library.Asset{
		image("1", "same.jpg", taken),
		image("2", "same.jpg", taken),
	}}

	projector := newTestProjector(album, Config{}, &library.ChangeCounter{}, clockwork.NewFakeClock())
	assert.Equal(t, []string{"same.jpg"}, childNames(t, projector))
}

func TestProjectorModifiedTime(t *testing.T) {
	clock := clockwork.NewFakeClock()
	album := &mockAlbum{id: "abc"}
	projector := newTestProjector(album, Config{}, &library.ChangeCounter{}, clock)

	assert.True(t, projector.ModifiedTime().IsZero())

	childNames(t, projector)
	assert.Equal(t, clock.Now(), projector.ModifiedTime())
}

func TestProjectorCapabilityErrors(t *testing.T) {
	album := &mockAlbum{id: "abc"}
	projector := newTestProjector(album, Config{}, &library.ChangeCounter{}, clockwork.NewFakeClock())

	_, err := projector.ByteSize()
	assert.Equal(t, errors.NotAFile{Name: "album"}, err)
	_, err = projector.ReadAllBytes()
	assert.Equal(t, errors.NotAFile{Name: "album"}, err)

	_, err = projector.Child(0)
	assert.Equal(t, errors.IndexOutOfRange{Index: 0, Count: 0}, err)
}

func TestProjectorConcurrentListings(t *testing.T) {
	album := &mockAlbum{id: "abc", assets: []library.Asset{image("1", "a.jpg", taken)}}
	projector := newTestProjector(album, Config{}, &library.ChangeCounter{}, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := projector.ChildCount()
			assert.NoError(t, err)
			assert.Equal(t, 1, count)
		}()
	}
	wg.Wait()

	// Refreshes are serialized per projector, so the concurrent listings
	// share one enumeration.
	assert.Equal(t, 1, album.enumerations)
}
