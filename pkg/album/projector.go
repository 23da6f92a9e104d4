package album

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/driftloom/photofs/pkg/entry"
	"github.com/driftloom/photofs/pkg/errors"
	"github.com/driftloom/photofs/pkg/library"
)

// staleTTL is how long a cached listing stays valid without an external
// change notification.
const staleTTL = time.Hour

// Projector is a directory entry whose children are materialized on demand
// from an album in the external library.
//
// The cached listing is refreshed lazily, on the first directory query after
// it has gone stale. A listing is stale when there is no cache yet, when the
// change counter has advanced past the value seen at the last refresh, or
// when the last refresh is older than staleTTL. The projector's mutex is
// held for the full duration of a refresh, so concurrent listers either wait
// for the in-flight refresh or see a fully formed cache.
type Projector struct {
	name    string
	config  Config
	library library.Library
	counter *library.ChangeCounter
	clock   clockwork.Clock

	mu             sync.Mutex
	children       []entry.Entry
	hasCache       bool
	lastRefreshed  time.Time
	lastSeenChange int64
}

// NewProjector creates a projector for the album described by `config`,
// appearing in its parent directory as `name`.
func NewProjector(name string, config Config, lib library.Library,
	counter *library.ChangeCounter, clock clockwork.Clock) *Projector {

	return &Projector{
		name:    name,
		config:  config,
		library: lib,
		counter: counter,
		clock:   clock,
	}
}

func (p *Projector) Name() string {
	return p.name
}

func (p *Projector) IsDirectory() bool {
	return true
}

// ModifiedTime returns the time of the last successful refresh, or the zero
// time before the first one.
func (p *Projector) ModifiedTime() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRefreshed
}

func (p *Projector) ChildCount() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.refreshIfNeeded(); err != nil {
		return 0, err
	}
	return len(p.children), nil
}

func (p *Projector) Child(i int) (entry.Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.refreshIfNeeded(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(p.children) {
		return nil, errors.IndexOutOfRange{Index: i, Count: len(p.children)}
	}
	return p.children[i], nil
}

func (p *Projector) ByteSize() (int64, error) {
	return 0, errors.NotAFile{Name: p.name}
}

func (p *Projector) ReadAllBytes() ([]byte, error) {
	return nil, errors.NotAFile{Name: p.name}
}

// refreshIfNeeded re-enumerates the album if the cached listing is stale.
// Callers must hold p.mu.
func (p *Projector) refreshIfNeeded() error {
	if !p.needsRefresh() {
		return nil
	}
	return p.refresh()
}

func (p *Projector) needsRefresh() bool {
	if !p.hasCache {
		return true
	}
	if p.lastSeenChange < p.counter.Value() {
		return true
	}
	return p.clock.Now().Sub(p.lastRefreshed) > staleTTL
}

func (p *Projector) refresh() error {
	// Snapshot the counter before enumerating. If a change notification
	// arrives mid-enumeration, the next listing refreshes again rather than
	// serving a listing that may already miss the change.
	seen := p.counter.Value()

	album, err := p.library.AlbumByID(p.config.AlbumID)
	if err != nil {
		return err
	}

	assets, err := album.Assets()
	if err != nil {
		return errors.WithContext(err, "enumerate album")
	}

	transient := entry.NewDirectory(p.name, p.clock.Now())
	loc := p.config.location()
	for _, asset := range assets {
		if asset.Kind() != library.KindImage {
			// Only images are projected. Videos and other kinds are
			// deliberately skipped for now.
			log.WithFields(log.Fields{
				"album": p.config.AlbumID,
				"asset": asset.ID(),
				"kind":  asset.Kind(),
			}).Debug("Skipping non-image asset")
			continue
		}

		parent := transient
		var placeErr error
		for _, dirName := range p.config.Structure.Subdirectories(asset.CreationTime(), loc) {
			parent, placeErr = parent.EnsureDirectory(dirName)
			if placeErr != nil {
				break
			}
		}
		if placeErr != nil {
			log.WithError(placeErr).WithFields(log.Fields{
				"album": p.config.AlbumID,
				"asset": asset.ID(),
			}).Warn("Failed to place asset in the projected tree. Skipping it.")
			continue
		}

		file := newAssetEntry(fileName(asset), asset, p.clock)
		if err := parent.Add(file); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"album": p.config.AlbumID,
				"asset": asset.ID(),
			}).Warn("Two assets map to the same file name. Ignoring the latter asset.")
		}
	}

	p.children = transient.Children()
	p.hasCache = true
	p.lastSeenChange = seen
	p.lastRefreshed = p.clock.Now()
	return nil
}

// fileName translates an asset's name into a single path segment. Separators
// can't appear in an entry name.
func fileName(asset library.Asset) string {
	return strings.ReplaceAll(asset.FileName(), "/", "_")
}
