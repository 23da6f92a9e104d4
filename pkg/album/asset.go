package album

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/driftloom/photofs/pkg/entry"
	"github.com/driftloom/photofs/pkg/errors"
	"github.com/driftloom/photofs/pkg/library"
)

// slowExportThreshold is how long an export may take before we log a
// diagnostic warning. The export still completes; nothing is cancelled.
const slowExportThreshold = time.Second

// assetEntry is a file entry whose contents are exported on demand from a
// single asset in the external library.
type assetEntry struct {
	name  string
	asset library.Asset
	clock clockwork.Clock

	mu    sync.Mutex
	size  int64
	sized bool
}

func newAssetEntry(name string, asset library.Asset, clock clockwork.Clock) *assetEntry {
	return &assetEntry{name: name, asset: asset, clock: clock}
}

func (e *assetEntry) Name() string {
	return e.name
}

func (e *assetEntry) IsDirectory() bool {
	return false
}

// ModifiedTime returns the asset's capture time, or the epoch if the library
// doesn't know it.
func (e *assetEntry) ModifiedTime() time.Time {
	created := e.asset.CreationTime()
	if created.IsZero() {
		return time.Unix(0, 0)
	}
	return created
}

func (e *assetEntry) ChildCount() (int, error) {
	return 0, errors.NotADirectory{Name: e.name}
}

func (e *assetEntry) Child(i int) (entry.Entry, error) {
	return nil, errors.NotADirectory{Name: e.name}
}

// ByteSize exports the asset once to learn its size, then serves the
// memoized value.
func (e *assetEntry) ByteSize() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sized {
		return e.size, nil
	}

	data, err := e.export()
	if err != nil {
		return 0, err
	}
	e.size = int64(len(data))
	e.sized = true
	return e.size, nil
}

// ReadAllBytes synchronously exports the asset's data. The call blocks for
// the full duration of the export.
func (e *assetEntry) ReadAllBytes() ([]byte, error) {
	data, err := e.export()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.size = int64(len(data))
	e.sized = true
	e.mu.Unlock()
	return data, nil
}

func (e *assetEntry) export() ([]byte, error) {
	if !e.asset.LocallyAvailable() {
		log.WithFields(log.Fields{
			"asset": e.asset.ID(),
			"name":  e.name,
		}).Warn("Asset data is only available remotely. Not exporting it.")
		return nil, errors.AssetUnavailable{ID: e.asset.ID()}
	}

	start := e.clock.Now()
	data, err := e.asset.Export()
	if err != nil {
		log.WithError(err).WithField("asset", e.asset.ID()).Warn("Asset export failed")
		return nil, errors.AssetUnavailable{ID: e.asset.ID()}
	}

	if elapsed := e.clock.Now().Sub(start); elapsed > slowExportThreshold {
		log.WithFields(log.Fields{
			"asset":   e.asset.ID(),
			"elapsed": elapsed,
			"bytes":   len(data),
		}).Warn("Asset export was slow")
	}
	return data, nil
}
