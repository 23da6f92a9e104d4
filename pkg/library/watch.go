package library

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/driftloom/photofs/pkg/errors"
)

// Watch watches a directory-backed library for changes and bumps `counter`
// whenever anything under `root` changes. It also sends an event on the
// returned channel so that callers can react to changes (e.g. reprint a
// tree). Closing the returned closer stops the watch.
//
// This stands in for the change-notification subscription the real photo
// library provides: projectors never talk to the watcher, they only read the
// counter.
func Watch(root string, counter *ChangeCounter) (chan struct{}, *fsnotify.Watcher, error) {
	pathsToWatch, err := getPathsToWatch(root)
	if err != nil {
		return nil, nil, errors.WithContext(err, "get paths")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, errors.WithContext(err, "create watcher")
	}

	for _, path := range pathsToWatch {
		if err := watcher.Add(path); err != nil {
			// Close the watcher so that we release the file handlers for the
			// previously added paths.
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("Failed to close library watcher")
			}

			return nil, nil, errors.WithContext(err, fmt.Sprintf("watch %q", path))
		}
	}
	return combineUpdates(watcher.Events, counter), watcher, nil
}

func combineUpdates(updates <-chan fsnotify.Event, counter *ChangeCounter) chan struct{} {
	combined := make(chan struct{}, 1)
	go func() {
		for range updates {
			counter.Bump()
			select {
			case combined <- struct{}{}:
			default:
			}
		}
	}()
	return combined
}

func getPathsToWatch(root string) (paths []string, err error) {
	fi, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: root}
		}
		return nil, errors.WithContext(err, "stat")
	}
	if !fi.IsDir() {
		return nil, errors.NotADirectory{Name: root}
	}

	// fsnotify doesn't watch directories recursively, so walk the library
	// and watch every directory within it.
	err = afero.Walk(fs, root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return errors.WithContext(err, "walk error")
		}
		if fi.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
