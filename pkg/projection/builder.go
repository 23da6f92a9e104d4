package projection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/driftloom/photofs/pkg/album"
	"github.com/driftloom/photofs/pkg/entry"
	"github.com/driftloom/photofs/pkg/errors"
	"github.com/driftloom/photofs/pkg/library"
)

const (
	// MarkerDirectoryName is the reserved directory whose presence tells the
	// engine that the folder is healthy.
	MarkerDirectoryName = ".stfolder"

	// markerFileName is the zero-content file inside the marker directory.
	markerFileName = "syncthing-folder-marker"

	// IgnoreFileName is the reserved ignore-rules file at the root.
	IgnoreFileName = ".stignore"

	// reservedPrefix protects the reserved entries from being shadowed by
	// configured folder paths. The check is case-insensitive.
	reservedPrefix = ".st"

	ignoreFileContents = "# Synthesized folder. Ignore rules are managed by the application.\n"
)

// buildRoot constructs the root directory for a configuration: the two
// mandatory reserved entries, plus one album projector grafted at each
// configured path. Construction is deterministic for a given configuration
// value.
//
// Invalid folder entries (empty path, reserved name, missing album ID) are
// skipped with a log message so that one bad entry doesn't take down the
// whole root. A path that conflicts with another configured path is a fatal
// configuration error.
func buildRoot(config Configuration, lib library.Library,
	counter *library.ChangeCounter, clock clockwork.Clock) (*entry.Directory, error) {

	now := clock.Now()
	root := entry.NewDirectory("", now)

	marker := entry.NewDirectory(MarkerDirectoryName, now)
	if err := marker.Add(entry.NewFile(markerFileName, nil, now)); err != nil {
		return nil, err
	}
	if err := root.Add(marker); err != nil {
		return nil, err
	}
	if err := root.Add(entry.NewFile(IgnoreFileName, []byte(ignoreFileContents), now)); err != nil {
		return nil, err
	}

	// Graft in a stable order so that conflicts are reported consistently.
	paths := make([]string, 0, len(config.Folders))
	for path := range config.Folders {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		folder := config.Folders[path]
		if folder.AlbumID == "" {
			log.WithField("path", path).Warn("Folder has no album ID. Skipping it.")
			continue
		}

		segments := splitPath(path)
		if len(segments) == 0 {
			log.WithField("path", path).Warn("Cannot project an album at the folder root. Skipping it.")
			continue
		}
		if strings.HasPrefix(strings.ToLower(segments[0]), reservedPrefix) {
			log.WithField("path", path).Warn("Folder path shadows a reserved entry. Skipping it.")
			continue
		}

		parent := root
		var err error
		for _, segment := range segments[:len(segments)-1] {
			parent, err = parent.EnsureDirectory(segment)
			if err != nil {
				return nil, errors.WithContext(err, fmt.Sprintf("graft %q", path))
			}
		}

		projector := album.NewProjector(
			segments[len(segments)-1], folder.albumConfig(), lib, counter, clock)
		if err := parent.Add(projector); err != nil {
			return nil, errors.WithContext(err, fmt.Sprintf("graft %q", path))
		}
	}

	return root, nil
}

// splitPath splits a configured folder path into its segments, dropping
// empty ones so that leading, trailing, and doubled separators don't produce
// unnamed directories.
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
