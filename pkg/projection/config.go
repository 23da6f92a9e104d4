// Package projection turns an opaque configuration string into the root of a
// synthesized directory tree that the synchronization engine can walk like
// an ordinary folder.
package projection

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/driftloom/photofs/pkg/album"
)

// Configuration maps folder paths inside the synthesized root to the albums
// projected at those paths. It's carried on the wire as a UTF-8 JSON object.
type Configuration struct {
	Folders map[string]FolderConfiguration `json:"folders,omitempty"`
}

// FolderConfiguration describes the album projected at one path.
type FolderConfiguration struct {
	AlbumID         string `json:"albumID"`
	FolderStructure string `json:"folderStructure,omitempty"`
	TimeZone        string `json:"timeZone,omitempty"`
}

// Decode parses the opaque configuration identifier. Malformed input
// degrades to an empty configuration: an empty (but healthy) root is more
// useful to the engine than no root at all.
func Decode(configID string) Configuration {
	var config Configuration
	if err := json.Unmarshal([]byte(configID), &config); err != nil {
		log.WithError(err).Warn("Failed to parse the projection configuration. Treating it as empty.")
		return Configuration{}
	}
	return config
}

// Encode serializes the configuration into the opaque identifier form.
func (c Configuration) Encode() (string, error) {
	encoded, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// albumConfig resolves the wire-format tags into the album package's config.
// Unknown tags default permissively rather than failing the folder.
func (f FolderConfiguration) albumConfig() album.Config {
	return album.Config{
		AlbumID:   f.AlbumID,
		Structure: parseFolderStructure(f.FolderStructure),
		Location:  parseTimeZone(f.TimeZone),
	}
}

func parseFolderStructure(tag string) album.FolderStructure {
	switch tag {
	case "", "singleFolder":
		return album.SingleFolder
	case "byYear":
		return album.ByYear
	case "byYearMonth":
		return album.ByYearMonth
	case "byYearMonthDay":
		return album.ByYearMonthDay
	default:
		log.WithField("folderStructure", tag).Warn(
			"Unknown folder structure. Falling back to a single folder.")
		return album.SingleFolder
	}
}

func parseTimeZone(tag string) *time.Location {
	switch tag {
	case "", "gmt":
		return time.UTC
	case "deviceLocal":
		return time.Local
	default:
		loc, err := time.LoadLocation(tag)
		if err != nil {
			log.WithError(err).WithField("timeZone", tag).Warn(
				"Unknown time zone. Falling back to GMT.")
			return time.UTC
		}
		return loc
	}
}
