// Package album materializes a directory subtree from an album in the
// external library, lazily and with staleness-driven re-enumeration.
package album

import (
	"fmt"
	"time"
)

// FolderStructure selects how projected assets are grouped into
// subdirectories.
type FolderStructure int

const (
	// SingleFolder places every asset directly in the album directory.
	SingleFolder FolderStructure = iota

	// ByYear groups assets by capture year ("2024").
	ByYear

	// ByYearMonth groups assets by capture year and month ("2024/05").
	ByYearMonth

	// ByYearMonthDay groups assets by capture year, month, and day
	// ("2024/05/17").
	ByYearMonthDay
)

func (s FolderStructure) String() string {
	switch s {
	case ByYear:
		return "byYear"
	case ByYearMonth:
		return "byYearMonth"
	case ByYearMonthDay:
		return "byYearMonthDay"
	default:
		return "singleFolder"
	}
}

// Subdirectories returns the chain of directory names an asset captured at
// `taken` belongs under. Grouping happens in the album's configured time
// zone; the same capture instant can land in different days (or years) for
// different zones.
func (s FolderStructure) Subdirectories(taken time.Time, loc *time.Location) []string {
	t := taken.In(loc)
	switch s {
	case ByYear:
		return []string{fmt.Sprintf("%04d", t.Year())}
	case ByYearMonth:
		return []string{fmt.Sprintf("%04d", t.Year()), fmt.Sprintf("%02d", int(t.Month()))}
	case ByYearMonthDay:
		return []string{fmt.Sprintf("%04d", t.Year()), fmt.Sprintf("%02d", int(t.Month())), fmt.Sprintf("%02d", t.Day())}
	default:
		return nil
	}
}

// Config describes how one album is projected.
type Config struct {
	// AlbumID identifies the album in the external library. Required.
	AlbumID string

	// Structure selects the subdirectory grouping.
	Structure FolderStructure

	// Location is the time zone used for grouping. Defaults to UTC.
	Location *time.Location
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
