package sources

import (
	"path/filepath"
	"strings"
)

const (
	// Identifier of CSV sources, optionally compressed.
	FormatCSV = "csv"

	// Identifier of MaxMind MMDB city databases.
	FormatMMDB = "mmdb"
)

// DetectFormat picks a source format by file extension.
func DetectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".mmdb") {
		return FormatMMDB
	}

	return FormatCSV
}
