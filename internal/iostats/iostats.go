// Package iostats exports table statistics as JSON files.
package iostats

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/evsiren/evset/pkg/stats"
	"github.com/gnames/gnfmt"
)

// Path returns the statistics file of a table: <dir>/<stem>_stats.json.
func Path(tablePath string) string {
	dir := filepath.Dir(tablePath)
	base := filepath.Base(tablePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_stats.json")
}

// Encode renders statistics as indented JSON.
func Encode(s stats.Stats) ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: true}
	return enc.Encode(s)
}

// Write saves statistics beside their table and returns the file path.
func Write(tablePath string, s stats.Stats) (string, error) {
	path := Path(tablePath)
	data, err := Encode(s)
	if err != nil {
		return "", WriteFileError(path, err)
	}
	if err = os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", WriteFileError(path, err)
	}
	return path, nil
}
