package geom

import (
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the curve file extensions Load understands.
var Extensions = []string{".csv", ".json", ".geojson", ".wkt", ".kml", ".txt"}

// Supported reports whether Load understands the file's extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads a curve file, picking the format from its extension.
func Load(path string) (Curve, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return LoadCSV(path)
	case ".json", ".geojson":
		return LoadJSON(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return Curve{}, err
		}
		return ParseText(string(data))
	default:
		return Curve{}, &UnsupportedError{Ext: ext}
	}
}

// UnsupportedError is returned by Load for unknown extensions.
type UnsupportedError struct {
	Ext string
}

func (e *UnsupportedError) Error() string { return "unsupported file: " + e.Ext }
