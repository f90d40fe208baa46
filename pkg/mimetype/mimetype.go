package mimetype

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultType is returned for extensions not present in a Table.
const DefaultType = "application/octet-stream"

// Table maps lowercase file extensions (including the dot) to MIME types.
type Table map[string]string

// Default returns the built-in extension table covering the file types an
// embedded device typically serves.
func Default() Table {
	return Table{
		".html":  "text/html",
		".htm":   "text/html",
		".css":   "text/css",
		".js":    "application/javascript",
		".mjs":   "application/javascript",
		".json":  "application/json",
		".xml":   "application/xml",
		".txt":   "text/plain",
		".csv":   "text/csv",
		".png":   "image/png",
		".jpg":   "image/jpeg",
		".jpeg":  "image/jpeg",
		".gif":   "image/gif",
		".svg":   "image/svg+xml",
		".ico":   "image/x-icon",
		".webp":  "image/webp",
		".woff":  "font/woff",
		".woff2": "font/woff2",
		".ttf":   "font/ttf",
		".pdf":   "application/pdf",
		".wasm":  "application/wasm",
		".gz":    "application/gzip",
		".zip":   "application/zip",
	}
}

// Lookup returns the MIME type for the extension (including the dot).
// Lookups are case-insensitive; unrecognized extensions map to DefaultType.
func (t Table) Lookup(ext string) string {
	if mt, ok := t[strings.ToLower(ext)]; ok {
		return mt
	}
	return DefaultType
}

// Merge overlays other onto the table, overwriting existing entries.
func (t Table) Merge(other Table) {
	for ext, mt := range other {
		t[strings.ToLower(ext)] = mt
	}
}

// ParseYAML reads a YAML mapping of extension to MIME type.
//
// Example document:
//
//	.html: text/html
//	.cgi: text/plain
func ParseYAML(r io.Reader) (Table, error) {
	var raw map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	t := make(Table, len(raw))
	for ext, mt := range raw {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		t[strings.ToLower(ext)] = mt
	}
	return t, nil
}
