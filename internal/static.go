package internal

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrymomot/ember/pkg/mimetype"
)

// DefaultDocument is served when a static mount receives its bare prefix.
const DefaultDocument = "/index.html"

// staticConfig holds static mount configuration collected from options.
type staticConfig struct {
	fsys       fs.FS
	pattern    string
	defaultDoc string
}

// StaticOption configures a static file mount.
type StaticOption func(*staticConfig)

// WithDefaultDocument sets the document served for the mount's root path.
// The path is normalized to start with "/". Defaults to "/index.html".
func WithDefaultDocument(doc string) StaticOption {
	return func(cfg *staticConfig) {
		if doc == "" {
			return
		}
		if !strings.HasPrefix(doc, "/") {
			doc = "/" + doc
		}
		cfg.defaultDoc = doc
	}
}

// staticHandler builds the route handler for a static mount. For each
// request it resolves the URL path below the mount to a file under the
// mount's filesystem, preferring a gzip-precompressed sibling (<path>.gz)
// over the plain file. When neither exists the handler yields the
// pass-through outcome so later routes (and eventually the not-found path)
// can take over.
func staticHandler(cfg staticConfig, mimes mimetype.Table) HandlerFunc {
	stripPrefix := strings.TrimSuffix(cfg.pattern, "/")

	return func(c Context) (Result, error) {
		rel, ok := staticRelPath(c.Path(), stripPrefix, cfg.defaultDoc)
		if !ok {
			return Next()
		}

		// Prefer the precompressed sibling, fall back to the plain file.
		name, gzipped := rel+".gz", true
		if !isRegularFile(cfg.fsys, name) {
			name, gzipped = rel, false
			if !isRegularFile(cfg.fsys, name) {
				return Next()
			}
		}

		f, err := cfg.fsys.Open(name)
		if err != nil {
			return Result{}, ErrInternal("failed to open static file", WithError(err))
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return Result{}, ErrInternal("failed to stat static file", WithError(err))
		}

		h := c.Response().Header()
		if gzipped {
			h.Set("Content-Encoding", "gzip")
		}
		h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
		// MIME type is keyed on the original (non-.gz) path's extension.
		h.Set("Content-Type", mimes.Lookup(path.Ext(rel)))

		c.ResponseWriter().WriteHeader(http.StatusOK)
		if _, err := io.Copy(c.Response(), f); err != nil {
			return Result{}, ErrInternal("failed to stream static file", WithError(err))
		}
		return Done()
	}
}

// staticRelPath converts a request path into a sanitized path relative to
// the mount's filesystem root. It rejects traversal and absolute-path
// tricks so static serving cannot escape the mount.
func staticRelPath(urlPath, stripPrefix, defaultDoc string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, stripPrefix)
	if rel == "" || rel == "/" {
		rel = defaultDoc
	}
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "", false
	}

	// Reject NUL early (can appear via %00).
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}

	// Reject platform-dependent separators.
	if strings.Contains(rel, `\`) {
		return "", false
	}

	// Reject dot-segments before cleaning to avoid "cleaning away"
	// traversal attempts and changing the meaning of the request path.
	for seg := range strings.SplitSeq(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	return clean, true
}

// isRegularFile reports whether name exists in fsys as a regular file.
func isRegularFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}
