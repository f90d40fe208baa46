package view

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultExtension is appended to view names when resolving files.
const DefaultExtension = ".html"

// entry is a memoized lookup result. Misses are cached too (present=false)
// so a view that does not exist is probed on the filesystem only once.
type entry struct {
	content string
	present bool
}

// Renderer lazily loads HTML views from a filesystem root and substitutes
// {dotted.key} placeholders. Views are memoized for the process lifetime:
// the first render of a name reads the file, every later render reuses the
// cached bytes even if the file changes on disk.
//
// Renderer is safe for concurrent use. Concurrent first-renders of the same
// view are collapsed with singleflight; the cache only ever holds complete
// values.
type Renderer struct {
	fsys fs.FS
	ext  string

	cache sync.Map // normalized name -> entry
	group singleflight.Group
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithExtension sets the file extension appended to view names.
// Defaults to ".html".
func WithExtension(ext string) Option {
	return func(r *Renderer) {
		if ext != "" {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			r.ext = ext
		}
	}
}

// New creates a Renderer over the given views root.
func New(fsys fs.FS, opts ...Option) *Renderer {
	r := &Renderer{
		fsys: fsys,
		ext:  DefaultExtension,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// normalize converts a request-derived name into a cache key and a file
// path relative to the views root. An empty or root name maps to "index".
func normalize(name string) (string, bool) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "index"
	}

	clean := path.Clean(name)
	// Reject names that escape the views root.
	if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", false
	}
	return clean, true
}

// Lookup returns the raw template content for the view and whether the view
// exists. The result is cached either way.
func (r *Renderer) Lookup(name string) (string, bool) {
	key, ok := normalize(name)
	if !ok {
		return "", false
	}

	if v, ok := r.cache.Load(key); ok {
		e := v.(entry)
		return e.content, e.present
	}

	v, _, _ := r.group.Do(key, func() (any, error) {
		// Re-check under the flight: a previous call may have stored
		// the entry between Load and Do.
		if v, ok := r.cache.Load(key); ok {
			return v, nil
		}

		var e entry
		if data, err := fs.ReadFile(r.fsys, key+r.ext); err == nil {
			e = entry{content: string(data), present: true}
		}
		r.cache.Store(key, e)
		return e, nil
	})

	e := v.(entry)
	return e.content, e.present
}

// Render looks up the view and substitutes placeholders with values from
// data. The second return value reports whether the view exists; a missing
// view renders nothing and is not an error.
func (r *Renderer) Render(name string, data any) (string, bool) {
	content, ok := r.Lookup(name)
	if !ok {
		return "", false
	}
	return Expand(content, data), true
}

// Expand substitutes {dotted.key.path} tokens in template text with values
// resolved from data. Each token's dotted path is walked field by field
// through nested string-keyed mappings; a path that cannot be resolved
// leaves the literal token text unchanged, so partial templates degrade
// silently instead of failing.
//
// A brace pair counts as a token only when its interior looks like a dotted
// key. Anything else (inline CSS/JS blocks, empty braces) is passed through
// byte for byte, and scanning resumes right after the opening brace so a
// literal "{" never swallows a token that follows it.
func Expand(template string, data any) string {
	var b strings.Builder
	b.Grow(len(template))

	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			b.WriteString(template)
			return b.String()
		}
		b.WriteString(template[:open])
		template = template[open:]

		closing := strings.IndexByte(template, '}')
		if closing < 0 {
			b.WriteString(template)
			return b.String()
		}

		key := template[1:closing]
		if !isDottedKey(key) {
			// Literal brace; emit it and keep scanning from the next byte.
			b.WriteByte('{')
			template = template[1:]
			continue
		}

		if v, ok := resolve(data, key); ok {
			b.WriteString(fmt.Sprint(v))
		} else {
			b.WriteString(template[:closing+1])
		}
		template = template[closing+1:]
	}
}

// isDottedKey reports whether s is a plausible placeholder path: one or more
// letters, digits, underscores or dots.
func isDottedKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_':
		default:
			return false
		}
	}
	return true
}

// resolve walks the dotted path through nested string-keyed mappings.
func resolve(data any, dotted string) (any, bool) {
	if dotted == "" {
		return nil, false
	}

	current := data
	for _, seg := range strings.Split(dotted, ".") {
		switch m := current.(type) {
		case map[string]any:
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			current = v
		case map[string]string:
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			current = v
		default:
			return nil, false
		}
	}
	return current, true
}
