// Package view provides lazy, memoizing HTML view rendering with
// {dotted.key} placeholder substitution.
//
// Views are plain HTML files under a filesystem root. A view is resolved by
// name on first use and cached for the process lifetime — including misses,
// so a name that has no file is probed only once. The cache is safe for
// concurrent use and concurrent first-loads of the same view are collapsed.
//
// # Placeholders
//
// Template text may contain tokens of the form {dotted.key.path}. Each token
// is resolved by walking the dotted path through nested string-keyed
// mappings (map[string]any or map[string]string). Unresolvable tokens are
// left as literal text, so templates degrade silently when data is partial:
//
//	r := view.New(os.DirFS("views"))
//	out, ok := r.Render("widget", map[string]any{
//	    "user": map[string]any{"name": "Ann"},
//	})
//	// "Hello {user.name}!" renders as "Hello Ann!"
package view
