package internal

import (
	"net/http"
	"testing"
)

func noop(c Context) (Result, error) {
	return Done()
}

func TestRouteTable_RegisterNormalization(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		exactPath  string
		prefixPath string
	}{
		{"root", "/", "/", "/"},
		{"no trailing slash", "/foo", "/foo", "/foo/"},
		{"trailing slash", "/foo/", "/foo", "/foo/"},
		{"nested", "/api/devices", "/api/devices", "/api/devices/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table routeTable
			table.register("", tt.pattern, true, noop)

			rt := table.routes[0]
			if rt.exactPath != tt.exactPath {
				t.Errorf("exactPath = %q, want %q", rt.exactPath, tt.exactPath)
			}
			if rt.prefixPath != tt.prefixPath {
				t.Errorf("prefixPath = %q, want %q", rt.prefixPath, tt.prefixPath)
			}
		})
	}
}

func TestRouteTable_ExactMatch(t *testing.T) {
	var table routeTable
	table.register(http.MethodGet, "/foo", false, noop)

	if i, _ := table.match(http.MethodGet, "/foo", 0); i != 0 {
		t.Errorf("exact path: match index = %d, want 0", i)
	}
	if i, _ := table.match(http.MethodGet, "/foo/bar", 0); i != -1 {
		t.Errorf("subpath of exact route: match index = %d, want -1", i)
	}
	if i, _ := table.match(http.MethodPost, "/foo", 0); i != -1 {
		t.Errorf("wrong method: match index = %d, want -1", i)
	}
}

func TestRouteTable_PrefixMatch(t *testing.T) {
	for _, pattern := range []string{"/foo", "/foo/"} {
		var table routeTable
		table.register("", pattern, true, noop)

		for _, path := range []string{"/foo", "/foo/bar", "/foo/bar/baz"} {
			if i, _ := table.match(http.MethodGet, path, 0); i != 0 {
				t.Errorf("pattern %q path %q: match index = %d, want 0", pattern, path, i)
			}
		}
		if i, _ := table.match(http.MethodGet, "/foobar", 0); i != -1 {
			t.Errorf("pattern %q: /foobar matched, want no match", pattern)
		}
		if i, _ := table.match(http.MethodGet, "/other", 0); i != -1 {
			t.Errorf("pattern %q: /other matched, want no match", pattern)
		}
	}
}

func TestRouteTable_RootMatchesEverything(t *testing.T) {
	var table routeTable
	table.register("", "/", true, noop)

	for _, path := range []string{"/", "/a", "/a/b/c", "/index.html"} {
		if i, _ := table.match(http.MethodGet, path, 0); i != 0 {
			t.Errorf("root mount did not match %q", path)
		}
	}
}

func TestRouteTable_AnyMethod(t *testing.T) {
	var table routeTable
	table.register("", "/hook", false, noop)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		if i, _ := table.match(method, "/hook", 0); i != 0 {
			t.Errorf("method %s did not match any-method route", method)
		}
	}
}

func TestRouteTable_CursorResumesInOrder(t *testing.T) {
	var table routeTable
	table.register("", "/", true, noop)
	table.register(http.MethodGet, "/a", false, noop)
	table.register("", "/a", true, noop)

	var got []int
	cursor := 0
	for {
		i, rt := table.match(http.MethodGet, "/a", cursor)
		if rt == nil {
			break
		}
		got = append(got, i)
		cursor = i + 1
	}

	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("matched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matched %v, want %v", got, want)
		}
	}
}
