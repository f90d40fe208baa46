package internal

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

// routesFunc adapts a function to the Handler interface for tests.
type routesFunc func(r Router)

func (f routesFunc) Routes(r Router) { f(r) }

func doRequest(app *App, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestDispatch_RegistrationOrderWins(t *testing.T) {
	var invoked []string

	app := New(WithHandlers(routesFunc(func(r Router) {
		r.Use("/", func(c Context) (Result, error) {
			invoked = append(invoked, "first")
			return Data(map[string]any{"handled": "first"})
		})
		r.Use("/", func(c Context) (Result, error) {
			invoked = append(invoked, "second")
			return Data(map[string]any{"handled": "second"})
		})
	})))

	rec := doRequest(app, http.MethodGet, "/anything")

	if len(invoked) != 1 || invoked[0] != "first" {
		t.Fatalf("invoked = %v, want [first]", invoked)
	}
	if !strings.Contains(rec.Body.String(), "first") {
		t.Errorf("body = %q, want first handler's payload", rec.Body.String())
	}
}

func TestDispatch_PassThroughContinues(t *testing.T) {
	var invoked []string

	app := New(WithHandlers(routesFunc(func(r Router) {
		r.Use("/", func(c Context) (Result, error) {
			invoked = append(invoked, "decliner")
			return Next()
		})
		r.GET("/target", func(c Context) (Result, error) {
			invoked = append(invoked, "terminal")
			_ = c.String(http.StatusOK, "done")
			return Done()
		})
	})))

	rec := doRequest(app, http.MethodGet, "/target")

	want := []string{"decliner", "terminal"}
	if len(invoked) != 2 || invoked[0] != want[0] || invoked[1] != want[1] {
		t.Fatalf("invoked = %v, want %v", invoked, want)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestDispatch_NoMatchIs404(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/known", func(c Context) (Result, error) {
			return Done()
		})
	})))

	rec := doRequest(app, http.MethodGet, "/unknown")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDispatch_TrailingPassThroughIs404(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.Use("/", func(c Context) (Result, error) {
			return Next()
		})
	})))

	rec := doRequest(app, http.MethodGet, "/whatever")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDispatch_ExactRouteDoesNotMatchSubpath(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/foo", func(c Context) (Result, error) {
			return Done()
		})
	})))

	if rec := doRequest(app, http.MethodGet, "/foo"); rec.Code != http.StatusOK {
		t.Errorf("/foo status = %d, want 200", rec.Code)
	}
	if rec := doRequest(app, http.MethodGet, "/foo/bar"); rec.Code != http.StatusNotFound {
		t.Errorf("/foo/bar status = %d, want 404", rec.Code)
	}
}

func TestResolve_JSONFallback(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/device", func(c Context) (Result, error) {
			return Data(map[string]any{"sn": "X1", "time": 123})
		})
	})))

	rec := doRequest(app, http.MethodGet, "/device")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	if rec.Body.String() != `{"sn":"X1","time":123}` {
		t.Errorf("body = %q, want exact JSON bytes", rec.Body.String())
	}
}

func TestResolve_ViewRendering(t *testing.T) {
	views := fstest.MapFS{
		"index.html":  {Data: []byte("<h1>{device.name}</h1>")},
		"status.html": {Data: []byte("up {uptime}s")},
	}

	app := New(
		WithViews(views, ""),
		WithHandlers(routesFunc(func(r Router) {
			r.GET("/", func(c Context) (Result, error) {
				return Data(map[string]any{
					"device": map[string]any{"name": "thermo-1"},
				})
			})
			r.GET("/status", func(c Context) (Result, error) {
				return Data(map[string]any{"uptime": 42})
			})
		})),
	)

	rec := doRequest(app, http.MethodGet, "/")
	if ct := rec.Header().Get("Content-Type"); ct != "text/html" {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if rec.Body.String() != "<h1>thermo-1</h1>" {
		t.Errorf("body = %q, want rendered index view", rec.Body.String())
	}

	rec = doRequest(app, http.MethodGet, "/status")
	if rec.Body.String() != "up 42s" {
		t.Errorf("body = %q, want rendered status view", rec.Body.String())
	}
}

func TestResolve_NoValueWritesNoBody(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/quiet", func(c Context) (Result, error) {
			return Done()
		})
	})))

	rec := doRequest(app, http.MethodGet, "/quiet")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

type selfResponder struct{}

func (selfResponder) Respond(c Context) error {
	return c.String(http.StatusTeapot, "short and stout")
}

func TestResolve_ResponderDelegation(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/teapot", func(c Context) (Result, error) {
			return Data(selfResponder{})
		})
	})))

	rec := doRequest(app, http.MethodGet, "/teapot")
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if rec.Body.String() != "short and stout" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestResolve_SelfWritingHandlerLeftAlone(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/raw", func(c Context) (Result, error) {
			_ = c.String(http.StatusAccepted, "wrote myself")
			return Data(map[string]any{"ignored": true})
		})
	})))

	rec := doRequest(app, http.MethodGet, "/raw")
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if rec.Body.String() != "wrote myself" {
		t.Errorf("body = %q, serializer must not double-write", rec.Body.String())
	}
}

func TestError_ExpectedKeepsStatusAndMessage(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/locked", func(c Context) (Result, error) {
			return Result{}, c.Error(http.StatusForbidden, "locked out")
		})
	})))

	rec := doRequest(app, http.MethodGet, "/locked")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if rec.Body.String() != "locked out" {
		t.Errorf("body = %q, want message text", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html" {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestError_UntypedIsOpaque500(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/boom", func(c Context) (Result, error) {
			return Result{}, errors.New("database password is hunter2")
		})
	})))

	rec := doRequest(app, http.MethodGet, "/boom")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec.Body.String() != "Server Error" {
		t.Errorf("body = %q, want generic message", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestError_ErrorViewRendered(t *testing.T) {
	views := fstest.MapFS{
		"errors/404.html": {Data: []byte("lost: {error.path}")},
	}

	app := New(WithViews(views, ""))

	rec := doRequest(app, http.MethodGet, "/nowhere")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if rec.Body.String() != "lost: /nowhere" {
		t.Errorf("body = %q, want rendered 404 view", rec.Body.String())
	}
}

func TestError_AfterWriteIsSwallowed(t *testing.T) {
	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/late", func(c Context) (Result, error) {
			_ = c.String(http.StatusOK, "partial")
			return Result{}, errors.New("failed after write")
		})
	})))

	rec := doRequest(app, http.MethodGet, "/late")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want the already-sent 200", rec.Code)
	}
	if rec.Body.String() != "partial" {
		t.Errorf("body = %q, error path must not append", rec.Body.String())
	}
}

func TestError_CustomErrorHandler(t *testing.T) {
	app := New(
		WithErrorHandler(func(c Context, err error) error {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "nope"})
		}),
		WithHandlers(routesFunc(func(r Router) {
			r.GET("/x", func(c Context) (Result, error) {
				return Result{}, errors.New("boom")
			})
		})),
	)

	rec := doRequest(app, http.MethodGet, "/x")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestError_FailingErrorHandlerIsLogged(t *testing.T) {
	var buf bytes.Buffer

	app := New(
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithErrorHandler(func(c Context, err error) error {
			return errors.New("handler broke too")
		}),
		WithHandlers(routesFunc(func(r Router) {
			r.GET("/x", func(c Context) (Result, error) {
				return Result{}, errors.New("boom")
			})
		})),
	)

	doRequest(app, http.MethodGet, "/x")

	if !strings.Contains(buf.String(), "error handler failed") {
		t.Errorf("logs = %q, want the error handler failure recorded", buf.String())
	}
	if !strings.Contains(buf.String(), "handler broke too") {
		t.Errorf("logs = %q, want the returned error in the record", buf.String())
	}
}

func TestMiddleware_WrapsDispatchOnce(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(c Context) (Result, error) {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := New(
		WithMiddleware(mw("outer"), mw("inner")),
		WithHandlers(routesFunc(func(r Router) {
			r.Use("/", func(c Context) (Result, error) {
				order = append(order, "decline")
				return Next()
			})
			r.GET("/m", func(c Context) (Result, error) {
				order = append(order, "handler")
				return Done()
			})
		})),
	)

	doRequest(app, http.MethodGet, "/m")

	want := []string{"outer", "inner", "decline", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRouteMiddleware_AppliedInOrder(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(c Context) (Result, error) {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := New(WithHandlers(routesFunc(func(r Router) {
		r.GET("/m", func(c Context) (Result, error) {
			order = append(order, "handler")
			return Done()
		}, mw("a"), mw("b"))
	})))

	doRequest(app, http.MethodGet, "/m")

	want := []string{"a", "b", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
