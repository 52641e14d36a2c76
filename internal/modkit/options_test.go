package modkit

import (
	"net/http"
	"testing"
	"time"

	phttp "glossrank/internal/platform/net/http"
)

func TestOptions_Compose(t *testing.T) {
	t.Parallel()

	opts := []Option{
		WithName("suggest"),
		WithPrefix("/suggestions"),
		WithTimeout(3 * time.Second),
		WithMiddlewares(func(h http.Handler) http.Handler { return h }),
		WithMiddlewares(func(h http.Handler) http.Handler { return h }),
		WithPorts(map[string]int{"ok": 1}),
	}

	var c buildCfg
	for _, opt := range opts {
		opt(&c)
	}

	if c.name != "suggest" || c.prefix != "/suggestions" || c.timeout != 3*time.Second {
		t.Fatalf("unexpected cfg: %+v", c)
	}
	if len(c.mw) != 2 {
		t.Fatalf("expected 2 middlewares got=%d", len(c.mw))
	}
	if _, ok := c.ports.(map[string]int); !ok {
		t.Fatalf("ports type %T", c.ports)
	}
}

func TestWithSubrouterAndRegister(t *testing.T) {
	t.Parallel()

	var c buildCfg
	subCalled, regCalled := false, false
	WithSubrouter(func(r phttp.Router) phttp.Router { subCalled = true; return r })(&c)
	WithRegister(func(phttp.Router) { regCalled = true })(&c)

	var r phttp.Router
	c.register(c.subrouter(r))
	if !subCalled || !regCalled {
		t.Fatalf("sub=%v reg=%v", subCalled, regCalled)
	}
}
