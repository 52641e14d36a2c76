package module

import (
	"testing"

	phttp "glossrank/internal/platform/net/http"
)

type pinger interface{ Ping() string }

type pong struct{}

func (pong) Ping() string { return "pong" }

type bundle struct {
	Name  string
	Check pinger
	inner pinger
}

type stubModule struct {
	name  string
	ports any
}

func (s *stubModule) MountRoutes(phttp.Router) {}
func (s *stubModule) Ports() any               { return s.ports }
func (s *stubModule) Name() string             { return s.name }

var _ Module = (*stubModule)(nil)

func TestPortsOf_DirectAndField(t *testing.T) {
	direct := &stubModule{name: "a", ports: pong{}}
	if p, ok := PortsOf[pinger](direct); !ok || p.Ping() != "pong" {
		t.Fatal("direct port not found")
	}

	viaField := &stubModule{name: "b", ports: bundle{Check: pong{}}}
	if _, ok := PortsOf[pinger](viaField); !ok {
		t.Fatal("field port not found")
	}

	viaPtr := &stubModule{name: "c", ports: &bundle{Check: pong{}}}
	if _, ok := PortsOf[pinger](viaPtr); !ok {
		t.Fatal("pointer bundle port not found")
	}
}

func TestPortsOf_Missing(t *testing.T) {
	cases := []Module{
		nil,
		&stubModule{name: "nilports"},
		&stubModule{name: "prim", ports: 7},
		&stubModule{name: "hidden", ports: bundle{inner: pong{}}},
		&stubModule{name: "nilptr", ports: (*bundle)(nil)},
	}
	for _, m := range cases {
		if _, ok := PortsOf[pinger](m); ok {
			t.Fatalf("unexpected port on %v", m)
		}
	}
}

func TestMustPortsOf_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_ = MustPortsOf[pinger](&stubModule{name: "x"})
}
