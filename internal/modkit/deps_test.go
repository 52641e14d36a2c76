package modkit

import (
	"testing"

	"glossrank/internal/platform/config"
	"glossrank/internal/platform/logger"
	"glossrank/internal/platform/store"
)

func TestFromStore_NilStore(t *testing.T) {
	t.Parallel()

	d := FromStore(nil, config.New(), *logger.Get())
	if d.PG != nil || d.HasClickhouse() || d.HasRedis() {
		t.Fatalf("nil store should yield empty backends: %+v", d)
	}
}

func TestFromStore_CopiesBackends(t *testing.T) {
	t.Parallel()

	st := &store.Store{}
	d := FromStore(st, config.New().Prefix("CORE_API_"), *logger.Get())
	if d.HasRedis() || d.HasClickhouse() {
		t.Fatal("zero store has no optional backends")
	}
}
