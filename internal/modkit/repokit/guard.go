package repokit

import (
	"context"
	"fmt"
	"time"
)

// DefaultGuardTimeout bounds MustGuard when ctx carries no deadline
const DefaultGuardTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// MustGuard panics when the named dependency set fails its startup guard
func MustGuard(ctx context.Context, name string, g guarder) {
	if g == nil {
		panic(fmt.Sprintf("%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultGuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("%s guard failed: %w", name, err))
	}
}
