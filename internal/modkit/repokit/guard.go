package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder is any store facade that can verify its configured backends
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard verifies every configured backend at service startup and
// panics if any of them is unreachable
// a default timeout is applied when ctx carries no deadline
func MustGuard(ctx context.Context, st Guarder) {
	if st == nil {
		panic("repokit: nil store for guard")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("store guard failed: %w", err))
	}
}
