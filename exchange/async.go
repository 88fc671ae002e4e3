package exchange

import (
	"context"

	"github.com/samber/mo"
)

// Async runs fn on its own goroutine and returns a future of its result.
//
//	f := exchange.Async(ctx, func(ctx context.Context) (OrderResponse, error) {
//		return ex.CreateOrder(ctx, 1002, true, qty, px)
//	})
//	resp, err := f.Collect()
func Async[T any](
	ctx context.Context,
	fn func(ctx context.Context) (T, error),
) *mo.Future[T] {
	return mo.NewFuture(func(resolve func(T), reject func(error)) {
		result, err := fn(ctx)
		if err != nil {
			reject(err)
			return
		}
		resolve(result)
	})
}
