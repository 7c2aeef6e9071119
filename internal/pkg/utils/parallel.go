package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelMap 以最多 workers 个 goroutine 并发执行 fn，结果顺序与输入一致。
// 输入为 0 或 1 个元素，或 workers <= 1 时直接在当前 goroutine 执行。
func ParallelMap[T, R any](items []T, workers int, fn func(T) R) []R {
	out := make([]R, len(items))
	if len(items) <= 1 || workers <= 1 {
		for i, item := range items {
			out[i] = fn(item)
		}
		return out
	}

	var group errgroup.Group
	group.SetLimit(workers)
	for i := range items {
		i := i
		group.Go(func() error {
			out[i] = fn(items[i])
			return nil
		})
	}
	_ = group.Wait()
	return out
}

// ParallelMapCtx 与 ParallelMap 相同，但 ctx 取消后不再启动新的任务，返回 ctx 的错误。
// 已启动的任务会执行完毕，未执行的位置保留零值。
func ParallelMapCtx[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) R) ([]R, error) {
	out := make([]R, len(items))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(max(workers, 1))
	for i := range items {
		if gctx.Err() != nil {
			break
		}
		i := i
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = fn(gctx, items[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}
