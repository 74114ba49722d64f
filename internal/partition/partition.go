// Package partition implements a generic parallel group-by-key engine.
//
// ByKey distributes a stream of items across a bounded pool of workers.
// Each worker folds its share into a private key→items multimap, and the
// partial multimaps are merged pairwise with Union once all workers have
// drained the stream. Keys exist only to decide membership: the output is
// the value lists alone.
//
// The key function must be a pure, thread-safe function of its input. That
// is a precondition, not something the engine checks — an impure key
// function produces undefined grouping.
package partition

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ByKey groups items by the key computed by keyFn. Two items land in the
// same group if and only if their keys compare equal. Group order and the
// order of items within a group are unspecified.
//
// The first error returned by keyFn cancels all workers and fails the
// call; no partial result is returned. An exhausted (already closed,
// empty) items channel yields an empty result.
func ByKey[K comparable, T any](ctx context.Context, workers int, keyFn func(T) (K, error), items <-chan T) ([][]T, error) {
	if workers < 1 {
		workers = 1
	}

	partials := make(chan map[K][]T, workers)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			acc := make(map[K][]T)
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case item, ok := <-items:
					if !ok {
						partials <- acc
						return nil
					}
					key, err := keyFn(item)
					if err != nil {
						return err
					}
					acc[key] = append(acc[key], item)
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(partials)

	merged := make(map[K][]T)
	for partial := range partials {
		merged = Union(merged, partial)
	}

	groups := make([][]T, 0, len(merged))
	for _, group := range merged {
		groups = append(groups, group)
	}
	return groups, nil
}

// Union merges two key→items multimaps into one: for every key present in
// either input, the result holds every item filed under that key in both.
// The order of items within a combined list is unspecified.
//
// The map with fewer distinct keys is drained into the one with more, so
// the re-hashing cost tracks the smaller side. Both arguments are consumed;
// only the returned map is valid afterwards. Union is commutative up to
// within-list order and associative across pairwise folds, so a reduction
// may pair partial maps in any order.
func Union[K comparable, T any](a, b map[K][]T) map[K][]T {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	for key, items := range small {
		large[key] = append(large[key], items...)
		delete(small, key)
	}
	return large
}
