// Package traverse enumerates the regular files under a root directory.
package traverse

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Files walks the tree rooted at root and sends the path of every regular
// file on the returned channel. Directories and symbolic links are
// filtered out, and symbolic links are never followed. The walk stops on
// the first error.
//
// The channel is closed when the walk finishes. Call the returned wait
// function after the channel closes (or after abandoning the walk via
// ctx) to learn whether the traversal succeeded; it blocks until the walk
// goroutine has exited.
func Files(ctx context.Context, root string) (<-chan string, func() error) {
	paths := make(chan string)
	done := make(chan error, 1)

	go func() {
		defer close(paths)
		done <- filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("traversing %s: %w", path, err)
			}
			if !d.Type().IsRegular() {
				return nil
			}
			select {
			case paths <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return paths, func() error { return <-done }
}
