// Package dupes runs the duplicate-detection pipeline: traverse a root
// directory, partition its regular files by size, then partition the
// size-colliding files by content digest, and emit the groups that still
// hold two or more files.
//
// The two-stage filter is what keeps the run cheap: hashing is I/O-bound,
// so files are only hashed once their size has already collided with at
// least one sibling. A file with a unique size cannot be a duplicate.
package dupes

import (
	"context"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fdup/fdup/internal/fingerprint"
	"github.com/fdup/fdup/internal/partition"
	"github.com/fdup/fdup/internal/traverse"
)

// Group is one set of paths whose files are byte-identical to each other.
// A group always holds at least two paths.
type Group []string

// Options configures a Finder.
type Options struct {
	// Workers is the number of concurrent workers used by each partition
	// stage. 0 selects the host's available parallelism.
	Workers int

	// Sort orders each emitted group's paths lexicographically. Without
	// it, path order within a group is unspecified.
	Sort bool

	// Logger receives progress diagnostics. nil discards them.
	Logger *log.Logger
}

// Finder runs the pipeline with a fixed worker count. Construct with
// NewFinder; the zero value falls back to single-worker operation with no
// logging.
type Finder struct {
	workers int
	sort    bool
	logger  *log.Logger
}

// NewFinder resolves opts into a Finder. The worker count is pinned here,
// not at scan time, so a Finder's parallelism is deterministic across
// runs.
func NewFinder(opts Options) *Finder {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Finder{workers: workers, sort: opts.Sort, logger: logger}
}

// contentKey is the second-stage grouping key. Carrying the size alongside
// the digest keeps the stage equivalent to hashing each size group
// independently: two files share a contentKey only if they already shared
// a size.
type contentKey struct {
	size   int64
	digest fingerprint.Digest
}

// Find scans the tree rooted at root and returns every group of two or
// more byte-identical regular files. Group order is unspecified. Any
// traversal, metadata, or read error aborts the scan; no partial result
// is returned.
func (f *Finder) Find(ctx context.Context, root string) ([]Group, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	f.logger.Debug("scan starting", "root", root, "workers", f.workers)

	files, wait := traverse.Files(ctx, root)
	sizeGroups, err := partition.ByKey(ctx, f.workers, fingerprint.Size, files)
	if err != nil {
		cancel()
		wait() // release the walk goroutine; its error is secondary
		return nil, err
	}
	if err := wait(); err != nil {
		return nil, err
	}

	total := 0
	candidates := 0
	colliding := sizeGroups[:0]
	for _, group := range sizeGroups {
		total += len(group)
		if len(group) >= 2 {
			candidates += len(group)
			colliding = append(colliding, group)
		}
	}
	f.logger.Debug("size partition complete",
		"files", total,
		"candidates", candidates,
		"sizeGroups", len(colliding))

	hashGroups, err := partition.ByKey(ctx, f.workers, f.fileContentKey, flatten(ctx, colliding))
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(hashGroups))
	for _, group := range hashGroups {
		if len(group) < 2 {
			continue
		}
		if f.sort {
			slices.Sort(group)
		}
		groups = append(groups, Group(group))
	}

	f.logger.Info("scan complete",
		"files", total,
		"duplicateGroups", len(groups),
		"elapsed", time.Since(start))
	return groups, nil
}

// fileContentKey derives the (size, digest) key for one path. The size is
// re-read from metadata because the partition engine discards first-stage
// keys on output.
func (f *Finder) fileContentKey(path string) (contentKey, error) {
	size, err := fingerprint.Size(path)
	if err != nil {
		return contentKey{}, err
	}
	digest, err := fingerprint.Checksum(path)
	if err != nil {
		return contentKey{}, err
	}
	return contentKey{size: size, digest: digest}, nil
}

// flatten feeds the members of every group into a single channel for the
// next partition stage. The channel closes once all groups are spent or
// ctx is cancelled.
func flatten(ctx context.Context, groups [][]string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, group := range groups {
			for _, path := range group {
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
