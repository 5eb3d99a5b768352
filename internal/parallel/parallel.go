// Package parallel provides the worker dispatcher and work-partitioning helpers used by
// reduction-heavy layers.
package parallel

// Config controls parallel execution behavior.
type Config struct {
	Threads      int // Number of dispatcher workers; <= 0 selects DefaultThreads.
	MinChunkSize int // Minimum items before a loop is split across workers.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		Threads:      DefaultThreads(),
		MinChunkSize: 64,
	}
}

// Range is a half-open index interval [Begin, End).
type Range struct {
	Begin, End int
}

// Partition splits [0, n) into parts contiguous ranges of n/parts items; the last range
// absorbs the remainder. Ranges may be empty when parts > n.
func Partition(n, parts int) []Range {
	parts = max(parts, 1)
	step := n / parts
	ranges := make([]Range, parts)
	for i := range ranges {
		ranges[i] = Range{Begin: i * step, End: (i + 1) * step}
	}
	ranges[parts-1].End = n
	return ranges
}

// For runs f over [0, n) split into one contiguous range per dispatcher worker and
// waits for all of them.
//
// The ranges are disjoint, so f may write to shared buffers indexed by its range without
// further synchronization. Falls back to a single inline call if d is nil, has one
// worker, or n is below minChunk.
func For(d *Dispatcher, n, minChunk int, f func(begin, end int)) {
	if n <= 0 {
		return
	}
	if d == nil || d.Threads() == 1 || n < minChunk {
		f(0, n)
		return
	}

	for _, r := range Partition(n, d.Threads()) {
		if r.Begin == r.End {
			continue
		}
		d.Add(func() { f(r.Begin, r.End) })
	}
	d.Join()
}
