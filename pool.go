package diagram2png

import (
	"context"
	"runtime"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one export slot is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browser processes to limit memory
	// (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ExportPool bounds the number of concurrent exports. Each export still
// acquires and releases its own browser session; the pool only limits
// how many are in flight at once.
type ExportPool struct {
	exporter *Exporter
	sem      chan struct{}
}

// NewExportPool creates a pool running at most n exports concurrently
// through the given exporter.
func NewExportPool(exporter *Exporter, n int) *ExportPool {
	if n < 1 {
		n = 1
	}
	return &ExportPool{
		exporter: exporter,
		sem:      make(chan struct{}, n),
	}
}

// Export runs one export, blocking while the pool is full. Returns the
// context error if ctx is canceled before a slot frees up.
func (p *ExportPool) Export(ctx context.Context, html string, opts ExportOptions) (string, error) {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-p.sem }()

	return p.exporter.Export(ctx, html, opts)
}

// Size returns the pool capacity.
func (p *ExportPool) Size() int {
	return cap(p.sem)
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
