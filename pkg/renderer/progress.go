package renderer

import (
	"sync/atomic"

	"github.com/rayt-go/rayt/pkg/core"
)

// Progress counts completed pixels across workers and logs every interval pixels
type Progress struct {
	done     atomic.Int64
	total    int64
	interval int64 // <= 0 disables logging
	logger   core.Logger
}

// NewProgress creates a progress counter for total pixels
func NewProgress(total, interval int, logger core.Logger) *Progress {
	return &Progress{
		total:    int64(total),
		interval: int64(interval),
		logger:   logger,
	}
}

// Add records n completed pixels. It is safe for concurrent use.
func (p *Progress) Add(n int) {
	done := p.done.Add(int64(n))
	if p.interval <= 0 || p.logger == nil {
		return
	}
	if done/p.interval != (done-int64(n))/p.interval {
		p.logger.Printf("[%d / %d] %.2f%%\n", done, p.total, float64(done)/float64(p.total)*100.0)
	}
}

// Done returns the number of completed pixels
func (p *Progress) Done() int64 {
	return p.done.Load()
}

// Total returns the number of pixels in the render
func (p *Progress) Total() int64 {
	return p.total
}
