package assets

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrNotReady is returned by Progress.Result before loading has finished.
var ErrNotReady = errors.New("assets: still loading")

// Progress tracks one background preload. It is safe to poll from the frame
// loop while loader goroutines are still running.
type Progress struct {
	total  int
	loaded atomic.Int32
	done   chan struct{}

	// Written once before done is closed.
	reg *Registry
	err error
}

func newProgress(total int) *Progress {
	return &Progress{total: total, done: make(chan struct{})}
}

// Ready returns an already completed progress token.
func Ready(reg *Registry, err error) *Progress {
	p := newProgress(0)
	p.finish(reg, err)
	return p
}

// Pending returns an unfinished token over total items, the function that
// counts one finished item, and the function that completes the token.
// finish must be called at most once.
func Pending(total int) (p *Progress, step func(), finish func(reg *Registry, err error)) {
	p = newProgress(total)
	return p, p.step, p.finish
}

func (p *Progress) step() {
	p.loaded.Add(1)
}

func (p *Progress) finish(reg *Registry, err error) {
	p.reg, p.err = reg, err
	close(p.done)
}

// IsComplete reports whether loading has finished, successfully or not.
func (p *Progress) IsComplete() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns the registry once complete, or ErrNotReady.
func (p *Progress) Result() (*Registry, error) {
	if !p.IsComplete() {
		return nil, ErrNotReady
	}
	return p.reg, p.err
}

// Wait blocks until loading finishes or ctx is done.
func (p *Progress) Wait(ctx context.Context) (*Registry, error) {
	select {
	case <-p.done:
		return p.reg, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Counts returns how many items have finished and how many there are.
func (p *Progress) Counts() (loaded, total int) {
	return int(p.loaded.Load()), p.total
}
