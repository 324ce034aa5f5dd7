// Package iolib provides io.Reader proxy types for cooperative
// multiplexing over many input streams.
package iolib

import (
	"errors"
	"io"
)

// ErrReadBudgetExhausted is returned by [ThrottledReader.Read] once the
// read budget is spent. It means "not now", never "broken": callers are
// expected to move on to another stream and come back after resetting
// the limit.
var ErrReadBudgetExhausted = errors.New("read budget exhausted")

// ThrottledReader proxies a reader, but enforces a budget on how many
// Read calls may be issued to it. Once the budget is spent, Read returns
// [ErrReadBudgetExhausted] without touching the underlying reader.
//
// This lets a poll loop enforce fairness across input streams with
// uneven availability: without a cap, a stream that always has data
// ready can be read forever, starving its siblings.
//
// The zero value wraps R's zero value with no limit, so it is ready to
// use whenever the zero value of R is itself a usable reader.
//
// A ThrottledReader is not safe for concurrent use.
type ThrottledReader[R io.Reader] struct {
	src    R
	budget Budget
}

var _ io.Reader = (*ThrottledReader[io.Reader])(nil)

// NewThrottledReader wraps r. The returned reader initially has no limit.
func NewThrottledReader[R io.Reader](r R) *ThrottledReader[R] {
	return &ThrottledReader[R]{src: r}
}

// SetLimit allows n more Read calls to reach the underlying reader,
// replacing whatever budget was in place before. Setting a limit on an
// already spent reader takes effect on the very next Read.
func (t *ThrottledReader[R]) SetLimit(n uint) { t.budget = Limit(n) }

// Unthrottle removes the cap on Read calls.
func (t *ThrottledReader[R]) Unthrottle() { t.budget = Unlimited() }

// Remaining returns how many more Read calls may reach the underlying
// reader. ok is false when there is no cap.
func (t *ThrottledReader[R]) Remaining() (n uint, ok bool) { return t.budget.Remaining() }

// Budget returns the current budget state.
func (t *ThrottledReader[R]) Budget() Budget { return t.budget }

// Inner returns the underlying reader so its other capabilities stay
// reachable without unwrapping. Reads made through it bypass budget
// accounting entirely.
func (t *ThrottledReader[R]) Inner() R { return t.src }

// Unwrap extracts the underlying reader, discarding all budget state.
// The ThrottledReader must not be used afterwards.
func (t *ThrottledReader[R]) Unwrap() R { return t.src }

// Read forwards to the underlying reader while budget remains, returning
// its result verbatim, and fails with [ErrReadBudgetExhausted] once the
// budget is spent. Every forwarded call costs one unit of budget, no
// matter how many bytes it moves and no matter whether it fails.
func (t *ThrottledReader[R]) Read(p []byte) (n int, err error) {
	if !t.budget.consume() {
		return 0, ErrReadBudgetExhausted
	}
	return t.src.Read(p)
}
