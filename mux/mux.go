// Package mux implements a cooperative round-robin poll loop over many
// input streams. Each stream gets a bounded turn: its read-call budget
// is armed at the start of the turn and the loop moves on once the
// budget is spent, so an always-ready stream cannot starve its siblings.
package mux

import (
	"io"
	"time"

	iolib "throttled-reader/lib/io"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

var ErrNoSources = errors.New("no sources registered")

// Sink receives the bytes read during a turn. p is only valid until the
// sink returns. A sink error aborts the turn and is reported by Poll.
type Sink func(name string, p []byte) error

type source struct {
	name string
	tr   *iolib.ThrottledReader[io.Reader]
}

// Mux rotates over registered sources, giving each a bounded turn.
// It performs no scheduling of its own: a turn blocks exactly as long
// as the source's own Read does. Not safe for concurrent use.
type Mux struct {
	sources []*source
	next    int

	turnReads uint
	turnBytes uint
	turnSlice time.Duration
	clock     clock.Clock
}

type Option func(*Mux)

// WithTurnReads sets how many Read calls a source may issue per turn.
// The default is 1.
func WithTurnReads(n uint) Option {
	return func(m *Mux) { m.turnReads = n }
}

// WithTurnBytes additionally caps the bytes a source may deliver per
// turn. Zero (the default) means no byte cap.
func WithTurnBytes(n uint) Option {
	return func(m *Mux) { m.turnBytes = n }
}

// WithTurnDuration additionally ends a turn once d has elapsed on the
// mux's clock. The slice is checked between reads, never mid-read.
func WithTurnDuration(d time.Duration) Option {
	return func(m *Mux) { m.turnSlice = d }
}

// WithClock replaces the wall clock. Useful with clock.NewMock.
func WithClock(c clock.Clock) Option {
	return func(m *Mux) { m.clock = c }
}

func New(opts ...Option) *Mux {
	m := &Mux{turnReads: 1, clock: clock.New()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add registers a source under name. Names are only used to attribute
// bytes and errors; they need not be unique.
func (m *Mux) Add(name string, r io.Reader) {
	m.sources = append(m.sources, &source{
		name: name,
		tr:   iolib.NewThrottledReader(r),
	})
}

// Len returns the number of live sources. Sources are retired once they
// report end of stream.
func (m *Mux) Len() int { return len(m.sources) }

// PollOne gives the next source in rotation a single turn.
func (m *Mux) PollOne(buf []byte, sink Sink) error {
	if len(m.sources) == 0 {
		return ErrNoSources
	}
	if m.next >= len(m.sources) {
		m.next = 0
	}

	src := m.sources[m.next]
	retired, err := m.turn(src, buf, sink)
	if retired {
		m.sources = append(m.sources[:m.next], m.sources[m.next+1:]...)
	} else {
		m.next++
	}
	if m.next >= len(m.sources) {
		m.next = 0
	}
	return err
}

// Poll gives every source that was live at the start one turn.
// It stops at the first source or sink error; the failing source stays
// registered so the caller can decide its fate.
func (m *Mux) Poll(buf []byte, sink Sink) error {
	if len(m.sources) == 0 {
		return ErrNoSources
	}
	for range len(m.sources) {
		if len(m.sources) == 0 {
			return nil
		}
		if err := m.PollOne(buf, sink); err != nil {
			return err
		}
	}
	return nil
}

// turn reads from src until its budget is spent, its byte or time slice
// runs out, it ends, or it fails. retired reports end of stream.
func (m *Mux) turn(src *source, buf []byte, sink Sink) (retired bool, err error) {
	src.tr.SetLimit(m.turnReads)

	var r io.Reader = src.tr
	var lr *iolib.LimitedReader
	if m.turnBytes > 0 {
		lr = &iolib.LimitedReader{R: src.tr, N: m.turnBytes}
		r = lr
	}

	var deadline time.Time
	if m.turnSlice > 0 {
		deadline = m.clock.Now().Add(m.turnSlice)
	}

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if serr := sink(src.name, buf[:n]); serr != nil {
				return false, errors.Wrapf(serr, "sink for %q", src.name)
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, iolib.ErrReadBudgetExhausted):
			// Turn is over. The stream itself is fine.
			return false, nil
		case err == io.EOF:
			if lr != nil && lr.N == 0 {
				// The byte slice ran out, not the stream.
				return false, nil
			}
			return true, nil
		default:
			return false, errors.Wrapf(err, "reading from %q", src.name)
		}

		if !deadline.IsZero() && !m.clock.Now().Before(deadline) {
			return false, nil
		}
	}
}
