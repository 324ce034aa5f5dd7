package iolib

import "io"

// LimitReader creates new [LimitedReader]
func LimitReader(r io.Reader, n uint) io.Reader { return &LimitedReader{r, n} }

// LimitedReader is a uint port of [io.LimitedReader]: it caps the bytes
// read from R and reports io.EOF at the cap. Contrast [ThrottledReader],
// which caps Read calls and reports [ErrReadBudgetExhausted] instead,
// keeping the cap distinguishable from end of stream.
type LimitedReader struct {
	R io.Reader // underlying reader
	N uint      // max bytes remaining
}

func (l *LimitedReader) Read(p []byte) (n int, err error) {
	if l.N == 0 {
		return 0, io.EOF
	}
	if uint(len(p)) > l.N {
		p = p[:l.N]
	}
	n, err = l.R.Read(p)
	l.N -= uint(n)
	return
}
