// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"fmt"
	"io"
)

// endOfInput is the sentinel peek reports when the cursor stands past the
// last byte of the input. The value 0xFF cannot appear in UTF-8 encoded
// text, and it begins no JSON production, so input containing it is rejected
// rather than mistaken for the end of the stream.
const endOfInput byte = 0xFF

const (
	defaultWindowSize = 4096
	minWindowSize     = 16
	maxEmptyReads     = 100
)

// A buffer is a fixed read window over an io.Reader. The window is refilled
// transparently as the cursor consumes it, so a document is never held in
// memory whole; only absolute offsets are retained across refills.
type buffer struct {
	r   io.Reader
	buf []byte

	// Bytes buf[cur:n] have been read from r but not yet consumed.
	// 0 <= cur <= n < len(buf), and buf[n] holds the sentinel.
	cur, n int

	base int64 // absolute offset of buf[0]
	eof  bool  // r reported io.EOF
	err  error // r failed with a non-EOF error
}

// newBuffer constructs a buffer over r whose window holds size bytes, one of
// which is reserved for the sentinel. Sizes below the minimum are raised to
// it. No input is read until the window is first consulted.
func newBuffer(r io.Reader, size int) *buffer {
	if size < minWindowSize {
		size = minWindowSize
	}
	b := &buffer{r: r, buf: make([]byte, size)}
	b.buf[0] = endOfInput
	return b
}

// fill moves any unconsumed input to the front of the window and reads more
// from r into the space after it. The final slot is never filled; it holds
// the sentinel.
func (b *buffer) fill() {
	if b.cur > 0 {
		copy(b.buf, b.buf[b.cur:b.n])
		b.base += int64(b.cur)
		b.n -= b.cur
		b.cur = 0
	}
	b.buf[b.n] = endOfInput
	if b.eof || b.err != nil {
		return
	}
	for i := maxEmptyReads; i > 0; i-- {
		n, err := b.r.Read(b.buf[b.n : len(b.buf)-1])
		b.n += n
		b.buf[b.n] = endOfInput
		if err == io.EOF {
			b.eof = true
			return
		} else if err != nil {
			b.err = err
			return
		} else if n > 0 {
			return
		}
	}
	b.err = io.ErrNoProgress
}

// peek returns the byte under the cursor without consuming it, or the
// sentinel when the input is exhausted.
func (b *buffer) peek() byte {
	if b.cur == b.n && !b.eof && b.err == nil {
		b.fill()
	}
	return b.buf[b.cur]
}

// advance consumes one byte. It reports false if the underlying reader
// failed; reaching the end of the input is not a failure, and advancing
// there consumes nothing.
func (b *buffer) advance() bool {
	if b.cur == b.n {
		b.fill()
		if b.cur == b.n {
			return b.err == nil
		}
	}
	b.cur++
	return true
}

// atEOF reports whether the input ends within step bytes of the cursor, that
// is, whether fewer than step+1 bytes remain, buffering more input as needed
// to decide. Exhaustion by a reader failure also counts as the end; failed
// tells the difference. step must be smaller than the window size.
func (b *buffer) atEOF(step int) bool {
	for b.n-b.cur <= step && !b.eof && b.err == nil {
		b.fill()
	}
	return b.n-b.cur <= step
}

// failed reports the reader failure that ended the input, if any, wrapped
// with ReadFailed. Reaching the end of input normally is not a failure.
func (b *buffer) failed() error {
	if b.err != nil {
		return fmt.Errorf("%w: %w", ReadFailed, b.err)
	}
	return nil
}

// tell reports the absolute offset of the cursor from the start of the
// input, which is the count of bytes consumed so far.
func (b *buffer) tell() int64 { return b.base + int64(b.cur) }
