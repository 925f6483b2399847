// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"fmt"
	"strings"

	"go4.org/mem"
)

// The methods in this file are the lexer primitives the parser is built
// from: single-byte reads and skips, literal matching, and predicate-driven
// scans, all over the document's read window.

// checkNoEOS fails with UnexpectedEOF if the input ends within step bytes of
// the cursor, or with ReadFailed if the underlying reader broke.
func (d *Document) checkNoEOS(step int) error {
	if d.in.atEOF(step) {
		if err := d.in.failed(); err != nil {
			return err
		}
		return UnexpectedEOF
	}
	return nil
}

// take returns the byte under the cursor and consumes it.
// Precondition: the input is not exhausted.
func (d *Document) take() byte {
	c := d.in.peek()
	d.in.advance()
	return c
}

// tryTake is take with an end-of-input guard.
func (d *Document) tryTake() (byte, error) {
	if err := d.checkNoEOS(0); err != nil {
		return 0, err
	}
	return d.take(), nil
}

// skip consumes the byte under the cursor iff it equals c, and reports
// whether it did.
func (d *Document) skip(c byte) bool {
	if d.in.peek() == c {
		d.in.advance()
		return true
	}
	return false
}

// skipString consumes the bytes of lit in order, failing with InvalidString
// and the caller's message on the first byte that does not match. Running
// out of input mid-literal is a mismatch, not an EOF error.
// skipString panics if lit is empty.
func (d *Document) skipString(lit mem.RO, msg string) error {
	if lit.Len() == 0 {
		panic("skipString: empty literal")
	}
	for i := 0; i < lit.Len(); i++ {
		if !d.skip(lit.At(i)) {
			return fmt.Errorf("%w: %s", InvalidString, msg)
		}
	}
	return nil
}

// skipSpace consumes spaces, tabs, carriage returns, and newlines.
func (d *Document) skipSpace() {
	for {
		switch d.in.peek() {
		case ' ', '\t', '\r', '\n':
			d.in.advance()
		default:
			return
		}
	}
}

// doWhile applies action to each byte under the cursor for as long as pred
// accepts it, consuming as it goes. It stops quietly at the end of input.
func (d *Document) doWhile(pred func(byte) bool, action func(byte)) {
	for !d.in.atEOF(0) {
		c := d.in.peek()
		if !pred(c) {
			return
		}
		action(c)
		d.in.advance()
	}
}

// doIf applies action to the byte under the cursor iff pred accepts it,
// consuming the byte when it does, and reports whether it did.
// doIf panics at the end of input; callers must check first.
func (d *Document) doIf(pred func(byte) bool, action func(byte)) bool {
	if d.in.atEOF(0) {
		panic("doIf: at end of input")
	}
	c := d.in.peek()
	if !pred(c) {
		return false
	}
	action(c)
	d.in.advance()
	return true
}

// pushIfAny consumes the byte under the cursor and appends it to *buf iff it
// is one of the bytes of charset, and reports whether it did.
func (d *Document) pushIfAny(buf *[]byte, charset string) bool {
	c := d.in.peek()
	if strings.IndexByte(charset, c) < 0 {
		return false
	}
	*buf = append(*buf, c)
	d.in.advance()
	return true
}

// pushLit appends one byte to the literal scratch buffer; it is the action
// of the scanning loops.
func (d *Document) pushLit(c byte) { d.lit = append(d.lit, c) }

func isDigit(c byte) bool      { return '0' <= c && c <= '9' }
func isOctalDigit(c byte) bool { return '0' <= c && c <= '7' }
func isOctalStart(c byte) bool { return '1' <= c && c <= '7' }
func isNumStart(c byte) bool   { return c == '-' || isDigit(c) }

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isValueStart(c byte) bool {
	switch c {
	case 'n', 't', 'f', '"', '{', '[':
		return true
	}
	return isNumStart(c)
}
