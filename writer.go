// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jsax/internal/escape"

	"go4.org/mem"
)

// A Writer emits JSON text to an io.Writer one event at a time, mirroring
// the events a [Handler] receives: replaying the calls a parse delivers
// reproduces the document, so a Writer can be passed directly to [Parse] to
// reformat a stream. Commas and colons are supplied by the Writer itself,
// and successive top-level values are separated by newlines; the Comma
// method is a no-op kept for Handler symmetry.
//
// Misuse of the event order, such as a key outside an object or a close
// without an open, fails with the same codes the parser reports for the
// matching malformed input. Errors are sticky: after any call fails, later
// calls do nothing and report the first failure, as do Err and Close.
//
// Strings are escaped with the short escapes; control bytes with no short
// escape become \u00XX sequences, which the parsing half of this package
// does not read back.
type Writer struct {
	w     io.Writer
	depth depthStack
	nvals int // top-level values emitted, to separate them
	buf   []byte
	err   error
}

var _ Handler = (*Writer)(nil)

// NewWriter constructs a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	wr := &Writer{w: w, buf: make([]byte, 0, scratchSize)}
	wr.depth.limit = DefaultMaxDepth
	return wr
}

// Err reports the first error any earlier call failed with, or nil.
func (w *Writer) Err() error { return w.err }

// Close verifies that every opened container was closed, failing with the
// code naming the innermost open one. It does not close the underlying
// writer, and it reports the sticky error if one is pending.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if err := w.depth.checkEndOfFile(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Null writes a null literal.
func (w *Writer) Null() error { return w.literal(litNull) }

// Bool writes a true or false literal.
func (w *Writer) Bool(v bool) error {
	if v {
		return w.literal(litTrue)
	}
	return w.literal(litFalse)
}

// Number writes a numeric literal verbatim in its original base. It fails
// with InvalidNumber if n holds no text.
func (w *Writer) Number(n Number) error {
	if w.err != nil {
		return w.err
	}
	if len(n.text) == 0 {
		return w.fail(fmt.Errorf("%w: empty literal", InvalidNumber))
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = append(w.buf, n.text...)
	return w.flush()
}

// Int writes a decimal integer value.
func (w *Writer) Int(v int64) error {
	if w.err != nil {
		return w.err
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(w.buf, v, 10)
	return w.flush()
}

// Uint writes a decimal unsigned integer value.
func (w *Writer) Uint(v uint64) error {
	if w.err != nil {
		return w.err
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = strconv.AppendUint(w.buf, v, 10)
	return w.flush()
}

// Float writes a floating-point value in the shortest decimal form that
// round-trips. NaN and infinities have no JSON form and fail with
// InvalidNumber.
func (w *Writer) Float(v float64) error {
	if w.err != nil {
		return w.err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return w.fail(fmt.Errorf("%w: %v", InvalidNumber, v))
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = strconv.AppendFloat(w.buf, v, 'g', -1, 64)
	return w.flush()
}

// String writes a string value, quoted and escaped.
func (w *Writer) String(text []byte) error {
	if w.err != nil {
		return w.err
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.appendQuoted(text)
	return w.flush()
}

// Key writes an object key and its colon, preceded by a comma when the
// object already has members.
func (w *Writer) Key(name []byte) error {
	if w.err != nil {
		return w.err
	}
	sep := false
	if top := w.depth.top(); top != nil {
		sep = top.count > 0
	}
	if err := w.depth.addKey(); err != nil {
		return w.fail(err)
	}
	if sep {
		w.buf = append(w.buf, ',')
	}
	w.appendQuoted(name)
	w.buf = append(w.buf, ':')
	return w.flush()
}

// StartObject writes an opening brace.
func (w *Writer) StartObject() error {
	if w.err != nil {
		return w.err
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.depth.addObject(); err != nil {
		return w.fail(err)
	}
	w.buf = append(w.buf, '{')
	return w.flush()
}

// EndObject writes a closing brace. The pair count exists to mirror Handler
// and is otherwise ignored.
func (w *Writer) EndObject(int) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.depth.popObject(); err != nil {
		return w.fail(err)
	}
	w.buf = append(w.buf, '}')
	return w.flush()
}

// StartArray writes an opening bracket.
func (w *Writer) StartArray() error {
	if w.err != nil {
		return w.err
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.depth.addArray(); err != nil {
		return w.fail(err)
	}
	w.buf = append(w.buf, '[')
	return w.flush()
}

// EndArray writes a closing bracket. The element count exists to mirror
// Handler and is otherwise ignored.
func (w *Writer) EndArray(int) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.depth.popArray(); err != nil {
		return w.fail(err)
	}
	w.buf = append(w.buf, ']')
	return w.flush()
}

// Comma is a no-op; the Writer supplies separators itself.
func (w *Writer) Comma() error { return w.err }

func (w *Writer) literal(lit mem.RO) error {
	if w.err != nil {
		return w.err
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = mem.Append(w.buf, lit)
	return w.flush()
}

// beforeValue validates that a value may occur at the current position and
// appends the separator it needs: a comma between array elements, a newline
// between top-level values. Object members get their separator from Key.
func (w *Writer) beforeValue() error {
	var sep byte
	if top := w.depth.top(); top == nil {
		if w.nvals > 0 {
			sep = '\n'
		}
		w.nvals++
	} else if !top.object && top.count > 0 {
		sep = ','
	}
	if err := w.depth.addValue(); err != nil {
		return w.fail(err)
	}
	if sep != 0 {
		w.buf = append(w.buf, sep)
	}
	return nil
}

func (w *Writer) appendQuoted(text []byte) {
	w.buf = append(w.buf, '"')
	w.buf = append(w.buf, escape.Quote(mem.B(text))...)
	w.buf = append(w.buf, '"')
}

// flush writes the text of one completed event.
func (w *Writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	_, err := w.w.Write(w.buf)
	w.buf = w.buf[:0]
	if err != nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) fail(err error) error {
	w.buf = w.buf[:0]
	w.err = err
	return err
}
