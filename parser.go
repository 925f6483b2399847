// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jsax/internal/escape"

	"go4.org/mem"
)

var (
	litNull  = mem.S("null")
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
)

// A Parser drives a [Document] through the JSON grammar, delivering one
// event per token to a [Handler]. Values follow the grammar of RFC 8259
// with two deviations: integers may be written in hexadecimal (0x1F) or
// octal (017) notation, and Unicode \uXXXX escapes are rejected.
//
// A Parser is as single-threaded as its Document; drive each Document with
// one Parser at a time.
type Parser struct {
	doc *Document
}

// NewParser constructs a Parser over doc.
func NewParser(doc *Document) *Parser { return &Parser{doc: doc} }

// Parse parses the input from r with default document settings, delivering
// events to h. It is shorthand for constructing a Document and a Parser.
func Parse(r io.Reader, h Handler) error {
	return NewParser(NewDocument(r)).Parse(h)
}

// Parse consumes the document to the end of its input, delivering events to
// h. The input must hold at least one value; parsing stops early without
// error if a handler method returns [Stop].
//
// Errors are returned as a [*SyntaxError] wrapping the failure code, so both
// the cause and the input offset survive:
//
//	var serr *jsax.SyntaxError
//	if errors.As(err, &serr) { ... serr.Offset ... }
func (p *Parser) Parse(h Handler) error {
	if err := p.parse(h); err != nil {
		return stampOffset(err, p.doc.Offset())
	}
	return nil
}

// SubParse is Parse for a parser invoked from inside another parser's
// handler: it parses from the document's current position the same way, but
// leaves the error annotation to the outermost Parse so the offset is
// stamped once. A handler for the inner parser conventionally returns Stop
// when the value it was dispatched for is complete; the enclosing parse then
// resumes where the inner one left off.
func (p *Parser) SubParse(h Handler) error { return p.parse(h) }

func (p *Parser) parse(h Handler) error {
	d := p.doc
	d.skipSpace()
	if err := d.checkNoEOS(0); err != nil {
		return err
	}
	for {
		if err := p.parseNext(h); err != nil {
			if errors.Is(err, Stop) {
				return nil
			}
			return err
		}
		d.skipSpace()
		if d.in.atEOF(0) {
			if err := d.in.failed(); err != nil {
				return err
			}
			return d.depth.checkEndOfFile()
		}
	}
}

// parseNext dispatches on the byte under the cursor to the production it
// begins.
// Precondition: the cursor is on a non-space byte and input remains.
func (p *Parser) parseNext(h Handler) error {
	c := p.doc.in.peek()
	switch c {
	case 'n':
		return p.parseConstant(litNull, "null literal", h.Null)
	case 't':
		return p.parseConstant(litTrue, "true literal", func() error { return h.Bool(true) })
	case 'f':
		return p.parseConstant(litFalse, "false literal", func() error { return h.Bool(false) })
	case '"':
		return p.parseString(h)
	case '{':
		return p.parseStartObject(h)
	case '}':
		return p.parseEndObject(h)
	case '[':
		return p.parseStartArray(h)
	case ']':
		return p.parseEndArray(h)
	case ',':
		return p.parseComma(h)
	}
	if isNumStart(c) {
		return p.parseNumber(h)
	}
	return fmt.Errorf("%w: %q", InvalidType, c)
}

// emit delivers one event outcome from a handler. UnexpectedEvent means the
// handler does not care about this event kind; the parse continues.
func emit(err error) error {
	if errors.Is(err, UnexpectedEvent) {
		return nil
	}
	return err
}

// parseConstant consumes one of the constants null, true, or false and
// emits the corresponding event.
func (p *Parser) parseConstant(lit mem.RO, msg string, event func() error) error {
	if err := p.doc.skipString(lit, msg); err != nil {
		return err
	}
	if err := p.doc.depth.addValue(); err != nil {
		return err
	}
	return emit(event())
}

// parseString parses a quoted string and classifies it: a string followed by
// a colon is an object key, anything else is a value.
// Precondition: the cursor is on '"'.
func (p *Parser) parseString(h Handler) error {
	d := p.doc
	if err := p.scanString(); err != nil {
		return err
	}
	d.skipSpace()
	if d.skip(':') {
		if err := d.depth.addKey(); err != nil {
			return err
		}
		d.key, d.lit = d.lit, d.key
		return emit(h.Key(d.key))
	}
	if err := d.depth.addValue(); err != nil {
		return err
	}
	return emit(h.String(d.lit))
}

// scanString consumes a quoted string, decoding its escapes into the literal
// scratch buffer.
// Precondition: the cursor is on '"'.
func (p *Parser) scanString() error {
	d := p.doc
	d.take() // opening quotation mark
	d.lit = d.lit[:0]
	for {
		if err := d.checkNoEOS(0); err != nil {
			return err
		}
		switch c := d.take(); {
		case c == '"':
			return nil
		case c == '\\':
			e, err := d.tryTake()
			if err != nil {
				return err
			}
			if e == 'u' {
				return UnicodeEscape
			}
			b := escape.Short[e]
			if b == 0 {
				return fmt.Errorf("%w: invalid %q after escape", InvalidString, e)
			}
			d.lit = append(d.lit, b)
		case c < ' ':
			return fmt.Errorf("%w: unescaped control %q", InvalidString, c)
		default:
			d.lit = append(d.lit, c)
		}
	}
}

// parseNumber parses a numeric literal and reports it as a lazily converted
// [Number].
// Precondition: the cursor is on '-' or a digit.
func (p *Parser) parseNumber(h Handler) error {
	base, err := p.scanNumber()
	if err != nil {
		return err
	}
	if err := p.doc.depth.addValue(); err != nil {
		return err
	}
	return emit(h.Number(Number{text: p.doc.lit, base: base}))
}

// scanNumber consumes a numeric literal into the scratch buffer and reports
// its detected base. A leading zero selects the base: 0x or 0X opens a
// hexadecimal literal, a digit 1-7 an octal one, and a point or exponent a
// float; a bare 0 is decimal.
// Precondition: the cursor is on '-' or a digit.
func (p *Parser) scanNumber() (Base, error) {
	d := p.doc
	d.lit = d.lit[:0]
	d.pushIfAny(&d.lit, "-")
	if err := d.checkNoEOS(0); err != nil {
		return Dec, err
	}
	if d.pushIfAny(&d.lit, "0") {
		switch {
		case d.pushIfAny(&d.lit, "xX"):
			mark := len(d.lit)
			d.doWhile(isHexDigit, d.pushLit)
			if len(d.lit) == mark {
				return Hex, fmt.Errorf("%w: missing hex digits", InvalidNumber)
			}
			return Hex, nil
		case isOctalStart(d.in.peek()):
			d.doWhile(isOctalDigit, d.pushLit)
			if isDigit(d.in.peek()) {
				return Oct, fmt.Errorf("%w: invalid octal digit %q", InvalidNumber, d.in.peek())
			}
			return Oct, nil
		case isDigit(d.in.peek()):
			return Dec, fmt.Errorf("%w: redundant leading zero", InvalidNumber)
		}
	} else {
		if !d.doIf(isDigit, d.pushLit) {
			return Dec, fmt.Errorf("%w: want digit, got %q", InvalidNumber, d.in.peek())
		}
		d.doWhile(isDigit, d.pushLit)
	}

	// A fraction or exponent makes the literal a float.
	base := Dec
	if d.pushIfAny(&d.lit, ".") {
		mark := len(d.lit)
		d.doWhile(isDigit, d.pushLit)
		if len(d.lit) == mark {
			return Float, fmt.Errorf("%w: no digits after decimal point", InvalidNumber)
		}
		base = Float
	}
	if d.pushIfAny(&d.lit, "eE") {
		d.pushIfAny(&d.lit, "+-")
		mark := len(d.lit)
		d.doWhile(isDigit, d.pushLit)
		if len(d.lit) == mark {
			return Float, fmt.Errorf("%w: missing exponent digits", InvalidNumber)
		}
		base = Float
	}
	return base, nil
}

// parseStartObject consumes an opening brace. The object counts as one value
// in its enclosing container, so that registration precedes the push.
func (p *Parser) parseStartObject(h Handler) error {
	d := p.doc
	d.take()
	if err := d.depth.addValue(); err != nil {
		return err
	}
	if err := d.depth.addObject(); err != nil {
		return err
	}
	return emit(h.StartObject())
}

// parseEndObject consumes a closing brace and reports the pair count.
func (p *Parser) parseEndObject(h Handler) error {
	p.doc.take()
	n, err := p.doc.depth.popObject()
	if err != nil {
		return err
	}
	return emit(h.EndObject(n))
}

// parseStartArray consumes an opening bracket; see parseStartObject for the
// registration order.
func (p *Parser) parseStartArray(h Handler) error {
	d := p.doc
	d.take()
	if err := d.depth.addValue(); err != nil {
		return err
	}
	if err := d.depth.addArray(); err != nil {
		return err
	}
	return emit(h.StartArray())
}

// parseEndArray consumes a closing bracket and reports the element count.
func (p *Parser) parseEndArray(h Handler) error {
	p.doc.take()
	n, err := p.doc.depth.popArray()
	if err != nil {
		return err
	}
	return emit(h.EndArray(n))
}

// parseComma consumes a separator, which must occur inside a container and
// must be followed by another value or key.
func (p *Parser) parseComma(h Handler) error {
	d := p.doc
	d.take()
	if err := d.depth.checkNonEmpty(); err != nil {
		return err
	}
	if err := emit(h.Comma()); err != nil {
		return err
	}
	d.skipSpace()
	if err := d.checkNoEOS(0); err != nil {
		return err
	}
	if c := d.in.peek(); !isValueStart(c) {
		return fmt.Errorf("%w: %q", InvalidType, c)
	}
	return p.parseNext(h)
}
