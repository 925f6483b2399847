// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"errors"
	"fmt"
)

// A Code classifies a parse or conversion failure. Codes implement the error
// interface, and every error reported by this package wraps the code that
// produced it, so a caller can match on the cause with errors.Is even when
// the error carries detail text or a position:
//
//	if errors.Is(err, jsax.ExpectedValue) { ... }
type Code byte

// Constants defining the valid Code values.
const (
	Invalid Code = iota // invalid or unclassified failure

	// Stream exhaustion and transport failures.
	UnexpectedEOF // input ended inside a value or before one was found
	ReadFailed    // the underlying reader failed with a non-EOF error

	// Structural violations.
	UnexpectedOpenBrace   // "{" pushed past the depth limit
	UnexpectedOpenBracket // "[" pushed past the depth limit
	ExpectedCloseBrace    // input ended with an object still open
	ExpectedCloseBracket  // input ended with an array still open
	ExpectedKey           // a value arrived where an object key belongs
	ExpectedValue         // a key or "}" arrived where a value belongs
	NotInObject           // "}" with no object open
	NotInArray            // "]" with no array open
	UnexpectedTopLevel    // a separator outside any container
	TreeDepthExceeded     // container nesting exceeded the limit

	// Lexical errors.
	InvalidString // malformed string or constant literal
	InvalidNumber // malformed numeric literal, or one that does not convert
	InvalidType   // a byte that begins no JSON production
	UnicodeEscape // \uXXXX escapes are not supported

	// Raised by handlers, never by the parser itself.
	ValidationFailed // a handler's own validation rejected the input
	UnexpectedEvent  // a handler does not care about an event kind
)

var codeStr = [...]string{
	Invalid: "invalid",

	UnexpectedEOF: "unexpected end of input",
	ReadFailed:    "read failed",

	UnexpectedOpenBrace:   `unexpected "{"`,
	UnexpectedOpenBracket: `unexpected "["`,
	ExpectedCloseBrace:    `expected "}"`,
	ExpectedCloseBracket:  `expected "]"`,
	ExpectedKey:           "expected object key",
	ExpectedValue:         "expected value",
	NotInObject:           "not in an object",
	NotInArray:            "not in an array",
	UnexpectedTopLevel:    "unexpected token at top level",
	TreeDepthExceeded:     "tree depth exceeded",

	InvalidString: "invalid string",
	InvalidNumber: "invalid number",
	InvalidType:   "invalid type",
	UnicodeEscape: "unsupported Unicode escape",

	ValidationFailed: "validation failed",
	UnexpectedEvent:  "unexpected event",
}

// Error satisfies the error interface.
func (c Code) Error() string {
	if int(c) >= len(codeStr) {
		return codeStr[Invalid]
	}
	return codeStr[c]
}

// A SyntaxError is the concrete type of errors reported by a parse. It wraps
// the underlying cause with the absolute byte offset at which the parser
// detected it.
type SyntaxError struct {
	Offset int64 // offset from the start of the input

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.err.Error(), e.Offset)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Code reports the failure code recorded in e, or Invalid if e does not wrap
// one.
func (e *SyntaxError) Code() Code {
	var c Code
	if errors.As(e.err, &c) {
		return c
	}
	return Invalid
}

// stampOffset wraps err in a *SyntaxError recording offset, unless err
// already carries one from a nested parse.
func stampOffset(err error, offset int64) error {
	var s *SyntaxError
	if errors.As(err, &s) {
		return err
	}
	return &SyntaxError{Offset: offset, err: err}
}
