// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"errors"
	"fmt"
)

// A Handler receives the events of a parse, one method call per token in
// document order. The parser ensures Start and End calls are correctly
// paired and that keys and values alternate inside objects, so a handler
// needs no structural bookkeeping of its own.
//
// Byte-slice arguments alias the document's scratch storage and are only
// valid for the duration of the call; a handler that retains them must copy.
//
// A handler method controls the parse with its return value: nil continues,
// [Stop] ends the parse successfully, UnexpectedEvent declares the handler
// uninterested in that event kind and continues, and any other error aborts
// the parse and is returned to the caller. Embed [Ignore] to implement only
// the events a handler cares about.
type Handler interface {
	// Null reports a null literal.
	Null() error

	// Bool reports a true or false literal.
	Bool(v bool) error

	// Number reports a numeric literal; see [Number] for its aliasing rules.
	Number(n Number) error

	// String reports a string value with its escapes decoded.
	String(text []byte) error

	// Key reports an object key with its escapes decoded.
	Key(name []byte) error

	// StartObject reports an opening brace.
	StartObject() error

	// EndObject reports a closing brace and the number of key-value pairs the
	// object held.
	EndObject(n int) error

	// StartArray reports an opening bracket.
	StartArray() error

	// EndArray reports a closing bracket and the number of elements the array
	// held.
	EndArray(n int) error

	// Comma reports a separator between members or elements.
	Comma() error
}

// Stop is the sentinel a handler returns to end a parse early. The parser
// treats it as success: Parse returns nil and the rest of the input is left
// unconsumed on the document.
var Stop = errors.New("stop the parse")

// Ignore is a Handler that reports UnexpectedEvent from every method, which
// the parser takes as "not interested" and skips past. Embed it to build
// handlers that implement a subset of the events.
type Ignore struct{}

func (Ignore) Null() error         { return UnexpectedEvent }
func (Ignore) Bool(bool) error     { return UnexpectedEvent }
func (Ignore) Number(Number) error { return UnexpectedEvent }
func (Ignore) String([]byte) error { return UnexpectedEvent }
func (Ignore) Key([]byte) error    { return UnexpectedEvent }
func (Ignore) StartObject() error  { return UnexpectedEvent }
func (Ignore) EndObject(int) error { return UnexpectedEvent }
func (Ignore) StartArray() error   { return UnexpectedEvent }
func (Ignore) EndArray(int) error  { return UnexpectedEvent }
func (Ignore) Comma() error        { return UnexpectedEvent }

// LevelValidator returns a Handler that forwards every event to h but fails
// the parse with ValidationFailed if a value nests more than one container
// deep: the outermost object or array and its immediate members are
// admitted, anything deeper is rejected.
func LevelValidator(h Handler) Handler { return &levelValidator{h: h} }

type levelValidator struct {
	h     Handler
	depth int
}

func (v *levelValidator) enter() error {
	v.depth++
	if v.depth > 1 {
		return fmt.Errorf("%w: value nested %d levels deep", ValidationFailed, v.depth)
	}
	return nil
}

func (v *levelValidator) Null() error              { return v.h.Null() }
func (v *levelValidator) Bool(b bool) error        { return v.h.Bool(b) }
func (v *levelValidator) Number(n Number) error    { return v.h.Number(n) }
func (v *levelValidator) String(text []byte) error { return v.h.String(text) }
func (v *levelValidator) Key(name []byte) error    { return v.h.Key(name) }
func (v *levelValidator) Comma() error             { return v.h.Comma() }

func (v *levelValidator) StartObject() error {
	if err := v.enter(); err != nil {
		return err
	}
	return v.h.StartObject()
}

func (v *levelValidator) EndObject(n int) error {
	v.depth--
	return v.h.EndObject(n)
}

func (v *levelValidator) StartArray() error {
	if err := v.enter(); err != nil {
		return err
	}
	return v.h.StartArray()
}

func (v *levelValidator) EndArray(n int) error {
	v.depth--
	return v.h.EndArray(n)
}
