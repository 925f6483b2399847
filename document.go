// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import "io"

const scratchSize = 64

// A Document is the mutable state of one parse session: a read window over
// the input, the stack of open containers, and scratch storage for the token
// in progress. Construct a Document over a reader, hand it to a [Parser],
// and discard both when the parse is done; the reader is borrowed for the
// lifetime of the Document and is left positioned after the last byte the
// parser consumed.
//
// A Document is not safe for concurrent use. Parse independent streams with
// independent Documents.
type Document struct {
	in    *buffer
	depth depthStack

	key []byte // current object key, exposed via Key
	lit []byte // string or number literal in progress
}

// NewDocument constructs a Document reading from r with the default window
// size.
func NewDocument(r io.Reader) *Document { return NewDocumentSize(r, defaultWindowSize) }

// NewDocumentSize constructs a Document whose read window holds size bytes.
// Sizes below the minimum are raised to it.
func NewDocumentSize(r io.Reader, size int) *Document {
	d := &Document{
		in:  newBuffer(r, size),
		key: make([]byte, 0, scratchSize),
		lit: make([]byte, 0, scratchSize),
	}
	d.depth.limit = DefaultMaxDepth
	return d
}

// SetMaxDepth sets the deepest container nesting the parser will admit for
// this document. It panics if limit < 1.
func (d *Document) SetMaxDepth(limit int) {
	if limit < 1 {
		panic("non-positive depth limit")
	}
	d.depth.limit = limit
}

// Offset reports the absolute byte offset of the next unconsumed input byte.
func (d *Document) Offset() int64 { return d.in.tell() }

// Key returns the most recent object key. The slice aliases the Document's
// scratch storage and is only valid until the next key is parsed; copy it if
// it must be retained.
func (d *Document) Key() []byte { return d.key }
