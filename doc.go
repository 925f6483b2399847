// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jsax implements an event-driven streaming parser for JSON.
//
// The parser reads its input incrementally through a fixed-size window and
// reports the structure of the document as a sequence of events, one per
// token, without materializing a syntax tree. Documents of any size parse in
// constant memory, bounded by the window, the scratch space for the largest
// single token, and the container nesting depth.
//
// # Parsing
//
// A Document owns the state of one parse: the read window over an io.Reader
// and the stack of open containers. A Parser drives the Document and
// delivers events to a Handler:
//
//	doc := jsax.NewDocument(input)
//	if err := jsax.NewParser(doc).Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The package-level Parse function wraps the two constructions for the
// common case. Parse returns nil if the input was fully processed without
// error; otherwise the error is a *SyntaxError wrapping a Code that
// identifies the cause, and errors.Is can match either:
//
//	if errors.Is(err, jsax.UnicodeEscape) {
//	   log.Print("input uses \\u escapes")
//	}
//
// # Handlers
//
// The Handler interface receives the parser's events. Its methods correspond
// to the syntax of JSON values:
//
//	JSON type  | Methods                  | Description
//	---------- | ------------------------ | ---------------------------------
//	object     | StartObject, EndObject   | { ... }
//	array      | StartArray, EndArray     | [ ... ]
//	key        | Key                      | "key" before a colon
//	value      | Null, Bool, Number,      | null, true, false, number,
//	           | String                   | string
//	separator  | Comma                    | "," between members or elements
//
// The parser guarantees Start and End calls are correctly paired and that
// keys alternate with values inside objects; End calls receive the number of
// values their container held. Byte slices passed to a handler alias the
// Document's scratch storage and are only valid for the duration of the
// call.
//
// A handler implements only the methods it cares about by embedding Ignore,
// whose methods decline every event. Returning Stop from any method ends the
// parse successfully with the remaining input unconsumed. A handler may also
// parse the value it was dispatched for itself: construct a second Parser
// over the same Document and call SubParse, which consumes events up to the
// point its own handler returns Stop and then hands control back to the
// enclosing parse.
//
// # Numbers
//
// Numeric literals are delivered as a Number, which retains the raw text and
// the base the literal was written in rather than committing to a width at
// parse time. In addition to the decimal forms of RFC 8259, integers may be
// written in hexadecimal with an 0x prefix or octal with a leading 0; the
// typed conversions honor the base:
//
//	n.Uint64()  // 0x1F -> 31
//
// # Limits
//
// The parser deliberately does not decode \uXXXX escapes; inputs using them
// fail with UnicodeEscape. Container nesting is bounded, by default to
// DefaultMaxDepth levels, and deeper input fails with TreeDepthExceeded.
//
// # Writing
//
// The Writer type is the reverse of the parser: its methods mirror Handler,
// translating a stream of events back into JSON text. A Writer can be used
// directly as the Handler of a parse to re-emit a document.
package jsax
