// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the escaping and unescaping of JSON strings,
// limited to the short escape sequences \" \\ \b \f \n \r \t.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrUnicodeEscape is reported by Unquote for \uXXXX escapes, which this
// package does not decode.
var ErrUnicodeEscape = errors.New("unsupported Unicode escape")

// Short maps an escape letter (the byte following a backslash) to the byte
// it denotes, or zero if the letter does not name a short escape.
var Short = [256]byte{
	'"':  '"',
	'\\': '\\',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// letter maps a control byte to its escape letter, or zero if the byte has
// no short escape.
var letter = [' ']byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src for inclusion in a JSON string literal, without the
// enclosing quotation marks. Quotation marks and backslashes are escaped,
// control bytes without a short escape are written as \u00XX, and all other
// runes pass through unchanged.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r >= utf8.RuneSelf {
			var rbuf [utf8.UTFMax]byte
			w := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:w]...)
			src = src.SliceFrom(n)
			continue
		}
		switch b := byte(r); {
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
		case b >= ' ':
			buf = append(buf, b)
		case letter[b] != 0:
			buf = append(buf, '\\', letter[b])
		default:
			buf = append(buf, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
		}
		src = src.SliceFrom(n)
	}
	return buf
}

// Unquote decodes a byte slice containing the JSON encoding of a string, with
// the enclosing quotation marks already removed.
//
// Only the short escapes are decoded. Unquote reports an error for an
// incomplete escape, for an escape letter outside the short set, and for
// Unicode (\uXXXX) escapes, which this package does not support.
func Unquote(src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(nil, src), nil
	}
	dec := make([]byte, 0, src.Len())
	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		c := src.At(0)
		if c == 'u' {
			return nil, ErrUnicodeEscape
		}
		b := Short[c]
		if b == 0 {
			return nil, fmt.Errorf("invalid escape sequence %q", "\\"+string(c))
		}
		dec = append(dec, b)
		src = src.SliceFrom(1)

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
	}
}
