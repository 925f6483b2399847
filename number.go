// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"fmt"
	"strconv"
)

// Base identifies the notation a numeric literal was written in.
type Base byte

// Constants defining the valid Base values.
const (
	Dec   Base = iota // decimal integer
	Hex               // hexadecimal integer with an 0x or 0X prefix
	Oct               // octal integer with a leading 0
	Float             // fraction and/or exponent
)

var baseStr = [...]string{
	Dec:   "decimal",
	Hex:   "hexadecimal",
	Oct:   "octal",
	Float: "float",
}

func (b Base) String() string {
	if int(b) >= len(baseStr) {
		return "invalid"
	}
	return baseStr[b]
}

// A Number is the raw text of a numeric literal together with its detected
// base. The literal is not converted until one of the typed conversions is
// called, so the consumer chooses the width; conversion does not modify the
// wrapper, and repeated conversions of the same Number agree.
//
// A Number delivered to a [Handler] aliases its document's scratch storage
// and is only valid for the duration of the call. Use Copy to retain one.
type Number struct {
	text []byte
	base Base
}

// Text returns the raw text of the literal. For a Number delivered to a
// Handler, the slice aliases scratch storage; see the type comment.
func (n Number) Text() []byte { return n.text }

// String returns the raw text of the literal as a string.
func (n Number) String() string { return string(n.text) }

// Base reports the notation the literal was written in.
func (n Number) Base() Base { return n.base }

// Copy returns a Number equal to n that does not alias scratch storage.
func (n Number) Copy() Number {
	return Number{text: append([]byte(nil), n.text...), base: n.base}
}

// Int64 converts the literal to a signed 64-bit integer, honoring its base.
// It fails with InvalidNumber if the literal has a fraction or exponent, or
// does not fit.
func (n Number) Int64() (int64, error) {
	v, err := strconv.ParseInt(n.String(), 0, 64)
	if err != nil {
		return 0, n.convErr("int64")
	}
	return v, nil
}

// Uint64 converts the literal to an unsigned 64-bit integer, honoring its
// base. It fails with InvalidNumber if the literal is negative, has a
// fraction or exponent, or does not fit.
func (n Number) Uint64() (uint64, error) {
	v, err := strconv.ParseUint(n.String(), 0, 64)
	if err != nil {
		return 0, n.convErr("uint64")
	}
	return v, nil
}

// Byte converts the literal to an unsigned 8-bit integer, honoring its base.
func (n Number) Byte() (byte, error) {
	v, err := strconv.ParseUint(n.String(), 0, 8)
	if err != nil {
		return 0, n.convErr("byte")
	}
	return byte(v), nil
}

// Float64 converts the literal to a 64-bit float. Hexadecimal and octal
// literals convert through their integer value.
func (n Number) Float64() (float64, error) {
	if n.base == Hex || n.base == Oct {
		v, err := strconv.ParseInt(n.String(), 0, 64)
		if err != nil {
			return 0, n.convErr("float64")
		}
		return float64(v), nil
	}
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, n.convErr("float64")
	}
	return v, nil
}

// Bool converts the literal to a boolean: 0 is false and 1 is true. Any
// other literal fails with InvalidNumber.
func (n Number) Bool() (bool, error) {
	switch n.String() {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, n.convErr("bool")
}

func (n Number) convErr(want string) error {
	return fmt.Errorf("%w: %q as %s", InvalidNumber, n.text, want)
}
