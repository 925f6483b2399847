// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jsax/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string literal. The contents are escaped and
// double quotation marks are added. Control bytes with no short escape are
// encoded as \u00XX, a form Unquote and the parser do not read back.
func Quote(src string) string {
	return `"` + string(escape.Quote(mem.S(src))) + `"`
}

// Unquote decodes a JSON string literal. Double quotation marks are removed
// and the short escape sequences are replaced with their unescaped
// equivalents. Unquote fails with InvalidString for a malformed literal and
// with UnicodeEscape for a \uXXXX escape, which this package does not
// support.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, fmt.Errorf("%w: missing quotations", InvalidString)
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if errors.Is(err, escape.ErrUnicodeEscape) {
		return nil, UnicodeEscape
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", InvalidString, err)
	}
	return dec, nil
}
