// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jsax"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`null`, `Null`},
		{`true false null`, `
Bool true
Bool false
Null`},

		{`0 5 -6 -6.32 0.1e-2 1e5`, `
Number decimal "0"
Number decimal "5"
Number decimal "-6"
Number float "-6.32"
Number float "0.1e-2"
Number float "1e5"`},

		{`0x1F 0755 -0x10 0.5`, `
Number hexadecimal "0x1F"
Number octal "0755"
Number hexadecimal "-0x10"
Number float "0.5"`},

		{`"" "a b c" "a\tb\"c\\d"`, `
String ""
String "a b c"
String "a\tb\"c\\d"`},

		{`{}`, "StartObject\nEndObject 0"},
		{`[]`, "StartArray\nEndArray 0"},

		{`{"a":1,"b":[true,false]}`, `
StartObject
Key "a"
Number decimal "1"
Comma
Key "b"
StartArray
Bool true
Comma
Bool false
EndArray 2
EndObject 2`},

		{`{"x":null, "y":[true]}`, `
StartObject
Key "x"
Null
Comma
Key "y"
StartArray
Bool true
EndArray 1
EndObject 2`},

		{"\n\t{ \"a\" : 1 }\r\n", `
StartObject
Key "a"
Number decimal "1"
EndObject 1`},

		{`[[[]]]`, `
StartArray
StartArray
StartArray
EndArray 0
EndArray 1
EndArray 1`},

		// A separator with nothing before it is tolerated inside a container;
		// only the stack and the token after it are validated.
		{`[,1]`, `
StartArray
Comma
Number decimal "1"
EndArray 1`},
	}

	for _, test := range tests {
		th := new(testHandler)
		if err := jsax.Parse(strings.NewReader(test.input), th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}
		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nEvents: (-want, +got)\n%s", test.input, diff)
		}
	}
}

// Parsing must not depend on how the reader chops up the input, only on its
// contents.
func TestParse_shortReads(t *testing.T) {
	const input = `{"alpha":1,"beta":[true,null,"g\tamma"],"delta":{"x":-0.25,"y":0x1F}}`
	const want = `
StartObject
Key "alpha"
Number decimal "1"
Comma
Key "beta"
StartArray
Bool true
Comma
Null
Comma
String "g\tamma"
EndArray 3
Comma
Key "delta"
StartObject
Key "x"
Number float "-0.25"
Comma
Key "y"
Number hexadecimal "0x1F"
EndObject 2
EndObject 3`

	readers := map[string]func() io.Reader{
		"Plain":   func() io.Reader { return strings.NewReader(input) },
		"OneByte": func() io.Reader { return iotest.OneByteReader(strings.NewReader(input)) },
		"DataErr": func() io.Reader { return iotest.DataErrReader(strings.NewReader(input)) },
	}
	for name, mk := range readers {
		t.Run(name, func(t *testing.T) {
			doc := jsax.NewDocumentSize(mk(), 16)
			th := new(testHandler)
			if err := jsax.NewParser(doc).Parse(th); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := diffStrings(want, th.output()); diff != "" {
				t.Errorf("Events: (-want, +got)\n%s", diff)
			}
			if got, want := doc.Offset(), int64(len(input)); got != want {
				t.Errorf("Offset: got %d, want %d", got, want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		code   jsax.Code
		offset int64
	}{
		// Exhausted input.
		{``, jsax.UnexpectedEOF, 0},
		{`   `, jsax.UnexpectedEOF, 3},
		{`"abc`, jsax.UnexpectedEOF, 4},
		{`"ab\`, jsax.UnexpectedEOF, 4},
		{`-`, jsax.UnexpectedEOF, 1},

		// Structural violations.
		{`{"a":}`, jsax.ExpectedValue, 6},
		{`"a": 1`, jsax.ExpectedValue, 4},
		{`{null:1}`, jsax.ExpectedKey, 5},
		{`{"a" "b"}`, jsax.ExpectedKey, 5},
		{`}`, jsax.NotInObject, 1},
		{`[}`, jsax.NotInObject, 2},
		{`]`, jsax.NotInArray, 1},
		{`{]`, jsax.NotInArray, 2},
		{`1,2`, jsax.UnexpectedTopLevel, 2},
		{`{"a":1`, jsax.ExpectedCloseBrace, 6},
		{`[1`, jsax.ExpectedCloseBracket, 2},

		// Malformed constants.
		{`tru`, jsax.InvalidString, 3},
		{`truth`, jsax.InvalidString, 3},
		{`nul`, jsax.InvalidString, 3},
		{`falze`, jsax.InvalidString, 3},

		// Malformed strings.
		{`"a\qb"`, jsax.InvalidString, 4},
		{"\"a\x01b\"", jsax.InvalidString, 3},
		{`"\u0041"`, jsax.UnicodeEscape, 3},

		// Malformed numbers.
		{`0x`, jsax.InvalidNumber, 2},
		{`0xZ`, jsax.InvalidNumber, 2},
		{`08`, jsax.InvalidNumber, 1},
		{`00`, jsax.InvalidNumber, 1},
		{`0758`, jsax.InvalidNumber, 3},
		{`1.`, jsax.InvalidNumber, 2},
		{`1e+`, jsax.InvalidNumber, 3},
		{`-x`, jsax.InvalidNumber, 1},

		// Bytes that begin no production.
		{`#`, jsax.InvalidType, 0},
		{`[1, #]`, jsax.InvalidType, 4},
		{`[1,,2]`, jsax.InvalidType, 3},
		{`{,}`, jsax.InvalidType, 2},
	}

	for _, test := range tests {
		err := jsax.Parse(strings.NewReader(test.input), new(testHandler))
		checkSyntaxError(t, test.input, err, test.code, test.offset)
	}
}

func TestMaxDepth(t *testing.T) {
	parseDepth := func(limit, depth int) error {
		input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
		doc := jsax.NewDocument(strings.NewReader(input))
		doc.SetMaxDepth(limit)
		return jsax.NewParser(doc).Parse(new(testHandler))
	}

	// A limit of n admits exactly n nested openings.
	if err := parseDepth(3, 3); err != nil {
		t.Errorf("Parse at depth limit failed: %v", err)
	}
	err := parseDepth(3, 4)
	checkSyntaxError(t, "[[[[]]]]", err, jsax.UnexpectedOpenBracket, 4)
	if !errors.Is(err, jsax.TreeDepthExceeded) {
		t.Errorf("Error %v does not match TreeDepthExceeded", err)
	}

	if err := parseDepth(jsax.DefaultMaxDepth, jsax.DefaultMaxDepth); err != nil {
		t.Errorf("Parse at default depth limit failed: %v", err)
	}
	if err := parseDepth(jsax.DefaultMaxDepth, jsax.DefaultMaxDepth+1); !errors.Is(err, jsax.TreeDepthExceeded) {
		t.Errorf("Parse past default depth limit: got %v, want TreeDepthExceeded", err)
	}

	// Objects report their own opening code at the limit.
	doc := jsax.NewDocument(strings.NewReader(`{"a":{}}`))
	doc.SetMaxDepth(1)
	err = jsax.NewParser(doc).Parse(new(testHandler))
	if !errors.Is(err, jsax.UnexpectedOpenBrace) || !errors.Is(err, jsax.TreeDepthExceeded) {
		t.Errorf("Parse: got %v, want UnexpectedOpenBrace wrapping TreeDepthExceeded", err)
	}
}

func TestReadFailure(t *testing.T) {
	t.Run("Immediate", func(t *testing.T) {
		broken := errors.New("broken pipe")
		err := jsax.Parse(iotest.ErrReader(broken), new(testHandler))
		checkSyntaxError(t, "(broken)", err, jsax.ReadFailed, 0)
		if !errors.Is(err, broken) {
			t.Errorf("Error %v does not wrap the reader failure", err)
		}
	})

	// TimeoutReader fails on the second read, after the window drains.
	t.Run("MidStream", func(t *testing.T) {
		r := iotest.TimeoutReader(strings.NewReader(`{"a":1}`))
		err := jsax.NewParser(jsax.NewDocumentSize(r, 16)).Parse(new(testHandler))
		if !errors.Is(err, jsax.ReadFailed) || !errors.Is(err, iotest.ErrTimeout) {
			t.Errorf("Parse: got %v, want ReadFailed wrapping ErrTimeout", err)
		}
	})
}

// stopAfterKey stops the parse as soon as any object key has been seen.
type stopAfterKey struct {
	jsax.Ignore
	key string
}

func (s *stopAfterKey) Key(name []byte) error {
	s.key = string(name)
	return jsax.Stop
}

func TestStop(t *testing.T) {
	const input = `{"a":1,"b":2}`
	doc := jsax.NewDocument(strings.NewReader(input))
	h := new(stopAfterKey)
	if err := jsax.NewParser(doc).Parse(h); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if h.key != "a" {
		t.Errorf("Stopped at key %q, want %q", h.key, "a")
	}
	if got := string(doc.Key()); got != "a" {
		t.Errorf("Document key: got %q, want %q", got, "a")
	}

	// The rest of the input is left unconsumed.
	if got, want := doc.Offset(), int64(5); got != want {
		t.Errorf("Offset: got %d, want %d", got, want)
	}
}

// objectCollector gathers the keys of the object it is dispatched into and
// stops when that object closes.
type objectCollector struct {
	jsax.Ignore
	keys  []string
	depth int
}

func (c *objectCollector) Key(name []byte) error {
	c.keys = append(c.keys, string(name))
	return nil
}

func (c *objectCollector) StartObject() error { c.depth++; return nil }

func (c *objectCollector) EndObject(int) error {
	if c.depth == 0 {
		return jsax.Stop
	}
	c.depth--
	return nil
}

// subObjects parses each object of an enclosing array with its own nested
// parser.
type subObjects struct {
	jsax.Ignore
	p    *jsax.Parser
	subs [][]string
	elts int
}

func (s *subObjects) StartArray() error    { return nil }
func (s *subObjects) EndArray(n int) error { s.elts = n; return nil }

func (s *subObjects) StartObject() error {
	c := new(objectCollector)
	if err := s.p.SubParse(c); err != nil {
		return err
	}
	s.subs = append(s.subs, c.keys)
	return nil
}

func TestSubParse(t *testing.T) {
	const input = `[{"x":1}, {"y":2,"z":{"q":3}}, {}]`

	doc := jsax.NewDocument(strings.NewReader(input))
	p := jsax.NewParser(doc)
	h := &subObjects{p: p}
	if err := p.Parse(h); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if h.elts != 3 {
		t.Errorf("Array length: got %d, want 3", h.elts)
	}
	want := [][]string{{"x"}, {"y", "z", "q"}, nil}
	if diff := cmp.Diff(want, h.subs); diff != "" {
		t.Errorf("Collected keys: (-want, +got)\n%s", diff)
	}
}

// An error inside a nested parse surfaces through the enclosing one with
// its position intact.
func TestSubParseError(t *testing.T) {
	const input = `[{"x":}]`

	doc := jsax.NewDocument(strings.NewReader(input))
	p := jsax.NewParser(doc)
	err := p.Parse(&subObjects{p: p})
	checkSyntaxError(t, input, err, jsax.ExpectedValue, 7)
}

func TestLevelValidator(t *testing.T) {
	parse := func(input string) error {
		return jsax.Parse(strings.NewReader(input), jsax.LevelValidator(new(testHandler)))
	}

	for _, ok := range []string{`1`, `"two" 3`, `{"a":1,"b":2}`, `[1,2,3]`} {
		if err := parse(ok); err != nil {
			t.Errorf("Parse %#q failed: %v", ok, err)
		}
	}
	for _, bad := range []string{`{"a":{}}`, `[1,[2]]`, `[{"a":1}]`} {
		if err := parse(bad); !errors.Is(err, jsax.ValidationFailed) {
			t.Errorf("Parse %#q: got %v, want ValidationFailed", bad, err)
		}
	}

	// The validator reports through the usual error surface.
	err := parse(`{"a":{}}`)
	checkSyntaxError(t, `{"a":{}}`, err, jsax.ValidationFailed, 6)
}

// Offsets count from the start of the stream, not the window.
func TestOffsetAcrossRefills(t *testing.T) {
	input := strings.Repeat(" ", 40) + "@"
	doc := jsax.NewDocumentSize(strings.NewReader(input), 16)
	err := jsax.NewParser(doc).Parse(new(testHandler))
	checkSyntaxError(t, "(40 spaces)@", err, jsax.InvalidType, 40)
}

func checkSyntaxError(t *testing.T, input string, err error, code jsax.Code, offset int64) {
	t.Helper()
	if err == nil {
		t.Errorf("Input: %#q: Parse did not report an error", input)
		return
	}
	var serr *jsax.SyntaxError
	if !errors.As(err, &serr) {
		t.Errorf("Input: %#q: error %v is not a *SyntaxError", input, err)
		return
	}
	if serr.Code() != code {
		t.Errorf("Input: %#q: error code: got %v, want %v", input, serr.Code(), code)
	}
	if serr.Offset != offset {
		t.Errorf("Input: %#q: error offset: got %d, want %d", input, serr.Offset, offset)
	}
	if !errors.Is(err, code) {
		t.Errorf("Input: %#q: errors.Is(%v, %v) is false", input, err, code)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

// testHandler records each event as one line of text.
type testHandler struct {
	buf bytes.Buffer
}

func (t *testHandler) pr(msg string, args ...any) error {
	fmt.Fprintf(&t.buf, msg, args...)
	t.buf.WriteByte('\n')
	return nil
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) Null() error           { return t.pr("Null") }
func (t *testHandler) Bool(v bool) error     { return t.pr("Bool %v", v) }
func (t *testHandler) StartObject() error    { return t.pr("StartObject") }
func (t *testHandler) EndObject(n int) error { return t.pr("EndObject %d", n) }
func (t *testHandler) StartArray() error     { return t.pr("StartArray") }
func (t *testHandler) EndArray(n int) error  { return t.pr("EndArray %d", n) }
func (t *testHandler) Comma() error          { return t.pr("Comma") }

func (t *testHandler) Number(n jsax.Number) error { return t.pr("Number %s %q", n.Base(), n.Text()) }
func (t *testHandler) String(text []byte) error   { return t.pr("String %q", text) }
func (t *testHandler) Key(name []byte) error      { return t.pr("Key %q", name) }
