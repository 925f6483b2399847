// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsax

import "fmt"

// DefaultMaxDepth is the container nesting limit a Document starts with.
// Use [Document.SetMaxDepth] to change it.
const DefaultMaxDepth = 32

// A frame records the parse state of one open container.
type frame struct {
	object    bool // an object, not an array
	expectKey bool // the next addition must be a key (objects only)
	count     int  // values admitted so far
}

// A depthStack validates every structural transition of a document, keeping
// one frame per open container, innermost last. An empty stack means parsing
// is at top level.
type depthStack struct {
	frames []frame
	limit  int
}

func (s *depthStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func (s *depthStack) push(f frame, open Code) error {
	if len(s.frames) >= s.limit {
		return fmt.Errorf("%w: %w", open, TreeDepthExceeded)
	}
	s.frames = append(s.frames, f)
	return nil
}

// addObject opens an object, which begins by expecting a key.
func (s *depthStack) addObject() error {
	return s.push(frame{object: true, expectKey: true}, UnexpectedOpenBrace)
}

// addArray opens an array, which only ever expects values.
func (s *depthStack) addArray() error {
	return s.push(frame{}, UnexpectedOpenBracket)
}

// popObject closes the innermost container, which must be an object with no
// key-value pair in progress, and reports how many pairs it held.
func (s *depthStack) popObject() (int, error) {
	top := s.top()
	if top == nil || !top.object {
		return 0, NotInObject
	}
	if !top.expectKey {
		return 0, ExpectedValue
	}
	n := top.count
	s.frames = s.frames[:len(s.frames)-1]
	return n, nil
}

// popArray closes the innermost container, which must be an array, and
// reports how many elements it held.
func (s *depthStack) popArray() (int, error) {
	top := s.top()
	if top == nil || top.object {
		return 0, NotInArray
	}
	n := top.count
	s.frames = s.frames[:len(s.frames)-1]
	return n, nil
}

// addKey records an object key. Only an object frame awaiting a key admits
// one; anywhere else, a value was due.
func (s *depthStack) addKey() error {
	top := s.top()
	if top == nil || !top.object || !top.expectKey {
		return ExpectedValue
	}
	top.expectKey = false
	return nil
}

// addValue records a completed value. A single value is always admitted at
// top level; inside an object, a key must have preceded it.
func (s *depthStack) addValue() error {
	top := s.top()
	if top == nil {
		return nil
	}
	if top.object {
		if top.expectKey {
			return ExpectedKey
		}
		top.expectKey = true
	}
	top.count++
	return nil
}

// checkEndOfFile verifies that every container has been closed, naming the
// innermost open one when not.
func (s *depthStack) checkEndOfFile() error {
	top := s.top()
	switch {
	case top == nil:
		return nil
	case top.object:
		return ExpectedCloseBrace
	default:
		return ExpectedCloseBracket
	}
}

// checkNonEmpty fails when parsing is at top level, outside any container.
func (s *depthStack) checkNonEmpty() error {
	if len(s.frames) == 0 {
		return UnexpectedTopLevel
	}
	return nil
}
