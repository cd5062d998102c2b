// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import (
	"fmt"
	"io"
	"strings"
)

// memoKey identifies one cached attempt of a Memo-wrapped rule. inWS is part
// of the key: a Memo node reached once inside a Lex subtree and once outside
// it must not share a cache entry, since whitespace-suppression changes what
// "pos" means to it.
type memoKey struct {
	node Rule
	pos  int
	inWS bool
}

type memoEntry struct {
	pos int
	val interface{}
	ok  bool
}

// state is the per-parse mutable context: input text, cursor bounds,
// whitespace-mode flag, expected-tracking inhibit depth, furthest-failure
// position, and the memo cache. One state is created per Grammar.Parse call
// and discarded on return; it is never shared across goroutines.
type state struct {
	grammar *Grammar
	text    string
	end     int

	inWS    bool // in_whitespace_mode
	inhibit int  // inhibit_expected_tracking_depth

	maxPos   int
	maxRules map[Rule]struct{}

	memo map[memoKey]memoEntry

	trace      io.Writer
	traceDepth int
}

func newState(g *Grammar, text string) *state {
	return &state{
		grammar:  g,
		text:     text,
		end:      len(text),
		maxRules: map[Rule]struct{}{},
		memo:     map[memoKey]memoEntry{},
	}
}

// match is the normal entry point: it skips whitespace unless already
// in_whitespace_mode, then delegates to matchAfterWS.
func (s *state) match(r Rule, pos int) (int, interface{}, bool) {
	if !s.inWS {
		pos = s.skipWhitespace(pos)
	}
	return s.matchAfterWS(r, pos)
}

// matchAfterWS is entered once whitespace has already been skipped at pos.
// It performs expected-set tracking, then delegates to the variant's scan.
func (s *state) matchAfterWS(r Rule, pos int) (int, interface{}, bool) {
	if s.inhibit == 0 {
		s.track(r, pos)
	}
	if s.trace == nil {
		return r.scan(s, pos)
	}
	return s.tracedScan(r, pos)
}

// tracedScan wraps r.scan with depth-indented ">"/"<" debug-trace lines.
func (s *state) tracedScan(r Rule, pos int) (int, interface{}, bool) {
	name := ruleTraceName(r)
	prefix := strings.Repeat(" ", s.traceDepth)
	fmt.Fprintf(s.trace, "%s> %s @%d %q\n", prefix, name, pos, s.peek(pos, 16))
	s.traceDepth++
	newPos, val, ok := r.scan(s, pos)
	s.traceDepth--
	fmt.Fprintf(s.trace, "%s< %s @%d ok=%v\n", prefix, name, newPos, ok)
	return newPos, val, ok
}

func (s *state) peek(pos, n int) string {
	end := pos + n
	if end > s.end {
		end = s.end
	}
	if pos > end {
		return ""
	}
	return s.text[pos:end]
}

func ruleTraceName(r Rule) string {
	if sym, ok := r.(*Symbol); ok {
		return sym.name
	}
	if desc, ok := r.expectable(); ok {
		return desc
	}
	return fmt.Sprintf("%T", r)
}

// skipWhitespace repeatedly matches the grammar's whitespace rule at pos,
// under in_whitespace_mode and with expected tracking inhibited, until it no
// longer matches or makes no progress.
func (s *state) skipWhitespace(pos int) int {
	if s.grammar.Whitespace == nil {
		return pos
	}
	savedWS, savedInhibit := s.inWS, s.inhibit
	s.inWS = true
	s.inhibit++
	defer func() { s.inWS = savedWS; s.inhibit = savedInhibit }()
	for {
		newPos, _, ok := s.match(s.grammar.Whitespace, pos)
		if !ok || newPos == pos {
			return pos
		}
		pos = newPos
	}
}

// track implements the expected-set bookkeeping: maxPos is monotonically
// non-decreasing; maxRules is replaced when maxPos strictly advances and
// extended when it is merely matched.
func (s *state) track(r Rule, pos int) {
	if pos > s.maxPos {
		s.maxPos = pos
		s.maxRules = map[Rule]struct{}{}
		if _, ok := r.expectable(); ok {
			s.maxRules[r] = struct{}{}
		}
		return
	}
	if pos == s.maxPos {
		if _, ok := r.expectable(); ok {
			s.maxRules[r] = struct{}{}
		}
	}
}

// diagnostic builds the furthest-failure report from the current tracking
// state. See diagnostic.go for the formatting itself.
func (s *state) diagnostic() *Diagnostic {
	seen := map[string]bool{}
	var expected []string
	for r := range s.maxRules {
		if desc, ok := r.expectable(); ok && !seen[desc] {
			seen[desc] = true
			expected = append(expected, desc)
		}
	}
	return newDiagnostic(s.text, s.maxPos, expected)
}
