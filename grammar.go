// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import (
	"fmt"
	"io"
)

// defaultWhitespace matches any of space/tab/CR/LF, a single code point per
// match. skipWhitespace loops over it to consume a whole run.
var defaultWhitespace = Char(" \t\r\n")

// Grammar is a named-symbol registry plus a whitespace rule. It is read-only
// once its symbols' definitions are fixed, and may then be used to run any
// number of independent parses, including concurrently (each gets its own
// state).
type Grammar struct {
	symbols map[string]*Symbol
	order   []string // insertion order, for deterministic UndefinedSymbols output

	// Whitespace is matched in a loop between atomic rules unless suppressed
	// by a Lex subtree. Set to nil to disable whitespace skipping entirely.
	Whitespace Rule

	// Trace, when true, makes Parse write depth-indented match/return lines
	// to TraceOutput. Nothing is written when TraceOutput is nil.
	Trace       bool
	TraceOutput io.Writer
}

// NewGrammar returns an empty grammar with the default whitespace rule.
func NewGrammar() *Grammar {
	return &Grammar{symbols: map[string]*Symbol{}, Whitespace: defaultWhitespace}
}

// Symbol returns the named symbol, creating an undefined placeholder for it
// on first reference. Repeated calls with the same name return the same
// *Symbol, so cyclic grammars can refer to a symbol before it is defined.
func (g *Grammar) Symbol(name string) *Symbol {
	if s, ok := g.symbols[name]; ok {
		return s
	}
	s := &Symbol{name: name}
	g.symbols[name] = s
	g.order = append(g.order, name)
	return s
}

// UndefinedSymbols returns the names of symbols this grammar has referenced
// but never defined, in the order they were first referenced.
func (g *Grammar) UndefinedSymbols() []string {
	var undefined []string
	for _, name := range g.order {
		if g.symbols[name].def == nil {
			undefined = append(undefined, name)
		}
	}
	return undefined
}

// Symbol is a named, late-bound rule. Its definition may be assigned at most
// once; symbols are the only back-edges that let a grammar's rule graph be
// cyclic.
type Symbol struct {
	name string
	def  Rule
}

// Name returns the symbol's registered name.
func (s *Symbol) Name() string { return s.name }

// Define assigns the symbol's rule. Calling Define twice on the same symbol
// is a programmer error and panics.
func (s *Symbol) Define(r Rule) {
	if s.def != nil {
		panic(panicMsg("symbol %q already defined", s.name))
	}
	s.def = r
}

func (s *Symbol) scan(st *state, pos int) (int, interface{}, bool) {
	if s.def == nil {
		panic(abortSignal{err: &ParseAbort{msg: fmt.Sprintf("undefined symbol %q", s.name), Pos: pos}})
	}
	return st.match(s.def, pos)
}

func (s *Symbol) generatesValue() bool { return true }
func (s *Symbol) expectable() (string, bool) { return "", false }
func (s *Symbol) children() []Rule {
	if s.def == nil {
		return nil
	}
	return []Rule{s.def}
}

// Parse matches root against text and returns the value it produced:
//  1. undefined symbols are surfaced as a non-fatal warning;
//  2. a fresh ParserState is built;
//  3. match(state, 0) is invoked on root;
//  4. on failure, a *Diagnostic is returned;
//  5. on success, trailing whitespace is skipped; if that lands on end of
//     input the value is returned, otherwise a *Diagnostic reports the
//     unconsumed trailing input.
//
// If root (or a rule it reaches) contains an Error rule that is entered, or
// reaches an undefined Symbol, Parse returns a *ParseAbort instead.
//
// Step 1's warning is non-fatal: it never stops the parse. It is attached
// to whatever error Parse returns (Diagnostic.Undefined / ParseAbort.Undefined)
// so a caller sees it simply by checking the returned error, rather than
// having to opt into Grammar.Trace first; when Trace is also on, it is
// additionally written to TraceOutput immediately, alongside the rest of
// the match trace.
func (g *Grammar) Parse(root Rule, text string) (value interface{}, err error) {
	st := newState(g, text)
	if g.Trace && g.TraceOutput != nil {
		st.trace = g.TraceOutput
	}
	undefined := g.UndefinedSymbols()
	if len(undefined) > 0 && st.trace != nil {
		fmt.Fprintf(st.trace, "warning: undefined symbols: %v\n", undefined)
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(abortSignal)
			if !ok {
				panic(r)
			}
			if abort, ok := sig.err.(*ParseAbort); ok {
				abort.Undefined = undefined
			}
			value, err = nil, sig.err
		}
	}()

	pos, val, ok := st.match(root, 0)
	if !ok {
		d := st.diagnostic()
		d.Undefined = undefined
		return nil, d
	}
	pos = st.skipWhitespace(pos)
	if pos != st.end {
		// Anchor the diagnostic at the end of the successful match:
		// trailing unconsumed input goes through the same diagnostic
		// channel as an ordinary mismatch.
		st.match(EndOfInput, pos)
		d := st.diagnostic()
		d.Undefined = undefined
		return nil, d
	}
	return val, nil
}
