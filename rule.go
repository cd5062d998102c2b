// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import (
	"unicode/utf8"
)

// Rule is a node in a compiled grammar. The set of concrete rule kinds is
// closed: every Rule is produced by one of the combinator constructors in
// this package (Literal, Seq, Or, Many, ...) or by a *Symbol. The methods
// are unexported, so callers outside this package cannot implement Rule
// themselves.
type Rule interface {
	// scan matches the rule at pos, assuming any leading whitespace the
	// caller needed to skip has already been skipped and any expected-set
	// tracking for this attempt has already happened. It returns the
	// position after the match, the value the rule produced, and whether it
	// matched at all.
	scan(s *state, pos int) (int, interface{}, bool)

	// generatesValue reports whether a successful match of this rule
	// contributes a value to its enclosing context.
	generatesValue() bool

	// expectable returns the human-readable description used in
	// diagnostics, and whether this rule kind contributes to the expected
	// set at all. Only Literal and named Lex rules do.
	expectable() (string, bool)

	// children returns the rule's immediate subrules, for Walk.
	children() []Rule
}

// Reducer collects the value-generating subrules of a Sequence (or a Tag)
// into an argument list and produces the sequence's value.
type Reducer func(args []interface{}) interface{}

// Extractor computes a TextValue rule's value from the raw matched span.
// The default extractor used by Text returns text[start:end] unchanged.
type Extractor func(text string, start, end int) interface{}

// --- Literal -----------------------------------------------------------

type literalRule struct{ text string }

// Literal returns a rule that matches s exactly and contributes no value.
func Literal(s string) Rule { return &literalRule{text: s} }

func (r *literalRule) scan(s *state, pos int) (int, interface{}, bool) {
	end := pos + len(r.text)
	if end > s.end || s.text[pos:end] != r.text {
		return pos, nil, false
	}
	return end, nil, true
}

func (r *literalRule) generatesValue() bool { return false }
func (r *literalRule) expectable() (string, bool) { return quoteLiteral(r.text), true }
func (r *literalRule) children() []Rule { return nil }

func quoteLiteral(s string) string { return "'" + s + "'" }

// --- AnyChar -------------------------------------------------------------

type anyCharRule struct{}

// AnyChar matches any single code point.
var AnyChar Rule = anyCharRule{}

func (anyCharRule) scan(s *state, pos int) (int, interface{}, bool) {
	if pos >= s.end {
		return pos, nil, false
	}
	_, size := utf8.DecodeRuneInString(s.text[pos:])
	return pos + size, nil, true
}

func (anyCharRule) generatesValue() bool { return false }
func (anyCharRule) expectable() (string, bool) { return "", false }
func (anyCharRule) children() []Rule { return nil }

// --- CharPredicate ---------------------------------------------------------

type charPredicateRule struct {
	pred func(rune) bool
	name string // used only by Format, never for the expected set
}

// CharCode returns a rule that matches one code point satisfying pred, or
// (if v is a rune/int) one code point equal to v.
func CharCode(v interface{}) Rule {
	switch p := v.(type) {
	case rune:
		return &charPredicateRule{pred: func(r rune) bool { return r == p }, name: quoteRune(p)}
	case int:
		rv := rune(p)
		return &charPredicateRule{pred: func(r rune) bool { return r == rv }, name: quoteRune(rv)}
	case func(rune) bool:
		return &charPredicateRule{pred: p, name: "<predicate>"}
	default:
		panic(panicMsg("CharCode: unsupported argument type %T", v))
	}
}

// Char returns a rule that matches a single code point drawn from chars, by
// building a [lo, hi] span over the distinct code points and a presence
// table indexed by c - lo.
func Char(chars string) Rule {
	runes := []rune(chars)
	if len(runes) == 0 {
		panic(panicMsg("Char: no characters supplied"))
	}
	lo, hi := runes[0], runes[0]
	for _, r := range runes {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	present := make([]bool, hi-lo+1)
	for _, r := range runes {
		present[r-lo] = true
	}
	pred := func(r rune) bool {
		if r < lo || r > hi {
			return false
		}
		return present[r-lo]
	}
	return &charPredicateRule{pred: pred, name: "[" + chars + "]"}
}

func (r *charPredicateRule) scan(s *state, pos int) (int, interface{}, bool) {
	if pos >= s.end {
		return pos, nil, false
	}
	c, size := utf8.DecodeRuneInString(s.text[pos:])
	if !r.pred(c) {
		return pos, nil, false
	}
	return pos + size, nil, true
}

func (r *charPredicateRule) generatesValue() bool { return false }
func (r *charPredicateRule) expectable() (string, bool) { return "", false }
func (r *charPredicateRule) children() []Rule { return nil }

func quoteRune(r rune) string { return "'" + string(r) + "'" }

// --- EndOfInput ------------------------------------------------------------

type eofRule struct{}

// EndOfInput matches only at the end of the input.
var EndOfInput Rule = eofRule{}

func (eofRule) scan(s *state, pos int) (int, interface{}, bool) {
	if pos == s.end {
		return pos, nil, true
	}
	return pos, nil, false
}

func (eofRule) generatesValue() bool { return false }
func (eofRule) expectable() (string, bool) { return "", false }
func (eofRule) children() []Rule { return nil }

// --- Error -------------------------------------------------------------

type errorRule struct{ msg string }

// Error returns a rule that, when entered, aborts the entire parse with msg.
// This is distinct from an ordinary match failure: it is never tried as one
// alternative among several, it ends the parse immediately.
func Error(msg string) Rule { return &errorRule{msg: msg} }

func (r *errorRule) scan(s *state, pos int) (int, interface{}, bool) {
	panic(abortSignal{err: &ParseAbort{msg: r.msg, Pos: pos}})
}

func (r *errorRule) generatesValue() bool { return false }
func (r *errorRule) expectable() (string, bool) { return "", false }
func (r *errorRule) children() []Rule { return nil }

// --- Skip ----------------------------------------------------------------

type skipRule struct{ inner Rule }

// Skip matches inner but discards whatever value it produced.
func Skip(inner Rule) Rule { return &skipRule{inner: inner} }

func (r *skipRule) scan(s *state, pos int) (int, interface{}, bool) {
	newPos, _, ok := s.match(r.inner, pos)
	if !ok {
		return pos, nil, false
	}
	return newPos, nil, true
}

func (r *skipRule) generatesValue() bool { return false }
func (r *skipRule) expectable() (string, bool) { return "", false }
func (r *skipRule) children() []Rule { return []Rule{r.inner} }

// --- TextValue -------------------------------------------------------------

type textValueRule struct {
	inner   Rule
	extract Extractor
}

// Text matches inner and sets its value to extract(text, start, end), where
// start and end bound the span inner consumed. If extract is nil, the value
// is the matched substring.
func Text(inner Rule, extract Extractor) Rule { return &textValueRule{inner: inner, extract: extract} }

func (r *textValueRule) scan(s *state, pos int) (int, interface{}, bool) {
	newPos, _, ok := s.match(r.inner, pos)
	if !ok {
		return pos, nil, false
	}
	if r.extract != nil {
		return newPos, r.extract(s.text, pos, newPos), true
	}
	return newPos, s.text[pos:newPos], true
}

func (r *textValueRule) generatesValue() bool { return true }
func (r *textValueRule) expectable() (string, bool) { return "", false }
func (r *textValueRule) children() []Rule { return []Rule{r.inner} }

// --- Optional ------------------------------------------------------------

type optionalRule struct{ inner Rule }

// Maybe matches inner or nothing. It always generates a value: inner's value
// (or true) on a match, null (or false) on no match, depending on whether
// inner itself generates a value.
func Maybe(inner Rule) Rule { return &optionalRule{inner: inner} }

func (r *optionalRule) scan(s *state, pos int) (int, interface{}, bool) {
	newPos, val, ok := s.match(r.inner, pos)
	if ok {
		if r.inner.generatesValue() {
			return newPos, val, true
		}
		return newPos, true, true
	}
	if r.inner.generatesValue() {
		return pos, nil, true
	}
	return pos, false, true
}

func (r *optionalRule) generatesValue() bool { return true }
func (r *optionalRule) expectable() (string, bool) { return "", false }
func (r *optionalRule) children() []Rule { return []Rule{r.inner} }

// --- Repeat (Many / Many0) -------------------------------------------------

type repeatRule struct {
	inner Rule
	sep   Rule // nil if no separator
	min   int  // 0 or 1
}

// Many matches one or more occurrences of inner, optionally separated by sep.
func Many(inner, sep Rule) Rule { return &repeatRule{inner: inner, sep: sep, min: 1} }

// Many0 matches zero or more occurrences of inner, optionally separated by sep.
func Many0(inner, sep Rule) Rule { return &repeatRule{inner: inner, sep: sep, min: 0} }

func (r *repeatRule) scan(s *state, pos int) (int, interface{}, bool) {
	values := []interface{}{}
	newPos, val, ok := s.match(r.inner, pos)
	if !ok {
		if r.min == 0 {
			return pos, values, true
		}
		return pos, nil, false
	}
	cur := newPos
	values = append(values, val)
	for {
		if r.sep == nil {
			p, v, bok := s.match(r.inner, cur)
			if !bok || p == cur {
				break
			}
			cur = p
			values = append(values, v)
			continue
		}
		sepPos, _, sok := s.match(r.sep, cur)
		if !sok {
			break
		}
		bodyPos, bodyVal, bok := s.match(r.inner, sepPos)
		if !bok {
			// trailing separator not consumed: stop before it was attempted.
			break
		}
		cur = bodyPos
		values = append(values, bodyVal)
	}
	return cur, values, true
}

func (r *repeatRule) generatesValue() bool { return true }
func (r *repeatRule) expectable() (string, bool) { return "", false }
func (r *repeatRule) children() []Rule {
	if r.sep == nil {
		return []Rule{r.inner}
	}
	return []Rule{r.inner, r.sep}
}

// --- Sequence --------------------------------------------------------------

type sequenceRule struct {
	rules      []Rule
	valueCount int
	reducer    Reducer
}

func (r *sequenceRule) scan(s *state, pos int) (int, interface{}, bool) {
	cur := pos
	var values []interface{}
	for _, sub := range r.rules {
		newPos, val, ok := s.match(sub, cur)
		if !ok {
			return pos, nil, false
		}
		cur = newPos
		if sub.generatesValue() {
			values = append(values, val)
		}
	}
	if r.reducer != nil {
		return cur, r.reducer(values), true
	}
	switch len(values) {
	case 0:
		return cur, nil, true
	case 1:
		return cur, values[0], true
	default:
		return cur, values, true
	}
}

func (r *sequenceRule) generatesValue() bool { return r.valueCount > 0 || r.reducer != nil }
func (r *sequenceRule) expectable() (string, bool) { return "", false }
func (r *sequenceRule) children() []Rule { return r.rules }

// --- Choice ------------------------------------------------------------

type choiceRule struct{ rules []Rule }

// Or returns a rule that tries each alternative in order and matches the
// first one that succeeds (ordered, PEG-style choice; never ambiguous).
func Or(alternatives ...Rule) Rule {
	var flat []Rule
	for _, a := range alternatives {
		if c, ok := a.(*choiceRule); ok {
			flat = append(flat, c.rules...)
		} else {
			flat = append(flat, a)
		}
	}
	return &choiceRule{rules: flat}
}

func (r *choiceRule) scan(s *state, pos int) (int, interface{}, bool) {
	for _, alt := range r.rules {
		newPos, val, ok := s.match(alt, pos)
		if ok {
			return newPos, val, true
		}
	}
	return pos, nil, false
}

func (r *choiceRule) generatesValue() bool { return true }
func (r *choiceRule) expectable() (string, bool) { return "", false }
func (r *choiceRule) children() []Rule { return r.rules }

// --- Lookahead / NegLookahead -----------------------------------------------

type andPredicateRule struct{ inner Rule }
type notPredicateRule struct{ inner Rule }

// At returns a non-consuming rule that matches iff inner matches.
func At(inner Rule) Rule { return &andPredicateRule{inner: inner} }

// Not returns a non-consuming rule that matches iff inner does not match.
func Not(inner Rule) Rule { return &notPredicateRule{inner: inner} }

// Lookahead variants invoke the inner rule directly, bypassing the
// whitespace-aware match entry point and expected-set tracking, and never
// advance the position regardless of outcome.
func (r *andPredicateRule) scan(s *state, pos int) (int, interface{}, bool) {
	s.inhibit++
	_, _, ok := s.matchAfterWS(r.inner, pos)
	s.inhibit--
	return pos, nil, ok
}

func (r *andPredicateRule) generatesValue() bool { return false }
func (r *andPredicateRule) expectable() (string, bool) { return "", false }
func (r *andPredicateRule) children() []Rule { return []Rule{r.inner} }

func (r *notPredicateRule) scan(s *state, pos int) (int, interface{}, bool) {
	s.inhibit++
	_, _, ok := s.matchAfterWS(r.inner, pos)
	s.inhibit--
	return pos, nil, !ok
}

func (r *notPredicateRule) generatesValue() bool { return false }
func (r *notPredicateRule) expectable() (string, bool) { return "", false }
func (r *notPredicateRule) children() []Rule { return []Rule{r.inner} }

// --- Lexical -----------------------------------------------------------

type lexicalRule struct {
	name  string
	inner Rule
}

// Lex matches inner with whitespace skipping suppressed, so tokens can
// control their own internal spacing. If name is non-empty, Lex is
// expectable under that name.
func Lex(name string, inner Rule) Rule { return &lexicalRule{name: name, inner: inner} }

func (r *lexicalRule) scan(s *state, pos int) (int, interface{}, bool) {
	saved := s.inWS
	s.inWS = true
	newPos, _, ok := s.match(r.inner, pos)
	s.inWS = saved
	if !ok {
		return pos, nil, false
	}
	return newPos, nil, true
}

func (r *lexicalRule) generatesValue() bool { return false }
func (r *lexicalRule) expectable() (string, bool) {
	if r.name == "" {
		return "", false
	}
	return "<" + r.name + ">", true
}
func (r *lexicalRule) children() []Rule { return []Rule{r.inner} }

// --- Memo ----------------------------------------------------------------

type memoRule struct{ inner Rule }

// Memo wraps inner in a packrat cache keyed by input position and
// whitespace-mode, so inner is attempted at most once per distinct
// (position, mode) pair in a parse.
func Memo(inner Rule) Rule { return &memoRule{inner: inner} }

func (r *memoRule) scan(s *state, pos int) (int, interface{}, bool) {
	key := memoKey{node: r, pos: pos, inWS: s.inWS}
	if e, ok := s.memo[key]; ok {
		return e.pos, e.val, e.ok
	}
	newPos, val, ok := s.matchAfterWS(r.inner, pos)
	s.memo[key] = memoEntry{pos: newPos, val: val, ok: ok}
	return newPos, val, ok
}

func (r *memoRule) generatesValue() bool { return r.inner.generatesValue() }
func (r *memoRule) expectable() (string, bool) { return "", false }
func (r *memoRule) children() []Rule { return []Rule{r.inner} }

// --- Tag -----------------------------------------------------------------

// Tag wraps inner in a sequence whose reducer produces []interface{}{tag,
// value}, where value is inner's value (or nil if inner does not generate
// one). Equivalent to SEQ(inner, func(ast) []interface{}{tag, ast}) in the
// combinator surface.
func Tag(tag interface{}, inner Rule) Rule {
	valueCount := 0
	if inner.generatesValue() {
		valueCount = 1
	}
	return &sequenceRule{
		rules:      []Rule{inner},
		valueCount: valueCount,
		reducer: func(args []interface{}) interface{} {
			var v interface{}
			if len(args) > 0 {
				v = args[0]
			}
			return []interface{}{tag, v}
		},
	}
}
