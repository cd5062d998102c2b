// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import (
	"fmt"
	"io"
	"strings"
)

// Format implements fmt.Formatter so a *Symbol prints as its own name
// rather than recursing into its definition: printing a whole cyclic rule
// graph through %v would otherwise never terminate.
func (s *Symbol) Format(f fmt.State, verb rune) {
	io.WriteString(f, s.name)
}

func (r *literalRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "%q", r.text)
}

func (anyCharRule) Format(f fmt.State, verb rune) { io.WriteString(f, ".") }

func (r *charPredicateRule) Format(f fmt.State, verb rune) { io.WriteString(f, r.name) }

func (eofRule) Format(f fmt.State, verb rune) { io.WriteString(f, "$") }

func (r *errorRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "ERROR(%q)", r.msg)
}

func (r *skipRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "SKIP(%v)", r.inner)
}

func (r *textValueRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "TEXT(%v)", r.inner)
}

func (r *optionalRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "MAYBE(%v)", r.inner)
}

func (r *repeatRule) Format(f fmt.State, verb rune) {
	if r.sep == nil {
		fmt.Fprintf(f, "MANY%s(%v)", minSuffix(r.min), r.inner)
		return
	}
	fmt.Fprintf(f, "MANY%s(%v, %v)", minSuffix(r.min), r.inner, r.sep)
}

func minSuffix(min int) string {
	if min == 0 {
		return "0"
	}
	return ""
}

func (r *sequenceRule) Format(f fmt.State, verb rune) {
	parts := make([]string, len(r.rules))
	for i, sub := range r.rules {
		parts[i] = formatChild(sub)
	}
	io.WriteString(f, strings.Join(parts, " "))
}

func (r *choiceRule) Format(f fmt.State, verb rune) {
	parts := make([]string, len(r.rules))
	for i, sub := range r.rules {
		parts[i] = formatChild(sub)
	}
	io.WriteString(f, strings.Join(parts, " | "))
}

func (r *andPredicateRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "AT(%v)", r.inner)
}

func (r *notPredicateRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "NOT(%v)", r.inner)
}

func (r *lexicalRule) Format(f fmt.State, verb rune) {
	if r.name == "" {
		fmt.Fprintf(f, "LEX(%v)", r.inner)
		return
	}
	fmt.Fprintf(f, "LEX(%s, %v)", r.name, r.inner)
}

func (r *memoRule) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "MEMO(%v)", r.inner)
}

// formatChild renders sub, parenthesizing it when it is itself a Sequence or
// Choice so the printed grammar stays unambiguous.
func formatChild(sub Rule) string {
	switch sub.(type) {
	case *sequenceRule, *choiceRule:
		return "(" + fmt.Sprintf("%v", sub) + ")"
	default:
		return fmt.Sprintf("%v", sub)
	}
}
