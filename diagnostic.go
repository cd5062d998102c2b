// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Diagnostic reports the furthest point a parse reached before failing. It
// is returned as the error from Grammar.Parse whenever no ParseAbort
// occurred.
type Diagnostic struct {
	Pos      int      // the furthest position reached
	Expected []string // sorted expected-set descriptions, deduplicated
	Text     string   // the full input, kept for line/pointer rendering

	// Undefined lists symbols the grammar referenced but never defined.
	// Populated on every Parse call regardless of Grammar.Trace, so a
	// caller sees it without having opted into debug tracing.
	Undefined []string
}

func newDiagnostic(text string, pos int, expected []string) *Diagnostic {
	sort.Slice(expected, func(i, j int) bool {
		qi, qj := isQuoted(expected[i]), isQuoted(expected[j])
		if qi != qj {
			return !qi // non-quoted (symbol/lexical) names sort before quoted literals
		}
		return expected[i] < expected[j]
	})
	return &Diagnostic{Pos: pos, Expected: expected, Text: text}
}

func isQuoted(s string) bool { return strings.HasPrefix(s, "'") }

// Error renders "Expected A or B or ... but found X", followed by the
// offending source line and a caret pointing at Pos. The caret line is
// emitted even when Pos is end of file.
func (d *Diagnostic) Error() string {
	var found string
	if d.Pos >= len(d.Text) {
		found = "end of file"
	} else {
		r, _ := utf8.DecodeRuneInString(d.Text[d.Pos:])
		found = fmt.Sprintf("%q", string(r))
	}

	expected := "<nothing>"
	if len(d.Expected) > 0 {
		expected = strings.Join(d.Expected, " or ")
	}

	lineStart := strings.LastIndexByte(d.Text[:d.Pos], '\n') + 1
	lineEnd := len(d.Text)
	if rel := strings.IndexByte(d.Text[d.Pos:], '\n'); rel >= 0 {
		lineEnd = d.Pos + rel
	}
	line := d.Text[lineStart:lineEnd]
	pointer := strings.Repeat(" ", d.Pos-lineStart) + "^"

	msg := fmt.Sprintf("Expected %s but found %s\n%s\n%s", expected, found, line, pointer)
	if len(d.Undefined) > 0 {
		msg = fmt.Sprintf("warning: undefined symbols: %v\n%s", d.Undefined, msg)
	}
	return msg
}
