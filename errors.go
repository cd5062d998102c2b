// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import (
	"errors"
	"fmt"
)

// Construction errors raised by the rule compiler. They are wrapped by Seq's
// panic rather than returned, but are ordinary errors internally so
// compileSeq/compileItem can be tested without a recover().
var errMisplacedReducer = errors.New("reducer function may only appear as the last element of a sequence")

func errUnknownArgument(x interface{}) error {
	return fmt.Errorf("cannot compile value of type %T into a rule", x)
}

func errUnknownReducer(x interface{}) error {
	return fmt.Errorf("unsupported reducer function type %T (want pegx.Reducer, func([]interface{}) interface{}, or a fixed-arity func(interface{}, ...) interface{})", x)
}

// abortSignal is the panic value used to unwind a match all the way back to
// Grammar.Parse on a fatal parse abort (an Error rule entered, or an
// undefined symbol reached). It is recovered nowhere else: any other panic
// value propagates unchanged, so a genuine programming bug in a reducer or
// extractor is never mistaken for a parse abort.
type abortSignal struct{ err error }

// ParseAbort is returned by Grammar.Parse when the parse ended in a fatal
// abort rather than an ordinary furthest-failure mismatch: an Error(msg)
// rule was entered, or a Symbol was reached with no definition. It is
// distinguished from a *Diagnostic parse failure so callers can tell "the
// grammar author decided this input is invalid" from "no alternative
// matched."
type ParseAbort struct {
	msg string
	Pos int // position the abort was raised at

	// Undefined lists symbols the grammar referenced but never defined.
	// Populated on every Parse call regardless of Grammar.Trace, so a
	// caller sees it without having opted into debug tracing.
	Undefined []string
}

func (e *ParseAbort) Error() string {
	msg := fmt.Sprintf("parse aborted at position %d: %s", e.Pos, e.msg)
	if len(e.Undefined) > 0 {
		msg = fmt.Sprintf("warning: undefined symbols: %v\n%s", e.Undefined, msg)
	}
	return msg
}

// panicMsg formats a construction/compile-time error message. Construction
// errors (rule not recognizable, reducer misplaced, symbol redefined,
// unknown argument type) are programmer bugs: they panic immediately rather
// than returning an error.
func panicMsg(format string, args ...interface{}) string {
	return "pegx: " + fmt.Sprintf(format, args...)
}
