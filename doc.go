// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pegx is a Parsing Expression Grammar engine.
//
// A Grammar is a registry of named Symbols plus a whitespace Rule. Rules are
// built from a small closed set of combinators (Literal, Seq, Or, Many, ...)
// that compose into a possibly cyclic rule graph through Symbol references.
// Grammar.Parse matches a Rule against an input string and returns either the
// AST value the match produced or a Diagnostic describing the furthest point
// the parse reached before failing.
package pegx
