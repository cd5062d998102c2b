// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import (
	"strings"
	"testing"
)

func TestCompileSeqMapsUserInput(t *testing.T) {
	r, err := compileSeq([]interface{}{"a", Literal("b"), []interface{}{"c", "d"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, ok := r.(*sequenceRule)
	if !ok {
		t.Fatalf("expected *sequenceRule, got %T", r)
	}
	if len(seq.rules) != 3 {
		t.Fatalf("got %d subrules, want 3", len(seq.rules))
	}
	if _, ok := seq.rules[0].(*literalRule); !ok {
		t.Errorf("element 0: string did not compile to a Literal, got %T", seq.rules[0])
	}
	nested, ok := seq.rules[2].(*sequenceRule)
	if !ok || len(nested.rules) != 2 {
		t.Errorf("element 2: nested list did not compile to a nested Sequence, got %#v", seq.rules[2])
	}
}

func TestCompileSeqReducerMustBeLast(t *testing.T) {
	fn := Reducer(func(args []interface{}) interface{} { return nil })
	_, err := compileSeq([]interface{}{fn, "a"})
	if err != errMisplacedReducer {
		t.Fatalf("got %v, want errMisplacedReducer", err)
	}
}

func TestCompileSeqReducerAtEndIsFine(t *testing.T) {
	fn := Reducer(func(args []interface{}) interface{} { return "ok" })
	r, err := compileSeq([]interface{}{"a", "b", fn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq := r.(*sequenceRule)
	if seq.reducer == nil {
		t.Fatalf("reducer was not installed")
	}
	if got := seq.reducer(nil); got != "ok" {
		t.Fatalf("got %v, want \"ok\"", got)
	}
}

func TestCompileSeqUnknownArgument(t *testing.T) {
	_, err := compileSeq([]interface{}{42})
	if err == nil || !strings.Contains(err.Error(), "cannot compile value of type int") {
		t.Fatalf("got %v, want an unknown-argument error naming int", err)
	}
}

func TestCompileSeqReflectiveMultiArgReducer(t *testing.T) {
	// Scenario 4: E = [N, "+", N, (a,b)=>["+",a,b]]
	reducer := func(a, b interface{}) interface{} { return []interface{}{"+", a, b} }
	r, err := compileSeq([]interface{}{Text(Literal("7"), nil), "+", Text(Literal("8"), nil), reducer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq := r.(*sequenceRule)
	got := seq.reducer([]interface{}{"7", "8"})
	want := []interface{}{"+", "7", "8"}
	if len(got.([]interface{})) != len(want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	for i := range want {
		if got.([]interface{})[i] != want[i] {
			t.Fatalf("got %#v, want %#v", got, want)
		}
	}
}

func TestCompileSeqReflectiveReducerRejectsNonInterfaceParams(t *testing.T) {
	_, err := compileSeq([]interface{}{func(a int) interface{} { return a }})
	if err == nil {
		t.Fatalf("expected an error for a reducer with a non-interface{} parameter")
	}
}

func TestCompileSeqReflectiveReducerRejectsVariadic(t *testing.T) {
	_, err := compileSeq([]interface{}{func(args ...interface{}) interface{} { return nil }})
	if err == nil {
		t.Fatalf("expected an error for a variadic reducer (use the []interface{} form instead)")
	}
}

func TestSeqPanicsOnConstructionError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Seq to panic on a construction error")
		}
	}()
	Seq(func() {}, "a")
}
