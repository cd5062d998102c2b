// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pegx

import "reflect"

// Seq compiles parts into a Sequence rule: each element is normalized by
// compileItem and contributes to the sequence's valueCount if it generates a
// value; at most one function may appear, and only as the last element,
// where it becomes the reducer. Any other placement of a function, or any
// element of an unrecognized type, is a construction error and panics.
func Seq(parts ...interface{}) Rule {
	r, err := compileSeq(parts)
	if err != nil {
		panic(panicMsg("%v", err))
	}
	return r
}

func compileSeq(parts []interface{}) (Rule, error) {
	var rules []Rule
	var reducer Reducer
	for i, p := range parts {
		if isFunc(p) {
			if i != len(parts)-1 {
				return nil, errMisplacedReducer
			}
			fn, err := asReducer(p)
			if err != nil {
				return nil, err
			}
			reducer = fn
			continue
		}
		r, err := compileItem(p)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	valueCount := 0
	for _, r := range rules {
		if r.generatesValue() {
			valueCount++
		}
	}
	return &sequenceRule{rules: rules, valueCount: valueCount, reducer: reducer}, nil
}

// compileItem normalizes one user-supplied value into a Rule: a Rule is
// itself (a *Symbol already satisfies Rule, so a symbol reference falls into
// this case too), a string becomes a Literal, and a nested []interface{}
// becomes a nested Sequence. Anything else is a construction error.
func compileItem(x interface{}) (Rule, error) {
	switch v := x.(type) {
	case Rule:
		return v, nil
	case string:
		return Literal(v), nil
	case []interface{}:
		return compileSeq(v)
	default:
		return nil, errUnknownArgument(x)
	}
}

func isFunc(x interface{}) bool {
	if x == nil {
		return false
	}
	return reflect.ValueOf(x).Kind() == reflect.Func
}

// asReducer accepts either the single-argument-list form (pegx.Reducer, or
// the bare func([]interface{}) interface{} it's defined as) or an arbitrary
// fixed-arity function of interface{} parameters (e.g. func(a, b
// interface{}) interface{}), so grammars can write reducers either way.
func asReducer(x interface{}) (Reducer, error) {
	switch fn := x.(type) {
	case Reducer:
		return fn, nil
	case func([]interface{}) interface{}:
		return Reducer(fn), nil
	}
	return reflectReducer(x)
}

func reflectReducer(x interface{}) (Reducer, error) {
	v := reflect.ValueOf(x)
	t := v.Type()
	if t.Kind() != reflect.Func || t.IsVariadic() || t.NumOut() != 1 {
		return nil, errUnknownReducer(x)
	}
	n := t.NumIn()
	for i := 0; i < n; i++ {
		if t.In(i).Kind() != reflect.Interface {
			return nil, errUnknownReducer(x)
		}
	}
	return func(args []interface{}) interface{} {
		if len(args) != n {
			panic(panicMsg("reducer expects %d argument(s), got %d", n, len(args)))
		}
		in := make([]reflect.Value, n)
		for i, a := range args {
			if a == nil {
				in[i] = reflect.Zero(t.In(i))
				continue
			}
			in[i] = reflect.ValueOf(a)
		}
		out := v.Call(in)
		return out[0].Interface()
	}, nil
}
