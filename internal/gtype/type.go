// Copyright 2024 The Gada Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gtype implements the small value-type grammar used in node
// signatures: Int, Float, String, Bool, List, Tuple, Union and Any, each
// able to structurally Match a decoded YAML/JSON value and render back to
// its canonical textual form.
package gtype

import "strings"

// Kind identifies which variant of Type a value holds.
type Kind int

const (
	KindAny Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindList
	KindTuple
	KindUnion
)

// Type is a closed sum over the value-type grammar. The zero Type is Any.
type Type struct {
	kind  Kind
	elem  *Type   // List: item type, nil means "matches any list" ([] => ListType(None))
	elems []Type  // Tuple: ordered element types
	alts  []Type  // Union: ordered alternatives
}

// Any is the top type: it matches every value.
var Any = Type{kind: KindAny}

// Int, Float, String and Bool are the four primitive types.
var (
	Int    = Type{kind: KindInt}
	Float  = Type{kind: KindFloat}
	String = Type{kind: KindString}
	Bool   = Type{kind: KindBool}
)

// NewList returns the type of a homogeneous list whose items have elemType.
// A nil elemType (equivalently, calling NewList(nil)) represents the empty
// list type `[]`, which matches any list.
func NewList(elemType *Type) Type {
	return Type{kind: KindList, elem: elemType}
}

// NewTuple returns the type of a fixed-length, ordered tuple. elems must be
// non-empty: spec.md requires tuples have at least one element.
func NewTuple(elems ...Type) Type {
	return Type{kind: KindTuple, elems: elems}
}

// NewUnion returns the type that matches any of alts. A single-element
// union reduces to that element, per spec.md §4.3.
func NewUnion(alts ...Type) Type {
	if len(alts) == 1 {
		return alts[0]
	}
	return Type{kind: KindUnion, alts: alts}
}

// Kind reports which variant t holds.
func (t Type) Kind() Kind { return t.kind }

// Elem returns the item type of a List, or nil for the "any list" type.
// Elem panics if t is not a List.
func (t Type) Elem() *Type {
	if t.kind != KindList {
		panic("gtype: Elem called on non-list Type")
	}
	return t.elem
}

// Elems returns the ordered element types of a Tuple. Elems panics if t is
// not a Tuple.
func (t Type) Elems() []Type {
	if t.kind != KindTuple {
		panic("gtype: Elems called on non-tuple Type")
	}
	return t.elems
}

// Alts returns the ordered alternatives of a Union. Alts panics if t is not
// a Union.
func (t Type) Alts() []Type {
	if t.kind != KindUnion {
		panic("gtype: Alts called on non-union Type")
	}
	return t.alts
}

// Match reports whether v, a decoded primitive/list/tuple-as-list value,
// structurally satisfies t.
//
//   - Any matches everything.
//   - Int/Float/String/Bool match the corresponding Go type. Bool is
//     distinct from Int: a Go bool never matches KindInt, mirroring
//     spec.md §8 scenario 1's requirement that Bool and Int not conflate.
//   - List matches a []any that is either empty or whose every element
//     matches the item type (the empty list type matches any list).
//   - Tuple matches a []any of exactly the same length whose elements
//     match pairwise.
//   - Union matches if any alternative matches.
func (t Type) Match(v any) bool {
	switch t.kind {
	case KindAny:
		return true
	case KindInt:
		switch v.(type) {
		case int, int32, int64:
			return true
		default:
			return false
		}
	case KindFloat:
		switch v.(type) {
		case float32, float64:
			return true
		default:
			return false
		}
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindList:
		list, ok := v.([]any)
		if !ok {
			return false
		}
		if t.elem == nil {
			return true
		}
		for _, item := range list {
			if !t.elem.Match(item) {
				return false
			}
		}
		return true
	case KindTuple:
		list, ok := v.([]any)
		if !ok || len(list) != len(t.elems) {
			return false
		}
		for i, elemType := range t.elems {
			if !elemType.Match(list[i]) {
				return false
			}
		}
		return true
	case KindUnion:
		for _, alt := range t.alts {
			if alt.Match(v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String renders t in its canonical textual form: "any", "int", "float",
// "str", "bool", "[T]", "(T, U, ...)", "T | U".
func (t Type) String() string {
	switch t.kind {
	case KindAny:
		return "any"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindBool:
		return "bool"
	case KindList:
		if t.elem == nil {
			return "[]"
		}
		return "[" + t.elem.String() + "]"
	case KindTuple:
		parts := make([]string, len(t.elems))
		for i, e := range t.elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindUnion:
		parts := make([]string, len(t.alts))
		for i, a := range t.alts {
			parts[i] = a.String()
		}
		return strings.Join(parts, " | ")
	default:
		return "any"
	}
}
