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

package gtype

import "testing"

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"int",
		"float",
		"str",
		"bool",
		"[int]",
		"[]",
		"(int, int, [[int | float]])",
		"int | float | str",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			ty, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", in, err)
			}
			out := ty.String()
			ty2, err := Parse(out)
			if err != nil {
				t.Fatalf("Parse(String()) = %q: %v", out, err)
			}
			if ty2.String() != out {
				t.Fatalf("round trip mismatch: %q -> %q -> %q", in, out, ty2.String())
			}
		})
	}
}

func TestMatchScenario(t *testing.T) {
	ty := MustParse("(int, int, [[int | float]])")

	if !ty.Match([]any{1, 2, []any{[]any{1, 2.0}}}) {
		t.Fatalf("expected match for (1, 2, [[1, 2.0]])")
	}
	if ty.Match([]any{1, 2, []any{[]any{true}}}) {
		t.Fatalf("expected bool not to match int alternative")
	}
}

func TestMatchPrimitives(t *testing.T) {
	cases := []struct {
		ty    Type
		value any
		want  bool
	}{
		{Int, 1, true},
		{Int, true, false},
		{Bool, true, true},
		{Bool, 1, false},
		{Float, 1.5, true},
		{String, "x", true},
		{Any, nil, true},
		{NewList(nil), []any{}, true},
		{NewList(nil), []any{"anything"}, true},
		{NewList(nil), "not a list", false},
	}
	for _, c := range cases {
		if got := c.ty.Match(c.value); got != c.want {
			t.Errorf("%s.Match(%#v) = %v, want %v", c.ty, c.value, got, c.want)
		}
	}
}

func TestSingleUnionReduces(t *testing.T) {
	ty := NewUnion(Int)
	if ty.Kind() != KindInt {
		t.Fatalf("single-alternative union should reduce to its element, got kind %v", ty.Kind())
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "foo", "[int", "(int", "()", "int |", "| int"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}
