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

package program

import "testing"

func TestParseVarRef(t *testing.T) {
	cases := []struct {
		in    string
		id    string
		field string
		ok    bool
	}{
		{"{{ a }}", "a", "", true},
		{"{{a}}", "a", "", true},
		{"{{ a.out }}", "a", "out", true},
		{"  {{ a.out }}  ", "a", "out", true},
		{"not a ref", "", "", false},
		{"{{ a }} extra", "", "", false},
		{"prefix {{ a }}", "", "", false},
		{"{{ }}", "", "", false},
		{"{{ a. }}", "", "", false},
		{"{{ a.b.c }}", "", "", false},
	}
	for _, c := range cases {
		ref, ok := ParseVarRef(c.in)
		if ok != c.ok {
			t.Errorf("ParseVarRef(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		if ref.ID != c.id || ref.Field != c.field {
			t.Errorf("ParseVarRef(%q) = %+v, want {%q %q}", c.in, ref, c.id, c.field)
		}
	}
}
