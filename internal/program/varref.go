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

// VarRef is a resolved `{{ id }}` or `{{ id.field }}` reference. Field is
// empty for the single-identifier form.
type VarRef struct {
	ID    string
	Field string
}

// ParseVarRef recognizes the single exact shape
// `^\s*\{\{\s*(\w+)(?:\.(\w+))?\s*\}\}\s*$` by hand, the way spec.md §9
// calls for: the grammar is one fixed token shape, not worth a regexp
// dependency. Anything that doesn't match this exact shape (including a
// prefix or suffix match) is not a reference — the caller passes it through
// as a literal string.
func ParseVarRef(s string) (VarRef, bool) {
	i := 0
	n := len(s)

	i = skipSpace(s, i)
	if !hasPrefixAt(s, i, "{{") {
		return VarRef{}, false
	}
	i += 2
	i = skipSpace(s, i)

	id, j := scanIdent(s, i)
	if id == "" {
		return VarRef{}, false
	}
	i = j

	var field string
	if i < n && s[i] == '.' {
		i++
		f, j := scanIdent(s, i)
		if f == "" {
			return VarRef{}, false
		}
		field = f
		i = j
	}

	i = skipSpace(s, i)
	if !hasPrefixAt(s, i, "}}") {
		return VarRef{}, false
	}
	i += 2
	i = skipSpace(s, i)

	if i != n {
		return VarRef{}, false
	}
	return VarRef{ID: id, Field: field}, true
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return i+len(prefix) <= len(s) && s[i:i+len(prefix)] == prefix
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func scanIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return s[start:i], i
}
