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

import (
	"unicode"

	"gada.dev/gada/gadaerrors"
)

// Parse parses a type expression per the grammar:
//
//	chunk   := union EOF
//	union   := type ('|' type)*
//	list    := type (',' type)*
//	type    := 'int' | 'float' | 'str' | 'bool'
//	         | '[' union? ']'
//	         | '(' list ')'
//
// Whitespace is ignored. Any lexical or structural error is a fatal
// gadaerrors.Parse error; there is no recovery.
func Parse(s string) (Type, error) {
	p := &parser{toks: lex(s), src: s}
	t, err := p.union()
	if err != nil {
		return Type{}, err
	}
	if err := p.expect(tokEOF); err != nil {
		return Type{}, err
	}
	return t, nil
}

// MustParse is a convenience wrapper for callers (tests, builtin node
// signatures) that know their input is well formed.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokPipe
	tokComma
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func lex(s string) []token {
	var toks []token
	r := []rune(s)
	for i := 0; i < len(r); {
		c := r[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '|':
			toks = append(toks, token{tokPipe, "|"})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ","})
			i++
		case c == '[':
			toks = append(toks, token{tokLBracket, "["})
			i++
		case c == ']':
			toks = append(toks, token{tokRBracket, "]"})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case unicode.IsLetter(c):
			start := i
			for i < len(r) && (unicode.IsLetter(r[i]) || unicode.IsDigit(r[i]) || r[i] == '_') {
				i++
			}
			toks = append(toks, token{tokIdent, string(r[start:i])})
		default:
			toks = append(toks, token{tokKind(-1), string(c)})
			i++
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks
}

type parser struct {
	toks []token
	pos  int
	src  string
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokKind) error {
	t := p.next()
	if t.kind != k {
		return p.errorf("unexpected token %q", t.text)
	}
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return gadaerrors.New(gadaerrors.Parse, "type expression %q: "+format, append([]any{p.src}, args...)...)
}

// union := type ('|' type)*
func (p *parser) union() (Type, error) {
	first, err := p.typ()
	if err != nil {
		return Type{}, err
	}
	alts := []Type{first}
	for p.peek().kind == tokPipe {
		p.next()
		t, err := p.typ()
		if err != nil {
			return Type{}, err
		}
		alts = append(alts, t)
	}
	return NewUnion(alts...), nil
}

// list := type (',' type)*
func (p *parser) list() ([]Type, error) {
	first, err := p.typ()
	if err != nil {
		return nil, err
	}
	elems := []Type{first}
	for p.peek().kind == tokComma {
		p.next()
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		elems = append(elems, t)
	}
	return elems, nil
}

// type := 'int' | 'float' | 'str' | 'bool' | '[' union? ']' | '(' list ')'
func (p *parser) typ() (Type, error) {
	t := p.peek()
	switch t.kind {
	case tokIdent:
		p.next()
		switch t.text {
		case "int":
			return Int, nil
		case "float":
			return Float, nil
		case "str":
			return String, nil
		case "bool":
			return Bool, nil
		default:
			return Type{}, p.errorf("unknown primitive type %q", t.text)
		}
	case tokLBracket:
		p.next()
		if p.peek().kind == tokRBracket {
			p.next()
			return NewList(nil), nil
		}
		elem, err := p.union()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect(tokRBracket); err != nil {
			return Type{}, err
		}
		return NewList(&elem), nil
	case tokLParen:
		p.next()
		elems, err := p.list()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect(tokRParen); err != nil {
			return Type{}, err
		}
		return NewTuple(elems...), nil
	default:
		return Type{}, p.errorf("expected a type, got %q", t.text)
	}
}
