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

// Package gadaerrors defines the fatal-error taxonomy shared by every Gada
// component: the manifest store, the node and runner registries, the
// program loader and the execution engine all report failures as a
// *gadaerrors.Error carrying a Kind, an optional source Position, and an
// optional wrapped cause.
//
// There is deliberately one concrete error type for every kind in the
// taxonomy, not one Go type per kind: callers branch on KindOf(err), the same
// way cue/errors callers branch on the dynamic behavior of the Error
// interface rather than on concrete types.
package gadaerrors

import (
	"errors"
	"fmt"
	"strings"

	"gada.dev/gada/internal/token"
)

// Kind classifies why an operation failed. It is not a Go error type:
// every Kind is carried by the single *Error type below.
type Kind int

const (
	// Unknown is the zero Kind and should not be constructed directly.
	Unknown Kind = iota
	// NotFound reports a missing package, node, runner, manifest key or
	// entrypoint symbol.
	NotFound
	// Parse reports a YAML decode failure or a type-expression syntax
	// error. Variable-reference shape mismatches are never Parse errors:
	// per spec they pass through as literal values instead.
	Parse
	// Validation reports a manifest schema violation.
	Validation
	// Containment reports a generic or wasm runner path escaping its
	// package directory.
	Containment
	// Runtime reports an error raised by a runner's own Run method.
	Runtime
	// Programmer reports misuse of the engine API, such as stepping a
	// context that has already failed.
	Programmer
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Parse:
		return "parse error"
	case Validation:
		return "validation error"
	case Containment:
		return "containment violation"
	case Runtime:
		return "runtime error"
	case Programmer:
		return "programmer error"
	default:
		return "error"
	}
}

// Error is the concrete error type produced by every Gada package.
type Error struct {
	Kind Kind
	Pos  token.Position
	Path []string
	Msg  string
	Err  error // wrapped cause, may be nil
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() || e.Pos.Filename != "" {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	if len(e.Path) > 0 {
		b.WriteString(strings.Join(e.Path, "."))
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// New creates an Error of the given kind with a formatted message and no
// position or cause. Use At or Wrap when those are available.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// At creates an Error of the given kind with a source position attached.
func At(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind that preserves cause as its
// wrapped error. If cause is itself a *Error and kind is Unknown, cause's
// Kind is reused.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	if kind == Unknown {
		if e, ok := cause.(*Error); ok {
			kind = e.Kind
		}
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// WithPath returns a copy of e with Path set, for reporting which manifest
// key failed validation.
func (e *Error) WithPath(path ...string) *Error {
	c := *e
	c.Path = path
	return &c
}

// WithPos returns a copy of e with Pos set.
func (e *Error) WithPos(pos token.Position) *Error {
	c := *e
	c.Pos = pos
	return &c
}

// KindOf returns the Kind of the first *Error in err's chain (found with
// errors.As), or Unknown if there is none. Callers test a kind with
// KindOf(err) == k.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// List accumulates every Error found while validating one manifest or
// program document, modeled on cue/errors.List: a manifest with three bad
// keys reports all three in one failure rather than stopping at the first.
type List []*Error

var _ error = (List)(nil)

// Add appends err to the list. A nil err is a no-op.
func (l *List) Add(err *Error) {
	if err == nil {
		return
	}
	*l = append(*l, err)
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		msgs := make([]string, len(l))
		for i, e := range l {
			msgs[i] = e.Error()
		}
		return fmt.Sprintf("%s (and %d more errors)", msgs[0], len(l)-1)
	}
}
