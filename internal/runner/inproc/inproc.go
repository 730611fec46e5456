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

// Package inproc implements the "inproc" runner: an open registry mapping a
// dotted entrypoint string to a Go function, the in-process generalization
// of the source implementation's "pymodule" runner (which resolved a dotted
// Python symbol at import time). Unlike internal/runner/builtin's fixed
// four-name table, any package can add an entry here via Register, the same
// way the teacher's pkg/tool/* packages self-register against
// internal/task from their own init().
package inproc

import (
	"sync"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/registry"
	"gada.dev/gada/internal/runner"
)

// Entrypoint is the signature a registered in-process function must have.
type Entrypoint func(inputs map[string]any) (map[string]any, error)

var entrypoints sync.Map // dotted name string -> Entrypoint

// Register adds fn under the dotted name entrypoint, replacing any previous
// registration. Intended to be called from an init() function.
func Register(entrypoint string, fn Entrypoint) {
	entrypoints.Store(entrypoint, fn)
}

// Lookup returns the registered function for entrypoint, if any.
func Lookup(entrypoint string) (Entrypoint, bool) {
	v, ok := entrypoints.Load(entrypoint)
	if !ok {
		return nil, false
	}
	return v.(Entrypoint), true
}

func init() {
	runner.Register("inproc", runner.Func(run))
}

// run dispatches node to the function registered under its
// extras.entrypoint. A missing or unregistered entrypoint is fatal.
func run(node registry.Node, inputs map[string]any) (map[string]any, error) {
	raw, ok := node.Extras["entrypoint"]
	if !ok {
		return nil, gadaerrors.New(gadaerrors.Validation, "inproc node %q has no entrypoint", node.Name)
	}
	entrypoint, ok := raw.(string)
	if !ok || entrypoint == "" {
		return nil, gadaerrors.New(gadaerrors.Validation, "inproc node %q entrypoint must be a non-empty string", node.Name)
	}

	fn, ok := Lookup(entrypoint)
	if !ok {
		return nil, gadaerrors.New(gadaerrors.NotFound, "inproc entrypoint %q not registered", entrypoint)
	}
	return fn(inputs)
}
