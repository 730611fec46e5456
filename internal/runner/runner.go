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

// Package runner defines the Runner contract (spec.md §4.4) and a global,
// string-keyed registry the builtin/inproc/generic/wasm sub-packages
// self-register against via init(), the same pattern the teacher's
// internal/task package uses for "tool/exec.Run"-style task registration.
package runner

import (
	"sync"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/manifest"
	"gada.dev/gada/internal/registry"
)

// Runner executes one node given its resolved inputs. Runners are stateless
// w.r.t. the engine: the same Runner value is shared across every step that
// names it.
type Runner interface {
	Run(node registry.Node, inputs map[string]any) (map[string]any, error)
}

// Func adapts a plain function to the Runner interface.
type Func func(node registry.Node, inputs map[string]any) (map[string]any, error)

// Run calls f.
func (f Func) Run(node registry.Node, inputs map[string]any) (map[string]any, error) {
	return f(node, inputs)
}

var runners sync.Map // name string -> Runner

// Register adds a runner under name, replacing any previous registration.
func Register(name string, r Runner) { runners.Store(name, r) }

// Lookup returns the registered runner for name, if any.
func Lookup(name string) (Runner, bool) {
	v, ok := runners.Load(name)
	if !ok {
		return nil, false
	}
	return v.(Runner), true
}

// Load returns the registered runner for name, failing fatally if unknown.
func Load(name string) (Runner, error) {
	r, ok := Lookup(name)
	if !ok {
		return nil, gadaerrors.New(gadaerrors.NotFound, "runner %q not found", name)
	}
	return r, nil
}

// store backs the generic and wasm runners' need to resolve a node's
// package directory. It is process-wide, injected once by whichever
// program wires the engine together (spec.md §4.4's runners are never
// handed the store directly by the engine's Run contract, so they keep
// their own reference to it instead).
var store *manifest.Store
var storeMu sync.RWMutex

// SetStore installs the manifest.Store that directory-resolving runners
// (generic, wasm) use to turn a node's Module handle into a filesystem
// path.
func SetStore(s *manifest.Store) {
	storeMu.Lock()
	defer storeMu.Unlock()
	store = s
}

// Store returns the manifest.Store installed by SetStore, or nil if none
// has been installed yet.
func Store() *manifest.Store {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}
