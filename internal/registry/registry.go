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

package registry

import (
	"strings"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/manifest"
)

// Registry resolves node and package references against a manifest.Store.
type Registry struct {
	Store *manifest.Store
}

// New creates a Registry backed by store.
func New(store *manifest.Store) *Registry {
	return &Registry{Store: store}
}

// IterPackages enumerates every package on the search path.
func (r *Registry) IterPackages() ([]manifest.PackageInfo, error) {
	return r.Store.IterPackages()
}

// NodeEntry pairs a raw manifest node entry with the package it came from,
// in the order spec.md §4.2's IterNodes promises: search-path order, then
// alphabetical per directory, then manifest declaration order within a
// package.
type NodeEntry struct {
	Package manifest.PackageInfo
	Raw     map[string]any
}

// IterNodes enumerates every node entry declared by every package.
func (r *Registry) IterNodes() ([]NodeEntry, error) {
	pkgs, err := r.IterPackages()
	if err != nil {
		return nil, err
	}
	var out []NodeEntry
	for _, pkg := range pkgs {
		if pkg.Manifest == nil {
			continue
		}
		for _, raw := range pkg.Manifest.Nodes {
			out = append(out, NodeEntry{Package: pkg, Raw: raw})
		}
	}
	return out, nil
}

// FindNode returns the first node across all packages (in IterNodes order)
// whose "name" field equals name.
//
// spec.md §9 flags a known bug in one source variant of find_node: its loop
// falls through with `return node` outside the loop body, so on a total
// miss it returns the *last* node it examined instead of a not-found
// signal. This implementation never does that: a miss returns ok == false
// and a zero Node, full stop.
func (r *Registry) FindNode(name string) (Node, manifest.PackageInfo, bool, error) {
	entries, err := r.IterNodes()
	if err != nil {
		return Node{}, manifest.PackageInfo{}, false, err
	}
	for _, e := range entries {
		if n, _ := e.Raw["name"].(string); n == name {
			mod := manifest.NewHandle(splitName(e.Package.Name)...)
			node, err := FromConfig(e.Raw, mod)
			if err != nil {
				return Node{}, manifest.PackageInfo{}, false, err
			}
			return node, e.Package, true, nil
		}
	}
	return Node{}, manifest.PackageInfo{}, false, nil
}

// Load resolves p to a fully materialized Node, consulting (and populating)
// the manifest store's per-(package,name) cache.
func (r *Registry) Load(p NodePath) (Node, error) {
	if p.Module.IsBuiltin() {
		n, ok := builtinNodes[p.Name]
		if !ok {
			return Node{}, gadaerrors.New(gadaerrors.NotFound, "node %q not found in builtin module", p.Name)
		}
		return n, nil
	}

	handle, err := r.Store.LoadModule(p.Module)
	if err != nil {
		return Node{}, err
	}

	if cached, ok := r.Store.GetCachedNode(handle, p.Name); ok {
		return cached.(Node), nil
	}

	m, err := r.Store.LoadModuleConfig(handle)
	if err != nil {
		return Node{}, err
	}
	for _, raw := range m.Nodes {
		if n, _ := raw["name"].(string); n == p.Name {
			node, err := FromConfig(raw, handle)
			if err != nil {
				return Node{}, err
			}
			if node.Runner == "" {
				node.Runner = m.Runner
			}
			r.Store.SetCachedNode(handle, p.Name, node)
			return node, nil
		}
	}
	return Node{}, gadaerrors.New(gadaerrors.NotFound, "node %q not found in package %q", p.Name, p.Module.String())
}

// Exists reports whether p resolves to a Node without raising an error.
func (r *Registry) Exists(p NodePath) bool {
	_, err := r.Load(p)
	return err == nil
}

// Absolute returns the absolute package directory p's module resolves to.
// For a builtin reference it returns the empty string: the builtin module
// has no directory on disk.
func (r *Registry) Absolute(p NodePath) (string, error) {
	if p.Module.IsBuiltin() {
		return "", nil
	}
	return r.Store.GetModulePath(p.Module)
}

func splitName(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, "/")
}
