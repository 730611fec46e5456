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

// Package registry enumerates and resolves Gada packages and nodes: it
// turns the raw maps internal/manifest decodes into typed Node and Param
// records, and implements the search algorithms (IterPackages, IterNodes,
// FindNode, Registry.Load of a NodePath) from spec.md §4.2.
package registry

import (
	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/gtype"
)

// Param is an immutable named, typed parameter: a node input/output slot
// or a program-level input declaration.
type Param struct {
	Name  string
	Value any // nil if unset
	Type  gtype.Type
	Help  string
}

// ParamFromConfig builds a Param from a decoded YAML mapping. raw is never
// mutated: spec.md §9 flags a known bug in one source variant where
// Param.from_config pops keys out of the caller's config map in place,
// moving the remainder into extras; this copies the fields it consumes by
// value instead, which leaves raw untouched for any other reader of the
// same decoded document (e.g. the validator's error-path reporting that
// already ran over it).
func ParamFromConfig(raw map[string]any) (Param, error) {
	name, _ := raw["name"].(string)
	if name == "" {
		return Param{}, gadaerrors.New(gadaerrors.Validation, "param requires a name")
	}

	p := Param{Name: name, Type: gtype.Any}
	if v, ok := raw["value"]; ok {
		p.Value = v
	}
	if v, ok := raw["help"].(string); ok {
		p.Help = v
	}
	if v, ok := raw["type"].(string); ok && v != "" {
		t, err := gtype.Parse(v)
		if err != nil {
			return Param{}, err
		}
		p.Type = t
	}
	return p, nil
}

// ParamListFromConfig builds an ordered list of Params from a decoded YAML
// list, preserving declaration order per spec.md §3.
func ParamListFromConfig(raw []any) ([]Param, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]Param, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, gadaerrors.New(gadaerrors.Validation, "param entry must be a mapping")
		}
		p, err := ParamFromConfig(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
