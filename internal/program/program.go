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

// Package program holds the data model of a Gada program: an ordered list
// of node calls wired together by variable references, decoded from YAML
// the same way internal/manifest decodes a package manifest. It has no
// knowledge of how a program is executed — that is internal/engine's job —
// so that the two can be tested independently, matching the teacher's
// separation between its config-decoding packages and cue/interpreter's
// evaluation.
package program

import (
	"strconv"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/registry"
)

// NodeCall is one step in a program: "invoke the node named Name, binding
// its inputs per Inputs, optionally recording its outputs under ID."
type NodeCall struct {
	Name   string
	ID     string
	File   string
	Lineno int
	Inputs map[string]any
}

// Program is a named, ordered sequence of NodeCalls plus the declared
// top-level inputs and the id whose recorded outputs form the program's
// result.
type Program struct {
	Name    string
	File    string
	Inputs  []registry.Param
	Steps   []NodeCall
	Outputs string // empty means "no declared result id"
}

// FromConfig decodes a program document per spec.md §6's program-file
// schema.
func FromConfig(raw map[string]any) (*Program, error) {
	p := &Program{}

	if v, ok := raw["name"].(string); ok {
		p.Name = v
	}
	if v, ok := raw["outputs"].(string); ok {
		p.Outputs = v
	}

	if v, ok := raw["inputs"].([]any); ok {
		inputs, err := registry.ParamListFromConfig(v)
		if err != nil {
			return nil, err
		}
		p.Inputs = inputs
	}

	steps, ok := raw["steps"].([]any)
	if !ok {
		return nil, gadaerrors.New(gadaerrors.Validation, "program requires a steps list").WithPath("steps")
	}
	for i, item := range steps {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, gadaerrors.New(gadaerrors.Validation, "step must be a mapping").WithPath("steps", strconv.Itoa(i))
		}
		call, err := nodeCallFromConfig(entry)
		if err != nil {
			return nil, err
		}
		p.Steps = append(p.Steps, call)
	}
	return p, nil
}

func nodeCallFromConfig(raw map[string]any) (NodeCall, error) {
	name, _ := raw["name"].(string)
	if name == "" {
		return NodeCall{}, gadaerrors.New(gadaerrors.Validation, "step requires a name").WithPath("name")
	}
	c := NodeCall{Name: name}
	if v, ok := raw["id"].(string); ok {
		c.ID = v
	}
	if v, ok := raw["file"].(string); ok {
		c.File = v
	}
	if v, ok := raw["lineno"]; ok {
		c.Lineno = toInt(v)
	}
	if v, ok := raw["inputs"].(map[string]any); ok {
		c.Inputs = v
	}
	return c, nil
}

// FromNode synthesizes the one-step degenerate program spec.md §4.5
// describes: a single step with id "node" that forwards every declared
// input through as a direct "{{ name }}" reference, with outputs "node".
func FromNode(n registry.Node) *Program {
	inputs := make(map[string]any, len(n.Inputs))
	for _, in := range n.Inputs {
		inputs[in.Name] = "{{ " + in.Name + " }}"
	}
	return &Program{
		Name:   n.Name,
		Inputs: n.Inputs,
		Steps: []NodeCall{{
			Name:   n.Name,
			ID:     "node",
			Inputs: inputs,
		}},
		Outputs: "node",
	}
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	default:
		return 0
	}
}

