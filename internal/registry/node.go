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
	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/manifest"
)

// Node is a callable definition: a package-qualified name bound to a
// runner, with typed, ordered inputs and outputs.
type Node struct {
	Name    string
	Module  manifest.Handle
	File    string
	Lineno  int
	Runner  string // empty means "use the package default, or builtin"
	IsPure  bool
	Inputs  []Param
	Outputs []Param
	Extras  map[string]any
}

// nodeConfigKeys are the keys FromConfig consumes itself; everything
// else in the raw map is carried through to Extras verbatim.
var nodeConfigKeys = map[string]bool{
	"name": true, "file": true, "lineno": true, "runner": true,
	"pure": true, "inputs": true, "outputs": true,
}

// FromConfig parses one manifest node entry. raw is copied before any key
// is consumed (see ParamFromConfig's doc comment for why: the source
// implementation's in-place-pop variant is a known bug spec.md §9 calls
// out, and cloning here is what avoids it).
func FromConfig(raw map[string]any, module manifest.Handle) (Node, error) {
	clone := make(map[string]any, len(raw))
	for k, v := range raw {
		clone[k] = v
	}

	name, _ := clone["name"].(string)
	if name == "" {
		return Node{}, gadaerrors.New(gadaerrors.Validation, "node requires a name")
	}

	n := Node{Name: name, Module: module}
	if v, ok := clone["file"].(string); ok {
		n.File = v
	}
	if v, ok := clone["lineno"]; ok {
		n.Lineno = toInt(v)
	}
	if v, ok := clone["runner"].(string); ok {
		n.Runner = v
	}
	if v, ok := clone["pure"].(bool); ok {
		n.IsPure = v
	}
	if v, ok := clone["inputs"].([]any); ok {
		inputs, err := ParamListFromConfig(v)
		if err != nil {
			return Node{}, err
		}
		n.Inputs = inputs
	}
	if v, ok := clone["outputs"].([]any); ok {
		outputs, err := ParamListFromConfig(v)
		if err != nil {
			return Node{}, err
		}
		n.Outputs = outputs
	}

	extras := make(map[string]any)
	for k, v := range clone {
		if !nodeConfigKeys[k] {
			extras[k] = v
		}
	}
	n.Extras = extras
	return n, nil
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
