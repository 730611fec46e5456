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
	"gada.dev/gada/internal/gtype"
	"gada.dev/gada/internal/manifest"
)

// builtinNodes holds the implicit signatures of the four nodes the core
// builtin module exposes (spec.md §4.7). They have no gada.yml entry, so
// Registry.Load returns their Node records from this table instead of
// asking the manifest store.
var builtinNodes = map[string]Node{
	"set": {
		Name:    "set",
		Module:  manifest.Builtin,
		Runner:  "builtin",
		Inputs:  []Param{{Name: "in", Type: gtype.Any}},
		Outputs: []Param{{Name: "out", Type: gtype.Any}},
	},
	"print": {
		Name:   "print",
		Module: manifest.Builtin,
		Runner: "builtin",
		Inputs: []Param{{Name: "in", Type: gtype.Any}},
	},
	"max": {
		Name:    "max",
		Module:  manifest.Builtin,
		Runner:  "builtin",
		Inputs:  []Param{{Name: "a", Type: gtype.Any}, {Name: "b", Type: gtype.Any}},
		Outputs: []Param{{Name: "out", Type: gtype.Any}},
	},
	"min": {
		Name:    "min",
		Module:  manifest.Builtin,
		Runner:  "builtin",
		Inputs:  []Param{{Name: "a", Type: gtype.Any}, {Name: "b", Type: gtype.Any}},
		Outputs: []Param{{Name: "out", Type: gtype.Any}},
	},
}
