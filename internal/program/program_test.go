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

import (
	"testing"

	"gada.dev/gada/internal/gtype"
	"gada.dev/gada/internal/registry"
)

func TestFromConfig(t *testing.T) {
	raw := map[string]any{
		"name":    "demo",
		"outputs": "b",
		"steps": []any{
			map[string]any{"name": "A", "id": "a", "inputs": map[string]any{"in": 1}},
			map[string]any{"name": "B", "id": "b", "inputs": map[string]any{"in": "{{ a.out }}"}},
		},
	}
	p, err := FromConfig(raw)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if p.Name != "demo" || p.Outputs != "b" || len(p.Steps) != 2 {
		t.Fatalf("unexpected program: %+v", p)
	}
	if p.Steps[1].Inputs["in"] != "{{ a.out }}" {
		t.Fatalf("unexpected step input: %+v", p.Steps[1])
	}
}

func TestFromConfigRequiresSteps(t *testing.T) {
	if _, err := FromConfig(map[string]any{"name": "x"}); err == nil {
		t.Fatal("expected error for missing steps")
	}
}

func TestFromNode(t *testing.T) {
	n := registry.Node{
		Name:   "max",
		Runner: "builtin",
		Inputs: []registry.Param{
			{Name: "a", Type: gtype.Any},
			{Name: "b", Type: gtype.Any},
		},
	}
	p := FromNode(n)
	if len(p.Steps) != 1 || p.Steps[0].ID != "node" || p.Outputs != "node" {
		t.Fatalf("unexpected synthesized program: %+v", p)
	}
	if p.Steps[0].Inputs["a"] != "{{ a }}" || p.Steps[0].Inputs["b"] != "{{ b }}" {
		t.Fatalf("unexpected synthesized inputs: %+v", p.Steps[0].Inputs)
	}
}
