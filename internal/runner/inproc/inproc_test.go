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

package inproc

import (
	"testing"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/registry"
)

func TestRegisterAndRun(t *testing.T) {
	Register("mypkg.double", func(inputs map[string]any) (map[string]any, error) {
		n := inputs["n"].(int)
		return map[string]any{"out": n * 2}, nil
	})

	node := registry.Node{
		Name:   "double",
		Runner: "inproc",
		Extras: map[string]any{"entrypoint": "mypkg.double"},
	}
	out, err := run(node, map[string]any{"n": 21})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out["out"] != 42 {
		t.Fatalf("out = %v, want 42", out["out"])
	}
}

func TestMissingEntrypointIsFatal(t *testing.T) {
	node := registry.Node{Name: "nope", Extras: map[string]any{}}
	if _, err := run(node, nil); gadaerrors.KindOf(err) != gadaerrors.Validation {
		t.Fatalf("expected Validation error, got %v", err)
	}
}

func TestUnregisteredEntrypointIsFatal(t *testing.T) {
	node := registry.Node{
		Name:   "nope",
		Extras: map[string]any{"entrypoint": "does.not.exist"},
	}
	if _, err := run(node, nil); gadaerrors.KindOf(err) != gadaerrors.NotFound {
		t.Fatalf("expected NotFound error, got %v", err)
	}
}
