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

package wasm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/gtype"
	"gada.dev/gada/internal/manifest"
	"gada.dev/gada/internal/registry"
	"gada.dev/gada/internal/runner"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	params := []registry.Param{{Name: "a", Type: gtype.Int}, {Name: "b", Type: gtype.Float}}
	args, err := encodeArgs(params, map[string]any{"a": 7, "b": 2.5})
	if err != nil {
		t.Fatalf("encodeArgs: %v", err)
	}
	if got := int64(api.DecodeI64(args[0])); got != 7 {
		t.Fatalf("a = %d, want 7", got)
	}
	if got := api.DecodeF64(args[1]); got != 2.5 {
		t.Fatalf("b = %v, want 2.5", got)
	}

	if decodeResult(gtype.Int, api.EncodeI64(42)) != int64(42) {
		t.Fatal("decodeResult int mismatch")
	}
	if decodeResult(gtype.Bool, 1) != true {
		t.Fatal("decodeResult bool mismatch")
	}
}

func TestEncodeArgsRejectsNonNumeric(t *testing.T) {
	params := []registry.Param{{Name: "s", Type: gtype.Int}}
	if _, err := encodeArgs(params, map[string]any{"s": "not a number"}); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}

func TestContainmentViolationIsFatal(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "pkg")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	store := manifest.NewStore([]string{root}, nil)
	runner.SetStore(store)
	defer runner.SetStore(nil)

	node := registry.Node{
		Name:   "evil",
		Module: manifest.NewHandle("pkg"),
		Extras: map[string]any{"file": "../escape.wasm", "entrypoint": "run"},
	}
	_, err := run(node, nil)
	if gadaerrors.KindOf(err) != gadaerrors.Containment {
		t.Fatalf("expected Containment error, got %v", err)
	}
}
