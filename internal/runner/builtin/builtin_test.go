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

package builtin

import (
	"bytes"
	"strings"
	"testing"

	"gada.dev/gada/internal/registry"
)

func TestMaxMin(t *testing.T) {
	out, err := run(registry.Node{Name: "max"}, map[string]any{"a": 1, "b": 2})
	if err != nil || out["out"] != 2 {
		t.Fatalf("max(1,2) = %v, %v", out, err)
	}
	out, err = run(registry.Node{Name: "max"}, map[string]any{"a": 5, "b": -3})
	if err != nil || out["out"] != 5 {
		t.Fatalf("max(5,-3) = %v, %v", out, err)
	}
	out, err = run(registry.Node{Name: "min"}, map[string]any{"a": 5, "b": -3})
	if err != nil || out["out"] != -3 {
		t.Fatalf("min(5,-3) = %v, %v", out, err)
	}
}

func TestSet(t *testing.T) {
	out, err := run(registry.Node{Name: "set"}, map[string]any{"in": "hello"})
	if err != nil || out["out"] != "hello" {
		t.Fatalf("set(hello) = %v, %v", out, err)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	defer func() { Stdout = old }()

	out, err := run(registry.Node{Name: "print"}, map[string]any{"in": "hi"})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("print should have no outputs, got %v", out)
	}
	if strings.TrimSpace(buf.String()) != "hi" {
		t.Fatalf("print wrote %q", buf.String())
	}
}

func TestCompareFailureIsFatal(t *testing.T) {
	if _, err := run(registry.Node{Name: "max"}, map[string]any{"a": "x", "b": 1}); err == nil {
		t.Fatal("expected comparison failure to be fatal")
	}
}

func TestUnknownBuiltin(t *testing.T) {
	if _, err := run(registry.Node{Name: "nope"}, nil); err == nil {
		t.Fatal("expected error for unknown builtin function")
	}
}
