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

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gada.dev/gada/gadaerrors"
)

func TestLoadModuleConfigMissingFileIsEmpty(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := NewStore([]string{root}, nil)
	m, err := s.LoadModuleConfig("pkg")
	if err != nil {
		t.Fatalf("LoadModuleConfig: %v", err)
	}
	if !m.Empty() {
		t.Fatalf("expected empty manifest, got %+v", m)
	}
}

func TestDumpThenLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := NewStore([]string{root}, nil)

	want := &Manifest{Nodes: []map[string]any{{"name": "x"}}}
	if err := s.DumpModuleConfig("pkg", want); err != nil {
		t.Fatalf("DumpModuleConfig: %v", err)
	}

	got, err := s.LoadModuleConfig("pkg")
	if err != nil {
		t.Fatalf("LoadModuleConfig: %v", err)
	}
	if diff := cmp.Diff(want.Nodes, got.Nodes); diff != "" {
		t.Fatalf("manifest round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadModuleConfigMalformedYAML(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "pkg")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte("nodes: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore([]string{root}, nil)
	if _, err := s.LoadModuleConfig("pkg"); gadaerrors.KindOf(err) != gadaerrors.Parse {
		t.Fatalf("expected a Parse error, got %v", err)
	}
}

func TestLoadModuleConfigValidationCollectsAllErrors(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "pkg")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yamlSrc := "nodes:\n  - runner: 1\n  - name: ok\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(yamlSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore([]string{root}, nil)
	_, err := s.LoadModuleConfig("pkg")
	if err == nil {
		t.Fatal("expected validation error")
	}
	list, ok := err.(gadaerrors.List)
	if !ok {
		t.Fatalf("expected gadaerrors.List, got %T: %v", err, err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 accumulated errors (missing name + bad runner type), got %d: %v", len(list), list)
	}
}

func TestLoadModuleNotFound(t *testing.T) {
	root := t.TempDir()
	s := NewStore([]string{root}, nil)
	if _, err := s.LoadModule("missing"); gadaerrors.KindOf(err) != gadaerrors.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestIterPackagesNested(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"a", filepath.Join("a", "b")} {
		if err := os.MkdirAll(filepath.Join(root, rel), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(root, rel, ManifestFile), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s := NewStore([]string{root}, nil)
	pkgs, err := s.IterPackages()
	if err != nil {
		t.Fatalf("IterPackages: %v", err)
	}
	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	want := []string{"a", "a/b"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("package names mismatch (-want +got):\n%s", diff)
	}
}
