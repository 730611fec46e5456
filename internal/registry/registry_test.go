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
	"os"
	"path/filepath"
	"testing"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/manifest"
)

func writeManifest(t *testing.T, root, pkg, contents string) {
	t.Helper()
	dir := filepath.Join(root, pkg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifest.ManifestFile), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseNodePath(t *testing.T) {
	cases := []struct {
		in     string
		module []string
		name   string
	}{
		{"max", nil, "max"},
		{"a/b/c/name", []string{"a", "b", "c"}, "name"},
		{"pkg/name", []string{"pkg"}, "name"},
	}
	for _, c := range cases {
		p := ParseNodePath(c.in)
		if p.Name != c.name {
			t.Errorf("ParseNodePath(%q).Name = %q, want %q", c.in, p.Name, c.name)
		}
		got := p.Module.Segments()
		if len(got) != len(c.module) {
			t.Errorf("ParseNodePath(%q).Module = %v, want %v", c.in, got, c.module)
			continue
		}
		for i := range got {
			if got[i] != c.module[i] {
				t.Errorf("ParseNodePath(%q).Module = %v, want %v", c.in, got, c.module)
			}
		}
	}
}

func TestLoadBuiltin(t *testing.T) {
	r := New(manifest.NewStore(nil, nil))
	n, err := r.Load(ParseNodePath("max"))
	if err != nil {
		t.Fatalf("Load(max): %v", err)
	}
	if len(n.Inputs) != 2 || n.Inputs[0].Name != "a" || n.Inputs[1].Name != "b" {
		t.Fatalf("unexpected builtin max signature: %+v", n)
	}
}

func TestFindNodeRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "pkg", "nodes:\n  - name: hello\n    runner: builtin\n")
	r := New(manifest.NewStore([]string{root}, nil))

	node, pkg, ok, err := r.FindNode("hello")
	if err != nil {
		t.Fatalf("FindNode: %v", err)
	}
	if !ok {
		t.Fatal("expected to find node hello")
	}
	if node.Name != "hello" || pkg.Name != "pkg" {
		t.Fatalf("unexpected node/package: %+v %+v", node, pkg)
	}
}

func TestFindNodeMissReturnsNotFoundSentinelNotLastIterated(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "pkg", "nodes:\n  - name: a\n  - name: b\n  - name: c\n")
	r := New(manifest.NewStore([]string{root}, nil))

	node, _, ok, err := r.FindNode("does-not-exist")
	if err != nil {
		t.Fatalf("FindNode: %v", err)
	}
	if ok {
		t.Fatalf("expected miss, got node %+v", node)
	}
	if node.Name != "" {
		t.Fatalf("expected zero-value Node on miss (not the last-iterated %q)", node.Name)
	}
}

func TestLoadNodeNotFoundInPackage(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "pkg", "nodes:\n  - name: a\n")
	r := New(manifest.NewStore([]string{root}, nil))

	_, err := r.Load(NodePath{Module: manifest.NewHandle("pkg"), Name: "missing"})
	if gadaerrors.KindOf(err) != gadaerrors.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "pkg", "nodes:\n  - name: a\n")
	r := New(manifest.NewStore([]string{root}, nil))

	if !r.Exists(NodePath{Module: manifest.NewHandle("pkg"), Name: "a"}) {
		t.Fatal("expected pkg/a to exist")
	}
	if r.Exists(NodePath{Module: manifest.NewHandle("pkg"), Name: "b"}) {
		t.Fatal("expected pkg/b to not exist")
	}
}

func TestNodeFromConfigExtrasAndCopySafety(t *testing.T) {
	raw := map[string]any{
		"name":       "gen",
		"runner":     "generic",
		"entrypoint": "mod.fn",
		"bin":        "python3",
	}
	n, err := FromConfig(raw, manifest.NewHandle("pkg"))
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if n.Extras["entrypoint"] != "mod.fn" || n.Extras["bin"] != "python3" {
		t.Fatalf("unexpected extras: %+v", n.Extras)
	}
	if _, stillPresent := raw["name"]; !stillPresent {
		t.Fatal("FromConfig must not mutate the caller's raw map")
	}
}
