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
	"strings"

	"gada.dev/gada/internal/manifest"
)

// NodePath is a parsed "a/b/c/name" node reference. A name with no "/"
// resolves into the core builtin module.
type NodePath struct {
	Module manifest.Handle
	Name   string
}

// ParseNodePath parses s into a NodePath. It never fails: any string,
// including the empty one, is a legal (if likely nonexistent) node name.
func ParseNodePath(s string) NodePath {
	if !strings.Contains(s, "/") {
		return NodePath{Module: manifest.Builtin, Name: s}
	}
	idx := strings.LastIndex(s, "/")
	segments := strings.Split(s[:idx], "/")
	return NodePath{Module: manifest.NewHandle(segments...), Name: s[idx+1:]}
}

// String renders the NodePath back to "a/b/c/name" form, or bare "name"
// for a builtin reference.
func (p NodePath) String() string {
	if p.Module.IsBuiltin() {
		return p.Name
	}
	return p.Module.String() + "/" + p.Name
}
