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

// Package generic implements the "generic" runner: template-driven external
// subprocess execution, modeled on the teacher's pkg/tool/exec task (which
// also shells out and reports stdout/stderr as outputs). The one invariant
// this package must never relax is containment: the resolved file must live
// under its package directory, checked before any process is spawned.
package generic

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/manifest"
	"gada.dev/gada/internal/registry"
	"gada.dev/gada/internal/runner"
)

func init() {
	runner.Register("generic", runner.Func(run))
}

const defaultCommand = "${bin} ${file} ${argv}"

func run(node registry.Node, inputs map[string]any) (map[string]any, error) {
	store := runner.Store()
	if store == nil {
		return nil, gadaerrors.New(gadaerrors.Programmer, "generic runner used before a manifest store was installed")
	}

	pkgDir, err := store.GetModulePath(node.Module)
	if err != nil {
		return nil, err
	}

	file := node.File
	if v, ok := node.Extras["file"].(string); ok && v != "" {
		file = v
	}
	if file == "" {
		return nil, gadaerrors.New(gadaerrors.Validation, "generic node %q has no file", node.Name)
	}

	absFile := filepath.Clean(filepath.Join(pkgDir, file))
	if err := checkContainment(pkgDir, absFile); err != nil {
		return nil, err
	}

	bin, _ := node.Extras["bin"].(string)
	if bin != "" {
		bin = resolveBin(store, node.Module, bin)
	}

	commandTpl := defaultCommand
	if v, ok := node.Extras["command"].(string); ok && v != "" {
		commandTpl = v
	}

	argv := buildArgv(node, inputs)
	command := substitute(commandTpl, map[string]string{
		"bin":  bin,
		"file": absFile,
		"argv": strings.Join(argv, " "),
	})

	argvTokens, err := shlex.Split(command)
	if err != nil {
		return nil, gadaerrors.Wrap(gadaerrors.Validation, err, "cannot tokenize command %q", command)
	}
	if len(argvTokens) == 0 {
		return nil, gadaerrors.New(gadaerrors.Validation, "generic node %q resolved to an empty command", node.Name)
	}

	cwd := pkgDir
	if v, ok := node.Extras["cwd"].(string); ok && v != "" {
		cwd = filepath.Clean(filepath.Join(pkgDir, v))
	}

	cmd := exec.Command(argvTokens[0], argvTokens[1:]...)
	cmd.Dir = cwd
	cmd.Env = buildEnv(node)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, gadaerrors.Wrap(gadaerrors.Runtime, err, "generic node %q failed: %s", node.Name, stderr.String())
	}

	return map[string]any{
		"stdout": stdout.String(),
		"stderr": stderr.String(),
	}, nil
}

// checkContainment enforces spec's sole sandboxing guarantee: the resolved
// absolute file must lie under pkgDir after normalization.
func checkContainment(pkgDir, absFile string) error {
	rel, err := filepath.Rel(pkgDir, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return gadaerrors.New(gadaerrors.Containment, "file %q escapes package directory %q", absFile, pkgDir)
	}
	return nil
}

// resolveBin consults the owning package's manifest "bins" remap table,
// per spec.md §4.4's "optional per-package bins mapping remaps bin names to
// resolved paths". A miss (no manifest, or no entry for bin) leaves bin
// untouched.
func resolveBin(store *manifest.Store, module manifest.Handle, bin string) string {
	m, err := store.LoadModuleConfig(module)
	if err != nil {
		return bin
	}
	if resolved, ok := m.Bins[bin]; ok {
		return resolved
	}
	return bin
}

func buildArgv(node registry.Node, inputs map[string]any) []string {
	argv := make([]string, 0, len(node.Inputs))
	for _, p := range node.Inputs {
		if v, ok := inputs[p.Name]; ok {
			argv = append(argv, fmt.Sprint(v))
		}
	}
	return argv
}

func buildEnv(node registry.Node) []string {
	env := append([]string(nil), os.Environ()...)
	extra, _ := node.Extras["env"].(map[string]any)
	for k, v := range extra {
		env = append(env, fmt.Sprintf("%s=%v", k, v))
	}
	return env
}

func substitute(tpl string, vals map[string]string) string {
	out := tpl
	for k, v := range vals {
		out = strings.ReplaceAll(out, "${"+k+"}", v)
	}
	return out
}
