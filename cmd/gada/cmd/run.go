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

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/engine"
	"gada.dev/gada/internal/program"
	"gada.dev/gada/internal/registry"
)

func newRunCmd() *cobra.Command {
	var rawInputs []string
	var programFile string

	c := &cobra.Command{
		Use:   "run <target>",
		Short: "Run a single node or a program file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			inputs, err := parseInputs(rawInputs)
			if err != nil {
				return err
			}

			reg := newRegistry()

			var p *program.Program
			switch {
			case programFile != "":
				p, err = loadProgramFile(programFile)
			case len(args) == 1:
				var n registry.Node
				n, err = reg.Load(registry.ParseNodePath(args[0]))
				if err == nil {
					p = program.FromNode(n)
				}
			default:
				return gadaerrors.New(gadaerrors.Validation, "run requires a target or --program")
			}
			if err != nil {
				return err
			}

			loader := engine.NewRegistryLoader(reg)
			out, err := engine.RunProgram(p, loader, inputs, nil)
			if err != nil {
				return err
			}
			return printYAML(c, out)
		},
	}
	c.Flags().StringArrayVar(&rawInputs, "input", nil, "node input as key=value (repeatable)")
	c.Flags().StringVar(&programFile, "program", "", "run a program file instead of a single node")
	return c
}

// parseInputs turns ["a=1", "b=hi"] into a map, coercing each value to an
// int, float or bool when it parses cleanly as one, else leaving it as a
// string — the same best-effort scalar coercion spec.md's manifest schema
// uses for YAML-decoded values.
func parseInputs(raw []string) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for _, kv := range raw {
		idx := strings.IndexByte(kv, '=')
		if idx < 0 {
			return nil, gadaerrors.New(gadaerrors.Validation, "--input %q must be key=value", kv)
		}
		key, val := kv[:idx], kv[idx+1:]
		out[key] = coerce(val)
	}
	return out, nil
}

func coerce(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func loadProgramFile(path string) (*program.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gadaerrors.Wrap(gadaerrors.NotFound, err, "cannot read program file %s", path)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, gadaerrors.Wrap(gadaerrors.Parse, err, "cannot parse program file %s", path)
	}
	p, err := program.FromConfig(raw)
	if err != nil {
		return nil, err
	}
	p.File = path
	return p, nil
}

func printYAML(c *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return gadaerrors.Wrap(gadaerrors.Runtime, err, "cannot encode result")
	}
	fmt.Fprint(c.OutOrStdout(), string(data))
	return nil
}
