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

// Package cmd implements gada's cobra command tree: run, list package,
// list node, install. Each subcommand builds its own manifest.Store and
// registry.Registry from the resolved search path rather than sharing
// package-level state, the way the teacher's cmd/cue/cmd keeps a fresh
// runtime per invocation.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gada.dev/gada/internal/manifest"
	"gada.dev/gada/internal/registry"
	"gada.dev/gada/internal/runner"
)

var searchPath []string

// Execute runs the root command, returning the first fatal error
// encountered.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gada",
		Short:         "Gada runs and inspects polyglot node packages",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringSliceVar(&searchPath, "path", nil,
		"package search path (defaults to $GADA_PATH, colon-separated)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newInstallCmd())
	return root
}

// resolveSearchPath honors an explicit --path flag, falling back to
// $GADA_PATH (colon-separated, PATH-style) per SPEC_FULL.md §2.3.
func resolveSearchPath() []string {
	if len(searchPath) > 0 {
		return searchPath
	}
	if env := os.Getenv("GADA_PATH"); env != "" {
		return strings.Split(env, ":")
	}
	return nil
}

// newRegistry builds a fresh manifest.Store + registry.Registry pair over
// the resolved search path and installs the store for runners (generic,
// wasm) that need to resolve a package directory.
func newRegistry() *registry.Registry {
	store := manifest.NewStore(resolveSearchPath(), nil)
	runner.SetStore(store)
	return registry.New(store)
}
