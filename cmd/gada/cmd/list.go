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

	"github.com/spf13/cobra"

	"gada.dev/gada/gadaerrors"
)

func newListCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List packages or nodes on the search path",
	}
	c.AddCommand(newListPackageCmd())
	c.AddCommand(newListNodeCmd())
	return c
}

func newListPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "package",
		Short: "List every package on the search path",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			reg := newRegistry()
			pkgs, err := reg.IterPackages()
			if err != nil {
				return err
			}
			for _, p := range pkgs {
				fmt.Fprintln(c.OutOrStdout(), p.Name)
			}
			return nil
		},
	}
}

func newListNodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "node",
		Short: "List every node declared by every package",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			reg := newRegistry()
			entries, err := reg.IterNodes()
			if err != nil {
				return err
			}
			for _, e := range entries {
				name, _ := e.Raw["name"].(string)
				if name == "" {
					return gadaerrors.New(gadaerrors.Validation, "node entry in package %q has no name", e.Package.Name)
				}
				fmt.Fprintf(c.OutOrStdout(), "%s/%s\n", e.Package.Name, name)
			}
			return nil
		},
	}
}
