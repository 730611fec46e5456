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
	"github.com/spf13/cobra"

	"gada.dev/gada/gadaerrors"
)

// newInstallCmd is a stub: package/environment management is an explicit
// Non-goal (spec.md §1). It fails loudly rather than silently no-opping,
// so scripts relying on "gada install" notice the gap immediately.
func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <target>",
		Short: "Install a node package (not implemented)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return gadaerrors.New(gadaerrors.Runtime, "install is not implemented: package management is out of scope")
		},
	}
}
