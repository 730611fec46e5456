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

// Command gada is the thin command-line front end over the node runtime:
// argument parsing and subcommand dispatch only, per spec.md §1's
// out-of-scope list. All behavior lives in the internal packages this
// binary wires together.
package main

import (
	"fmt"
	"os"

	"gada.dev/gada/cmd/gada/cmd"

	// Self-registering runners: importing for side effect, the same pattern
	// the teacher uses to pull optional task packages into cmd/cue.
	_ "gada.dev/gada/internal/runner/builtin"
	_ "gada.dev/gada/internal/runner/generic"
	_ "gada.dev/gada/internal/runner/inproc"
	_ "gada.dev/gada/internal/runner/wasm"
)

func main() {
	if err := mainErr(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// mainErr runs the command tree, split out from main so tests can drive it
// via testscript.RunMain without calling os.Exit themselves.
func mainErr() error {
	return cmd.Execute()
}
