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

package engine

import (
	"log/slog"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/program"
)

// RunProgram implements spec.md §4.5's Program.run: it creates a fresh
// Context seeded with inputs as initial locals, steps it to completion, and,
// if p.Outputs names a completed step id, returns that step's recorded
// outputs.
func RunProgram(p *program.Program, loader Loader, inputs map[string]any, log *slog.Logger) (map[string]any, error) {
	ctx := NewContext(p.Steps, inputs, loader, nil, log)
	if err := ctx.Run(); err != nil {
		return nil, err
	}
	if p.Outputs == "" {
		return nil, nil
	}
	inst, ok := ctx.Node(p.Outputs)
	if !ok {
		return nil, gadaerrors.New(gadaerrors.Programmer, "program outputs reference unknown step id %q", p.Outputs)
	}
	return inst.Outputs, nil
}
