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

// Package engine implements the stepwise program interpreter: it walks a
// program.Program's steps in order, resolving each step's node, gathering
// its inputs from prior results, dispatching to the named runner, and
// folding the outputs back into its running state. This is the one package
// in the module with genuinely stateful, order-sensitive invariants
// (spec.md §4.6, §5), so the Context type below enforces them directly
// rather than leaving them to caller discipline — the same way the
// teacher's cue/interpreter packages keep their evaluator state private and
// expose only a narrow stepping API.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/program"
	"gada.dev/gada/internal/registry"
	"gada.dev/gada/internal/runner"
)

// NodeInstance records one completed step's node, call and outputs, keyed
// by the step's id in the owning Context's node_instances map.
type NodeInstance struct {
	Node    registry.Node
	Step    program.NodeCall
	Outputs map[string]any
}

// Loader resolves a node call's node name to a Node. The default is
// registry.Registry.Load by way of NodePath parsing; tests substitute a
// stub to isolate engine behavior from the filesystem.
type Loader interface {
	Load(name string) (registry.Node, error)
}

// registryLoader adapts *registry.Registry (via NodePath parsing) to Loader.
type registryLoader struct {
	reg *registry.Registry
}

func (l registryLoader) Load(name string) (registry.Node, error) {
	return l.reg.Load(registry.ParseNodePath(name))
}

// NewRegistryLoader builds the default Loader backed by reg.
func NewRegistryLoader(reg *registry.Registry) Loader {
	return registryLoader{reg: reg}
}

// Context is the mutable interpreter state for one program run. A Context
// is owned by a single call to Run and must not be shared across
// goroutines or reused after a failed Step, per spec.md §4.6 and §9 ("do
// not share across goroutines/threads").
type Context struct {
	steps  []program.NodeCall
	sp     int
	parent *Context

	vars          map[string]any
	nodeInstances map[string]NodeInstance

	loader  Loader
	log     *slog.Logger
	traceID uuid.UUID

	failed bool
}

// NewContext creates a Context over steps, seeded with initial as its
// starting locals. parent may be nil; when set, var lookups and vars()
// merges chain through it (parent first, self wins), per spec.md §4.6.
func NewContext(steps []program.NodeCall, initial map[string]any, loader Loader, parent *Context, log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}
	vars := make(map[string]any, len(initial))
	for k, v := range initial {
		vars[k] = v
	}
	return &Context{
		steps:         steps,
		loader:        loader,
		parent:        parent,
		vars:          vars,
		nodeInstances: make(map[string]NodeInstance),
		log:           log,
		traceID:       uuid.New(),
	}
}

// IsDone reports whether every step has been attempted.
func (c *Context) IsDone() bool { return c.sp >= len(c.steps) }

// SP returns the context's current stack pointer (index of the next step).
func (c *Context) SP() int { return c.sp }

// Step executes steps[sp] if the context is not done and has not already
// failed, then advances sp. A failed context's Step call is itself a
// Programmer error: spec.md §4.6 says a context that raised is "not
// reusable".
func (c *Context) Step() error {
	if c.failed {
		return gadaerrors.New(gadaerrors.Programmer, "cannot step a failed context")
	}
	if c.IsDone() {
		return nil
	}

	call := c.steps[c.sp]
	log := c.log.With("trace_id", c.traceID.String(), "step", c.sp, "node", call.Name)

	node, err := c.loader.Load(call.Name)
	if err != nil {
		c.failed = true
		loc := ""
		if call.Lineno != 0 {
			loc = fmt.Sprintf(" at line %d", call.Lineno)
		}
		return gadaerrors.Wrap(gadaerrors.NotFound, err, "node %q not found%s", call.Name, loc)
	}

	if err := c.run(node, call); err != nil {
		c.failed = true
		log.Warn("step failed", "error", err)
		return err
	}

	c.sp++
	log.Debug("step completed")
	return nil
}

// run implements spec.md §4.6's _run: pure nodes are no-ops that still
// record an empty-output instance; everything else resolves a runner,
// gathers inputs, invokes the runner, and stores the result.
func (c *Context) run(node registry.Node, call program.NodeCall) error {
	if node.IsPure {
		c.store(node, call, map[string]any{})
		return nil
	}

	runnerName := node.Runner
	if runnerName == "" {
		runnerName = "builtin"
	}
	r, err := runner.Load(runnerName)
	if err != nil {
		return gadaerrors.Wrap(gadaerrors.NotFound, err, "runner %q not found for node %q", runnerName, node.Name)
	}

	inputs := c.gatherInputs(call)

	outputs, err := r.Run(node, inputs)
	if err != nil {
		return err
	}
	c.store(node, call, outputs)
	return nil
}

// gatherInputs resolves each declared input expression per spec.md §4.6:
// non-string values pass through; strings are tried against the
// `{{ id }}` / `{{ id.field }}` shape and resolved against vars/node
// instances on a match, or passed through literally otherwise. Missing
// bindings resolve to nil, not an error — the runner may reject them.
func (c *Context) gatherInputs(call program.NodeCall) map[string]any {
	inputs := make(map[string]any, len(call.Inputs))
	for k, v := range call.Inputs {
		s, ok := v.(string)
		if !ok {
			inputs[k] = v
			continue
		}
		ref, ok := program.ParseVarRef(s)
		if !ok {
			inputs[k] = s
			continue
		}
		if ref.Field == "" {
			inputs[k] = c.Var(ref.ID)
			continue
		}
		inst, ok := c.Node(ref.ID)
		if !ok {
			inputs[k] = nil
			continue
		}
		inputs[k] = inst.Outputs[ref.Field]
	}
	return inputs
}

// store merges outputs into vars (overwriting colliding keys) and, if
// call.ID is set, records a NodeInstance under that id, replacing any
// prior instance with the same id, per spec.md §4.6.
func (c *Context) store(node registry.Node, call program.NodeCall, outputs map[string]any) {
	for k, v := range outputs {
		c.vars[k] = v
	}
	if call.ID != "" {
		c.nodeInstances[call.ID] = NodeInstance{Node: node, Step: call, Outputs: outputs}
	}
}

// Locals returns a copy of this context's own vars, excluding any parent.
func (c *Context) Locals() map[string]any {
	out := make(map[string]any, len(c.vars))
	for k, v := range c.vars {
		out[k] = v
	}
	return out
}

// Vars returns the parent-merged view: parent's vars first, this
// context's own vars win on collision.
func (c *Context) Vars() map[string]any {
	var out map[string]any
	if c.parent != nil {
		out = c.parent.Vars()
	} else {
		out = make(map[string]any)
	}
	for k, v := range c.vars {
		out[k] = v
	}
	return out
}

// Local looks up name in this context's own vars only.
func (c *Context) Local(name string) any { return c.vars[name] }

// Var looks up name in this context's own vars, falling back to parent.
func (c *Context) Var(name string) any {
	if v, ok := c.vars[name]; ok {
		return v
	}
	if c.parent != nil {
		return c.parent.Var(name)
	}
	return nil
}

// Node returns the recorded NodeInstance for id, checked in this context
// then its parent chain.
func (c *Context) Node(id string) (NodeInstance, bool) {
	if inst, ok := c.nodeInstances[id]; ok {
		return inst, true
	}
	if c.parent != nil {
		return c.parent.Node(id)
	}
	return NodeInstance{}, false
}

// Run steps c to completion, stopping at the first error.
func (c *Context) Run() error {
	for !c.IsDone() {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
