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

// Package builtin implements the "builtin" runner: the fixed, closed
// four-function micro-library (set, print, min, max) spec.md §4.7 names as
// the default module. Unlike internal/runner/inproc, this table cannot be
// extended at runtime — it is exactly these four names, forever.
package builtin

import (
	"fmt"
	"io"
	"os"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/registry"
	"gada.dev/gada/internal/runner"
)

// Stdout is where the "print" node writes. Tests redirect it to a buffer.
var Stdout io.Writer = os.Stdout

func init() {
	runner.Register("builtin", runner.Func(run))
}

var table = map[string]func(inputs map[string]any) (map[string]any, error){
	"set":   runSet,
	"print": runPrint,
	"max":   runMax,
	"min":   runMin,
}

func run(node registry.Node, inputs map[string]any) (map[string]any, error) {
	fn, ok := table[node.Name]
	if !ok {
		return nil, gadaerrors.New(gadaerrors.NotFound, "builtin function %q not found", node.Name)
	}
	return fn(inputs)
}

func runSet(inputs map[string]any) (map[string]any, error) {
	return map[string]any{"out": inputs["in"]}, nil
}

func runPrint(inputs map[string]any) (map[string]any, error) {
	fmt.Fprintln(Stdout, inputs["in"])
	return map[string]any{}, nil
}

func runMax(inputs map[string]any) (map[string]any, error) {
	c, err := compare(inputs["a"], inputs["b"])
	if err != nil {
		return nil, err
	}
	if c >= 0 {
		return map[string]any{"out": inputs["a"]}, nil
	}
	return map[string]any{"out": inputs["b"]}, nil
}

func runMin(inputs map[string]any) (map[string]any, error) {
	c, err := compare(inputs["a"], inputs["b"])
	if err != nil {
		return nil, err
	}
	if c <= 0 {
		return map[string]any{"out": inputs["a"]}, nil
	}
	return map[string]any{"out": inputs["b"]}, nil
}

// compare returns <0, 0 or >0 for a<b, a==b, a>b. Comparison failures
// (mismatched or non-orderable types) are fatal, per spec.md §4.7.
func compare(a, b any) (int, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, gadaerrors.New(gadaerrors.Runtime, "cannot compare %T and %T", a, b)
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
