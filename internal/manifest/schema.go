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

package manifest

import (
	"fmt"

	"gada.dev/gada/gadaerrors"
)

// Manifest is the validated, decoded form of a package's gada.yml. Node
// entries are kept as raw maps (not a typed struct) because their shape
// depends on the runner: only "name" is universal, everything else is
// either a recognized Param/Node key or a runner-specific extra consumed
// later by internal/registry.FromConfig.
type Manifest struct {
	Runner string
	Bins   map[string]string
	Nodes  []map[string]any
}

// Empty reports whether m has no content, the shape returned for a package
// directory with no gada.yml (spec.md §4.1: "missing file yields {}").
func (m *Manifest) Empty() bool {
	return m == nil || (m.Runner == "" && len(m.Bins) == 0 && len(m.Nodes) == 0)
}

// validate checks raw, a generically decoded YAML document, against the
// gada.yml schema in spec.md §6, accumulating every violation found rather
// than stopping at the first (matching cue/errors.List's "report everything
// wrong with this file in one pass" approach). On success it returns the
// validated, typed Manifest.
func validate(raw map[string]any) (*Manifest, error) {
	var errs gadaerrors.List
	m := &Manifest{}

	for key, v := range raw {
		switch key {
		case "runner":
			s, ok := v.(string)
			if !ok {
				errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a string").WithPath("runner"))
				continue
			}
			m.Runner = s

		case "bins":
			bins, ok := asStringMap(v)
			if !ok {
				errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a mapping of string to string").WithPath("bins"))
				continue
			}
			m.Bins = bins

		case "nodes":
			list, ok := v.([]any)
			if !ok {
				errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a list").WithPath("nodes"))
				continue
			}
			for i, item := range list {
				entry, ok := asStringKeyedMap(item)
				if !ok {
					errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a mapping").WithPath("nodes", fmt.Sprintf("%d", i)))
					continue
				}
				if err := validateNodeEntry(entry); err != nil {
					for _, e := range err {
						errs.Add(e.WithPath(append([]string{"nodes", fmt.Sprintf("%d", i)}, e.Path...)...))
					}
					continue
				}
				m.Nodes = append(m.Nodes, entry)
			}

		default:
			// Unknown top-level keys are preserved as part of no structure
			// here: the manifest schema is closed at the top level (only
			// runner/bins/nodes are recognized), so flag it.
			errs.Add(gadaerrors.New(gadaerrors.Validation, "unrecognized manifest key %q", key).WithPath(key))
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func validateNodeEntry(entry map[string]any) gadaerrors.List {
	var errs gadaerrors.List

	name, ok := entry["name"]
	if !ok {
		errs.Add(gadaerrors.New(gadaerrors.Validation, "required key missing").WithPath("name"))
	} else if s, ok := name.(string); !ok || s == "" {
		errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a non-empty string").WithPath("name"))
	}

	if v, ok := entry["runner"]; ok {
		if _, ok := v.(string); !ok {
			errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a string").WithPath("runner"))
		}
	}
	if v, ok := entry["pure"]; ok {
		if _, ok := v.(bool); !ok {
			errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a bool").WithPath("pure"))
		}
	}
	if v, ok := entry["file"]; ok {
		if _, ok := v.(string); !ok {
			errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a string").WithPath("file"))
		}
	}
	if v, ok := entry["lineno"]; ok {
		if !isInt(v) {
			errs.Add(gadaerrors.New(gadaerrors.Validation, "must be an int").WithPath("lineno"))
		}
	}
	for _, key := range []string{"inputs", "outputs"} {
		v, ok := entry[key]
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a list").WithPath(key))
			continue
		}
		for i, item := range list {
			param, ok := asStringKeyedMap(item)
			if !ok {
				errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a mapping").WithPath(key, fmt.Sprintf("%d", i)))
				continue
			}
			if err := validateParamEntry(param); err != nil {
				for _, e := range err {
					errs.Add(e.WithPath(append([]string{key, fmt.Sprintf("%d", i)}, e.Path...)...))
				}
			}
		}
	}
	return errs
}

func validateParamEntry(entry map[string]any) gadaerrors.List {
	var errs gadaerrors.List
	name, ok := entry["name"]
	if !ok {
		errs.Add(gadaerrors.New(gadaerrors.Validation, "required key missing").WithPath("name"))
	} else if s, ok := name.(string); !ok || s == "" {
		errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a non-empty string").WithPath("name"))
	}
	for _, key := range []string{"type", "help", "nargs", "action"} {
		if v, ok := entry[key]; ok {
			if _, ok := v.(string); !ok {
				errs.Add(gadaerrors.New(gadaerrors.Validation, "must be a string").WithPath(key))
			}
		}
	}
	return errs
}

func isInt(v any) bool {
	switch v.(type) {
	case int, int32, int64:
		return true
	default:
		return false
	}
}

func asStringMap(v any) (map[string]string, bool) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		s, ok := val.(string)
		if !ok {
			return nil, false
		}
		out[k] = s
	}
	return out, true
}

// asStringKeyedMap reports whether v is a decoded YAML mapping with string
// keys (map[string]any, the shape gopkg.in/yaml.v3 produces for them) and
// returns it. Any other shape, including map[any]any, is rejected.
func asStringKeyedMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
