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

// Package debug holds the GADA_DEBUG flags, read once at process start.
package debug

import "gada.dev/gada/internal/envflag"

// Flags holds the set of known GADA_DEBUG flags.
var Flags Config

// Config is the shape of GADA_DEBUG, e.g. "trace,keepgoing=0".
type Config struct {
	// Trace is set by the "trace" entry. No other package in this module
	// imports internal/debug, so the flag does not change what is logged.
	Trace bool
	// KeepGoing is set by the "keepgoing" entry. No other package in this
	// module reads it: the engine never retries a failed step, and
	// `gada run` takes a single target.
	KeepGoing bool
}

func init() {
	_ = envflag.Init(&Flags, "GADA_DEBUG")
}
