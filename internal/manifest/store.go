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

// Package manifest locates Gada packages on a search path and reads,
// writes, validates and caches their gada.yml manifests. It is the sole
// component that touches the filesystem for package discovery; everything
// above it (internal/registry) works in terms of the Handle and Manifest
// values this package produces.
package manifest

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"gada.dev/gada/gadaerrors"
	"gada.dev/gada/internal/token"
)

// ManifestFile is the fixed name of a package's manifest, matching
// spec.md §6.
const ManifestFile = "gada.yml"

// Handle identifies a package independently of where it happens to live on
// the search path. It is the tagged-union boundary spec.md §9 calls for:
// string paths, slash-separated segment lists, and already-resolved
// handles all normalize to a Handle before touching the store's caches.
type Handle struct {
	segments []string
}

// Builtin is the handle of Gada's core builtin module (named gada._lang in
// the source implementation), used for NodePath values with no "/".
var Builtin = Handle{segments: nil}

// NewHandle builds a Handle from already-split path segments.
func NewHandle(segments ...string) Handle {
	if len(segments) == 0 {
		return Builtin
	}
	return Handle{segments: append([]string(nil), segments...)}
}

// IsBuiltin reports whether h is the core builtin module.
func (h Handle) IsBuiltin() bool { return len(h.segments) == 0 }

// Segments returns h's path segments, nil for the builtin module.
func (h Handle) Segments() []string { return h.segments }

// String renders h as a slash-joined path, or "<builtin>".
func (h Handle) String() string {
	if h.IsBuiltin() {
		return "<builtin>"
	}
	return strings.Join(h.segments, "/")
}

func (h Handle) key() string { return h.String() }

// Ref is anything that can be resolved to a Handle: a slash-separated
// string, a []string of segments, or a Handle itself.
type Ref any

// ResolveRef normalizes ref into a Handle without touching the filesystem.
func ResolveRef(ref Ref) (Handle, error) {
	switch v := ref.(type) {
	case Handle:
		return v, nil
	case string:
		if v == "" {
			return Builtin, nil
		}
		return NewHandle(strings.Split(v, "/")...), nil
	case []string:
		return NewHandle(v...), nil
	default:
		return Handle{}, gadaerrors.New(gadaerrors.Programmer, "invalid package reference of type %T", ref)
	}
}

// Store is the process-wide (or test-scoped) cache of resolved packages.
// It is safe for concurrent use: spec.md §5 requires the caches to be
// guarded once concurrent execution is offered, so every cache here is
// behind a single mutex even though the engine itself drives it
// single-threadedly.
type Store struct {
	searchPath []string
	log        *slog.Logger

	mu            sync.RWMutex
	dirCache      map[string]string
	manifestCache map[string]*Manifest
	nodeCache     map[string]any // key: handle.key() + "\x00" + name
}

// NewStore creates a Store that looks for packages on searchPath, in order.
func NewStore(searchPath []string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		searchPath:    append([]string(nil), searchPath...),
		log:           log,
		dirCache:      make(map[string]string),
		manifestCache: make(map[string]*Manifest),
		nodeCache:     make(map[string]any),
	}
}

// SearchPath returns a copy of the store's search path.
func (s *Store) SearchPath() []string { return append([]string(nil), s.searchPath...) }

// LoadModule resolves ref to a Handle and confirms the package exists on
// the search path, failing with a NotFound error otherwise.
func (s *Store) LoadModule(ref Ref) (Handle, error) {
	h, err := ResolveRef(ref)
	if err != nil {
		return Handle{}, err
	}
	if h.IsBuiltin() {
		return h, nil
	}
	if _, err := s.GetModulePath(h); err != nil {
		return Handle{}, err
	}
	return h, nil
}

// GetModulePath returns the cached absolute directory of the resolved
// handle, searching the search path on a cache miss.
func (s *Store) GetModulePath(ref Ref) (string, error) {
	h, err := ResolveRef(ref)
	if err != nil {
		return "", err
	}
	s.mu.RLock()
	if dir, ok := s.dirCache[h.key()]; ok {
		s.mu.RUnlock()
		return dir, nil
	}
	s.mu.RUnlock()

	for _, root := range s.searchPath {
		dir := filepath.Join(append([]string{root}, h.segments...)...)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			s.mu.Lock()
			s.dirCache[h.key()] = dir
			s.mu.Unlock()
			s.log.Debug("resolved package directory", "package", h.String(), "dir", dir)
			return dir, nil
		}
	}
	return "", gadaerrors.New(gadaerrors.NotFound, "package %q not found on search path", h.String())
}

// LoadModuleConfig reads and decodes ref's gada.yml. A missing file yields
// an empty Manifest; malformed YAML or a schema violation is fatal.
func (s *Store) LoadModuleConfig(ref Ref) (*Manifest, error) {
	h, err := ResolveRef(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if m, ok := s.manifestCache[h.key()]; ok {
		s.mu.RUnlock()
		return m, nil
	}
	s.mu.RUnlock()

	dir, err := s.GetModulePath(h)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		m := &Manifest{}
		s.mu.Lock()
		s.manifestCache[h.key()] = m
		s.mu.Unlock()
		return m, nil
	}
	if err != nil {
		return nil, gadaerrors.Wrap(gadaerrors.NotFound, err, "cannot read %s", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, gadaerrors.At(gadaerrors.Parse, token.Position{Filename: path}, "cannot parse YAML: %v", err)
	}
	raw = normalizeYAML(raw).(map[string]any)

	m, err := validate(raw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.manifestCache[h.key()] = m
	s.mu.Unlock()
	return m, nil
}

// DumpModuleConfig serializes m as YAML and writes it to ref's gada.yml,
// creating the file if absent, then invalidates the cached manifest entry
// so the next LoadModuleConfig re-reads it from disk.
func (s *Store) DumpModuleConfig(ref Ref, m *Manifest) error {
	h, err := ResolveRef(ref)
	if err != nil {
		return err
	}
	dir, err := s.GetModulePath(h)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, ManifestFile)

	doc := map[string]any{}
	if m.Runner != "" {
		doc["runner"] = m.Runner
	}
	if len(m.Bins) > 0 {
		doc["bins"] = m.Bins
	}
	if len(m.Nodes) > 0 {
		doc["nodes"] = m.Nodes
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return gadaerrors.Wrap(gadaerrors.Runtime, err, "cannot encode manifest")
	}
	// Not atomic: spec.md §5 notes the package directory is assumed
	// exclusively owned by Gada during writes.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return gadaerrors.Wrap(gadaerrors.Runtime, err, "cannot write %s", path)
	}

	s.mu.Lock()
	delete(s.manifestCache, h.key())
	s.mu.Unlock()
	return nil
}

// GetCachedNode returns the memoized node value for (handle, name), if any.
// The value is opaque (any) to avoid an import cycle with internal/registry,
// which defines the concrete Node type and performs the type assertion.
func (s *Store) GetCachedNode(h Handle, name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.nodeCache[h.key()+"\x00"+name]
	return v, ok
}

// SetCachedNode memoizes node for (handle, name).
func (s *Store) SetCachedNode(h Handle, name string, node any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodeCache[h.key()+"\x00"+name] = node
}

// Reset clears all four caches (directory, manifest, node — the dir cache
// backs module resolution too, so "four caches" in spec.md §4.1 collapses
// to these three maps plus the implied module-resolution cache they share).
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirCache = make(map[string]string)
	s.manifestCache = make(map[string]*Manifest)
	s.nodeCache = make(map[string]any)
}

// PackageInfo describes one discovered package.
type PackageInfo struct {
	Path         string
	Name         string
	ManifestPath string
	Manifest     *Manifest
}

// IterPackages walks the search path in order and, within each search
// root, walks subdirectories alphabetically, yielding every directory that
// contains a gada.yml.
func (s *Store) IterPackages() ([]PackageInfo, error) {
	var out []PackageInfo
	for _, root := range s.searchPath {
		pkgs, err := s.iterPackagesUnder(root, nil)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, pkgs...)
	}
	return out, nil
}

// iterPackagesUnder recurses into dir (identified by the search-path-relative
// segments seen so far), alphabetically within each level, so a package at
// "a/b/c" is discoverable the same way NodePath("a/b/c/name") expects.
func (s *Store) iterPackagesUnder(dir string, segments []string) ([]PackageInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, gadaerrors.Wrap(gadaerrors.Runtime, err, "cannot read %s", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []PackageInfo
	for _, name := range names {
		childDir := filepath.Join(dir, name)
		childSegments := append(append([]string(nil), segments...), name)
		manifestPath := filepath.Join(childDir, ManifestFile)
		if _, err := os.Stat(manifestPath); err == nil {
			m, err := s.LoadModuleConfig(NewHandle(childSegments...))
			if err != nil {
				return nil, err
			}
			out = append(out, PackageInfo{
				Path:         childDir,
				Name:         strings.Join(childSegments, "/"),
				ManifestPath: manifestPath,
				Manifest:     m,
			})
		}
		sub, err := s.iterPackagesUnder(childDir, childSegments)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// normalizeYAML walks a decoded document and returns a fresh copy of every
// map[string]any and []any in it; other values are returned as they are.
// gopkg.in/yaml.v3 decodes string-keyed mappings as map[string]any when the
// target is `any`. A mapping with non-string keys (map[any]any) is not
// converted, so the schema validator rejects it as not a mapping.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
