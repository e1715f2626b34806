// Package backend renders guard IR into host-language source fragments.
//
// The guard package decides what a dispatcher must check; a Backend only
// decides how that reads in one host language. Back ends live in
// subpackages and register themselves from init:
//
//	import _ "wrapgen/internal/backend/cython"
//
//	b, err := backend.Lookup("cython")
//	frags := backend.RenderDispatch(b, d, 2)
//	src := backend.RenderSource(b, d, frags, 2)
package backend

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"wrapgen/internal/guard"
)

// Backend renders guard statements for one host language.
type Backend interface {
	// Language returns the backend name used in manifests and flags.
	Language() string
	// FileExtension returns the extension of generated files, without a dot.
	FileExtension() string
	// IndentUnit is the text of one indentation level.
	IndentUnit() string
	// EmitStmt writes st at the writer's current depth.
	EmitStmt(w *Writer, st guard.Stmt)
	// EmitComment writes a single-line comment.
	EmitComment(w *Writer, text string)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{}
)

// Register makes b available under b.Language(). Registering a name twice panics.
func Register(b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	name := b.Language()
	if _, dup := registry[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	registry[name] = b
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(namesLocked(), "|"))
	}
	return b, nil
}

// Names lists registered backends in lexical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
