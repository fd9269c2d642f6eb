package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"meridian-hq/polaris/pkg/constraint"
)

// ExtensionFunc evaluates a user-registered operator. It receives the
// resolved document value and the constraint value and reports whether the
// constraint holds.
type ExtensionFunc func(actual, expected interface{}) (bool, error)

// Registry is a thread-safe operator table with an opaque version token.
type Registry struct {
	mu         sync.RWMutex
	builtins   map[constraint.Operator]struct{}
	extensions map[constraint.Operator]ExtensionFunc
	bumps      uint64
	version    string
}

// New creates a registry preloaded with the built-in operators.
func New() *Registry {
	r := &Registry{
		builtins:   make(map[constraint.Operator]struct{}),
		extensions: make(map[constraint.Operator]ExtensionFunc),
	}
	for _, op := range constraint.BuiltinOperators() {
		r.builtins[op] = struct{}{}
	}
	r.updateVersion()
	return r
}

// Register adds a user-defined extension operator. Registering over a
// built-in operator name is rejected; re-registering an extension replaces
// it. Either way the version token changes.
func (r *Registry) Register(op constraint.Operator, fn ExtensionFunc) error {
	if fn == nil {
		return fmt.Errorf("extension %q: nil function", op)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.builtins[op]; ok {
		return fmt.Errorf("extension %q: name collides with built-in operator", op)
	}

	r.extensions[op] = fn
	r.bumps++
	r.updateVersion()
	return nil
}

// Builtin reports whether op is a built-in operator.
func (r *Registry) Builtin(op constraint.Operator) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builtins[op]
	return ok
}

// Known reports whether op is built-in or a registered extension.
func (r *Registry) Known(op constraint.Operator) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.builtins[op]; ok {
		return true
	}
	_, ok := r.extensions[op]
	return ok
}

// Extension returns the extension function for op, if one is registered.
func (r *Registry) Extension(op constraint.Operator) (ExtensionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.extensions[op]
	return fn, ok
}

// Version returns the current opaque version token.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Bump invalidates the current version token. Call it when the semantics of
// an existing operator change without the operator table itself changing.
func (r *Registry) Bump() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bumps++
	r.updateVersion()
}

// updateVersion recomputes the token from the operator table and the bump
// counter. Must be called with the write lock held.
func (r *Registry) updateVersion() {
	names := make([]string, 0, len(r.builtins)+len(r.extensions))
	for op := range r.builtins {
		names = append(names, "b:"+string(op))
	}
	for op := range r.extensions {
		names = append(names, "x:"+string(op))
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	fmt.Fprintf(h, "%d", r.bumps)

	r.version = hex.EncodeToString(h.Sum(nil))[:16]
}
