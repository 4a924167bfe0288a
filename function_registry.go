package optsync

import (
	"fmt"
	"sync"

	"cogentcore.org/core/base/keylist"
)

// Function is a helper callable by name from option expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry holds expression helpers in registration order, which is
// the order engines declare them in.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions keylist.List[string, Function]
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{}
}

// Register adds fn under name. Names are case sensitive and unique.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if name == "" {
		return fmt.Errorf("optsync: function name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("optsync: function %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.functions.AtTry(name); exists {
		return fmt.Errorf("optsync: function %q already registered", name)
	}
	r.functions.Set(name, fn)
	return nil
}

// Lookup returns the function registered under name.
func (r *FunctionRegistry) Lookup(name string) (Function, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.functions.AtTry(name)
}

// Names returns the registered names in registration order.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.functions.Keys...)
}

func (r *FunctionRegistry) clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := NewFunctionRegistry()
	for i, name := range r.functions.Keys {
		out.functions.Set(name, r.functions.Values[i])
	}
	return out
}

// each calls visit for every function in registration order.
func (r *FunctionRegistry) each(visit func(name string, fn Function)) {
	for _, name := range r.Names() {
		if fn, ok := r.Lookup(name); ok {
			visit(name, fn)
		}
	}
}

// WithFunctionRegistry makes a snapshot of registry's functions callable
// from option expressions.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *managerConfig) {
		if registry != nil {
			cfg.functions = registry.clone()
		}
	}
}

// WithCustomFunction registers fn under name for option expressions.
// Duplicate names keep the first function.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *managerConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
