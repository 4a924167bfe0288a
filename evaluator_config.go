package optsync

import (
	"fmt"
	"strings"
)

// ProgramCache shares compiled programs between evaluators, and between
// managers. Keys are namespaced by engine.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache shares cache among the built-in evaluators of the Manager.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *managerConfig) {
		cfg.programCache = cache
	}
}

// EvaluatorOption configures a built-in evaluator.
type EvaluatorOption func(*evaluatorConfig)

type evaluatorConfig struct {
	cache     ProgramCache
	functions *FunctionRegistry
}

// EvaluatorProgramCache reuses compiled programs through cache.
func EvaluatorProgramCache(cache ProgramCache) EvaluatorOption {
	return func(cfg *evaluatorConfig) {
		cfg.cache = cache
	}
}

// EvaluatorFunctions declares registry's functions in the engine.
func EvaluatorFunctions(registry *FunctionRegistry) EvaluatorOption {
	return func(cfg *evaluatorConfig) {
		cfg.functions = registry.clone()
	}
}

func newEvaluatorConfig(opts []EvaluatorOption) evaluatorConfig {
	var cfg evaluatorConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// programKey identifies a compiled program. names is part of the key for
// engines that declare variables at compile time.
func programKey(engine, source string, names []string) string {
	return engine + "|" + strings.Join(names, ",") + "|" + source
}

// program returns the cached program for key, compiling and storing it on a
// miss. Failed compilations are not cached.
func program[P any](cfg evaluatorConfig, key string, compile func() (P, error)) (P, error) {
	var zero P
	if cfg.cache != nil {
		if cached, ok := cfg.cache.Get(key); ok {
			prog, ok := cached.(P)
			if !ok {
				return zero, fmt.Errorf("optsync: cached program %q has type %T", key, cached)
			}
			return prog, nil
		}
	}
	prog, err := compile()
	if err != nil {
		return zero, err
	}
	if cfg.cache != nil {
		cfg.cache.Set(key, prog)
	}
	return prog, nil
}
