//go:build js_eval

package optsync

import "github.com/dop251/goja"

type jsEvaluator struct {
	cfg evaluatorConfig
}

// NewJSEvaluator returns an engine backed by goja. Each evaluation runs in a
// fresh runtime.
func NewJSEvaluator(opts ...EvaluatorOption) Evaluator {
	return &jsEvaluator{cfg: newEvaluatorConfig(opts)}
}

func (e *jsEvaluator) Engine() string { return EngineJS }

func (e *jsEvaluator) Compile(source string, _ []string) (CompiledRule, error) {
	prog, err := program(e.cfg, programKey(EngineJS, source, nil), func() (*goja.Program, error) {
		return goja.Compile("", "(function(){ return ("+source+"); })()", true)
	})
	if err != nil {
		return nil, err
	}
	return jsRule{program: prog, functions: e.cfg.functions}, nil
}

type jsRule struct {
	program   *goja.Program
	functions *FunctionRegistry
}

func (r jsRule) Evaluate(ctx EvalContext) (any, error) {
	vm := goja.New()
	var setErr error
	r.functions.each(func(name string, fn Function) {
		if setErr == nil {
			setErr = vm.Set(name, func(args ...any) (any, error) { return fn(args...) })
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	for name, value := range ctx.variables() {
		if err := vm.Set(name, value); err != nil {
			return nil, err
		}
	}
	value, err := vm.RunProgram(r.program)
	if err != nil {
		return nil, err
	}
	return value.Export(), nil
}
