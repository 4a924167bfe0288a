package optsync

import (
	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type exprEvaluator struct {
	cfg evaluatorConfig
}

// NewExprEvaluator returns the default engine, backed by expr-lang.
func NewExprEvaluator(opts ...EvaluatorOption) Evaluator {
	return &exprEvaluator{cfg: newEvaluatorConfig(opts)}
}

func (e *exprEvaluator) Engine() string { return EngineExpr }

// Compile ignores names: undeclared identifiers resolve at run time.
func (e *exprEvaluator) Compile(source string, _ []string) (CompiledRule, error) {
	prog, err := program(e.cfg, programKey(EngineExpr, source, nil), func() (*vm.Program, error) {
		return exprlang.Compile(source, e.compileOptions()...)
	})
	if err != nil {
		return nil, err
	}
	return exprRule{program: prog}, nil
}

func (e *exprEvaluator) compileOptions() []exprlang.Option {
	opts := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsAny(),
	}
	e.cfg.functions.each(func(name string, fn Function) {
		opts = append(opts, exprlang.Function(name, fn))
	})
	return opts
}

type exprRule struct {
	program *vm.Program
}

func (r exprRule) Evaluate(ctx EvalContext) (any, error) {
	return exprlang.Run(r.program, ctx.variables())
}
