package optsync

import (
	"fmt"
	"strconv"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// celMaxArity bounds the overloads declared for each registered function.
const celMaxArity = 4

type celEvaluator struct {
	cfg evaluatorConfig
}

// NewCELEvaluator returns an engine backed by cel-go. Sibling options are
// declared as dyn variables, path and session as strings, now as a
// timestamp.
func NewCELEvaluator(opts ...EvaluatorOption) Evaluator {
	return &celEvaluator{cfg: newEvaluatorConfig(opts)}
}

func (e *celEvaluator) Engine() string { return EngineCEL }

func (e *celEvaluator) Compile(source string, names []string) (CompiledRule, error) {
	prog, err := program(e.cfg, programKey(EngineCEL, source, names), func() (cel.Program, error) {
		env, err := cel.NewEnv(e.declarations(names)...)
		if err != nil {
			return nil, err
		}
		ast, issues := env.Compile(source)
		if issues != nil && issues.Err() != nil {
			return nil, issues.Err()
		}
		return env.Program(ast)
	})
	if err != nil {
		return nil, err
	}
	return celRule{program: prog}, nil
}

func (e *celEvaluator) declarations(names []string) []cel.EnvOption {
	declared := make(map[string]bool, len(names))
	opts := make([]cel.EnvOption, 0, len(names)+3)
	for _, name := range names {
		declared[name] = true
		opts = append(opts, cel.Variable(name, cel.DynType))
	}
	// Siblings shadow the ambient variables.
	if !declared[varPath] {
		opts = append(opts, cel.Variable(varPath, cel.StringType))
	}
	if !declared[varSession] {
		opts = append(opts, cel.Variable(varSession, cel.StringType))
	}
	if !declared[varNow] {
		opts = append(opts, cel.Variable(varNow, cel.TimestampType))
	}
	e.cfg.functions.each(func(name string, fn Function) {
		opts = append(opts, celFunction(name, fn))
	})
	return opts
}

// celFunction declares fn with dyn overloads for every arity up to
// celMaxArity.
func celFunction(name string, fn Function) cel.EnvOption {
	binding := func(args ...ref.Val) ref.Val {
		native := make([]any, len(args))
		for i, arg := range args {
			native[i] = arg.Value()
		}
		out, err := fn(native...)
		if err != nil {
			return types.NewErr("%s: %v", name, err)
		}
		return types.DefaultTypeAdapter.NativeToValue(out)
	}
	overloads := make([]cel.FunctionOpt, 0, celMaxArity+1)
	for arity := 0; arity <= celMaxArity; arity++ {
		params := make([]*cel.Type, arity)
		for i := range params {
			params[i] = cel.DynType
		}
		id := name + "_dyn_" + strconv.Itoa(arity)
		overloads = append(overloads, cel.Overload(id, params, cel.DynType, cel.FunctionBinding(binding)))
	}
	return cel.Function(name, overloads...)
}

type celRule struct {
	program cel.Program
}

func (r celRule) Evaluate(ctx EvalContext) (any, error) {
	out, _, err := r.program.Eval(ctx.variables())
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("cel program returned no value")
	}
	return out.Value(), nil
}
