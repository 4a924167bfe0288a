package optsync

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

var ErrNoEvaluator = errors.New("optsync: evaluator not configured")

const (
	EngineExpr = "expr"
	EngineCEL  = "cel"
	EngineJS   = "js"
)

// Expression is a prop value computed when it is written to the widget. The
// expression sees the sibling options of the element that declares it.
type Expression struct {
	Source string
	// Engine selects the evaluator; empty uses the configured default.
	Engine string
}

// Expr returns an expression evaluated by the default engine.
func Expr(source string) Expression {
	return Expression{Source: source}
}

// CEL returns an expression evaluated by cel-go.
func CEL(source string) Expression {
	return Expression{Source: source, Engine: EngineCEL}
}

// JS returns an expression evaluated by goja. Requires the js_eval build tag.
func JS(source string) Expression {
	return Expression{Source: source, Engine: EngineJS}
}

// resolveExpressions returns options with every Expression replaced by its
// value. Options whose expression fails are left out.
func (m *Manager) resolveExpressions(ownerPath string, options map[string]any) map[string]any {
	var resolved map[string]any
	for key, value := range options {
		expr, ok := value.(Expression)
		if !ok {
			continue
		}
		if resolved == nil {
			resolved = make(map[string]any, len(options))
			for k, v := range options {
				resolved[k] = v
			}
		}
		path := composePath(ownerPath, key, false, 0)
		result, err := m.evaluateExpression(path, expr, options)
		if err != nil {
			m.logSync(SyncEvent{Kind: SyncEventExpressionFailed, Path: path, Err: err})
			delete(resolved, key)
			continue
		}
		resolved[key] = result
	}
	if resolved == nil {
		return options
	}
	return resolved
}

// compiledExpression is the program a path's expression compiled to, with
// the inputs it was compiled from.
type compiledExpression struct {
	expr   Expression
	engine string
	names  string
	rule   CompiledRule
}

func (m *Manager) evaluateExpression(path string, expr Expression, siblings map[string]any) (any, error) {
	if expr.Source == "" {
		return nil, fmt.Errorf("optsync: expression for %q must not be empty", path)
	}
	options := withoutExpressions(siblings)
	compiled, err := m.compiledRule(path, expr, expressionNames(options))
	if err != nil {
		return nil, err
	}
	start := time.Now()
	value, err := compiled.rule.Evaluate(EvalContext{
		Options: options,
		Path:    path,
		Session: m.cfg.session,
		Now:     start,
	})
	err = evaluationError(EvalPhaseEvaluate, compiled.engine, expr, path, err)
	m.logEvaluator(EvalPhaseEvaluate, compiled.engine, expr, path, start, err)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// compiledRule returns the program cached for path, compiling it when the
// path is new or its expression or sibling names changed.
func (m *Manager) compiledRule(path string, expr Expression, names []string) (*compiledExpression, error) {
	signature := strings.Join(names, ",")
	if cached, ok := m.rules[path]; ok && cached.expr == expr && cached.names == signature {
		return cached, nil
	}
	evaluator, err := m.evaluatorFor(expr.Engine)
	if err != nil {
		return nil, err
	}
	engine := evaluator.Engine()
	start := time.Now()
	rule, err := evaluator.Compile(expr.Source, names)
	err = evaluationError(EvalPhaseCompile, engine, expr, path, err)
	m.logEvaluator(EvalPhaseCompile, engine, expr, path, start, err)
	if err != nil {
		delete(m.rules, path)
		return nil, err
	}
	compiled := &compiledExpression{expr: expr, engine: engine, names: signature, rule: rule}
	m.rules[path] = compiled
	return compiled, nil
}

func (m *Manager) evaluatorFor(engine string) (Evaluator, error) {
	if engine == "" && m.cfg.evaluator != nil {
		return m.cfg.evaluator, nil
	}
	if engine == "" {
		engine = EngineExpr
	}
	if evaluator, ok := m.evaluators[engine]; ok {
		return evaluator, nil
	}
	opts := []EvaluatorOption{
		EvaluatorProgramCache(m.cfg.programCache),
		EvaluatorFunctions(m.cfg.functions),
	}
	var evaluator Evaluator
	switch engine {
	case EngineExpr:
		evaluator = NewExprEvaluator(opts...)
	case EngineCEL:
		evaluator = NewCELEvaluator(opts...)
	case EngineJS:
		evaluator = NewJSEvaluator(opts...)
	default:
		return nil, fmt.Errorf("optsync: unknown expression engine %q", engine)
	}
	if evaluator == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoEvaluator, engine)
	}
	m.evaluators[engine] = evaluator
	return evaluator, nil
}

// withoutExpressions drops unevaluated siblings from an evaluation snapshot.
func withoutExpressions(snapshot map[string]any) map[string]any {
	out := make(map[string]any, len(snapshot))
	for key, value := range snapshot {
		if _, ok := value.(Expression); ok {
			continue
		}
		out[key] = value
	}
	return out
}

// expressionNames returns the sorted sibling names usable as identifiers.
// Prefixed keys such as columns[0].width are left out.
func expressionNames(options map[string]any) []string {
	names := make([]string, 0, len(options))
	for _, name := range sortedKeys(options) {
		if isIdentifier(name) {
			names = append(names, name)
		}
	}
	return names
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
