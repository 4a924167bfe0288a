package optsync

import (
	"errors"
	"fmt"
)

// EvalPhase names the step of an expression's life that an event or error
// belongs to.
type EvalPhase string

const (
	EvalPhaseCompile  EvalPhase = "compile"
	EvalPhaseEvaluate EvalPhase = "evaluate"
)

// EvaluationError reports an expression that failed to compile or evaluate
// for an option path.
type EvaluationError struct {
	Engine string
	Phase  EvalPhase
	Source string
	Path   string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("optsync: %s %s %q at %s: %v", e.Engine, e.Phase, e.Source, e.Path, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// evaluationError wraps err unless it already is an EvaluationError.
func evaluationError(phase EvalPhase, engine string, expr Expression, path string, err error) error {
	if err == nil {
		return nil
	}
	var existing *EvaluationError
	if errors.As(err, &existing) {
		return err
	}
	return &EvaluationError{
		Engine: engine,
		Phase:  phase,
		Source: expr.Source,
		Path:   path,
		Err:    err,
	}
}
