package optsync

import "time"

// EvaluatorLogEvent records one compilation or evaluation of an option
// expression.
type EvaluatorLogEvent struct {
	Engine   string
	Phase    EvalPhase
	Source   string
	Path     string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger receives evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// WithEvaluatorLogger attaches an evaluator logger to the Manager. Compile
// events are only emitted when a path's program is (re)built.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *managerConfig) {
		if logger == nil {
			logger = noopEvaluatorLogger{}
		}
		cfg.evalLogger = logger
	}
}

func (m *Manager) logEvaluator(phase EvalPhase, engine string, expr Expression, path string, start time.Time, err error) {
	m.cfg.evalLogger.LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Phase:    phase,
		Source:   expr.Source,
		Path:     path,
		Duration: time.Since(start),
		Err:      err,
	})
}
