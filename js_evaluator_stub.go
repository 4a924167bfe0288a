//go:build !js_eval

package optsync

// NewJSEvaluator returns nil unless built with the js_eval tag.
func NewJSEvaluator(...EvaluatorOption) Evaluator {
	return nil
}
