package optsync

import (
	"reflect"
	"strings"
)

// ProcessChangedValues writes every option whose value differs between
// newProps and prevProps to the widget, in key order, inside a single
// BeginUpdate/EndUpdate transaction. A pending guard for a written path is
// cancelled first: the incoming value is authoritative. An expression that
// fails to evaluate writes nothing and cancels nothing.
func (m *Manager) ProcessChangedValues(newProps, prevProps map[string]any) {
	m.updating = false

	for _, name := range sortedKeys(newProps) {
		value := newProps[name]
		if sameValue(value, prevProps[name]) {
			continue
		}

		// A failed expression leaves any pending guard armed.
		if expr, ok := value.(Expression); ok {
			resolved, err := m.evaluateExpression(name, expr, scopedSnapshot(name, newProps))
			if err != nil {
				m.logSync(SyncEvent{Kind: SyncEventExpressionFailed, Path: name, Err: err})
				continue
			}
			value = resolved
		}

		if m.guards.cancel(name) {
			m.logSync(SyncEvent{Kind: SyncEventGuardCancelled, Path: name, Value: value})
			m.emitActivity(verbGuardCancelled, name, value)
		}

		if !m.updating {
			m.instance().BeginUpdate()
			m.updating = true
		}
		m.setOption(name, value)
	}

	if m.updating {
		m.updating = false
		m.instance().EndUpdate()
	}
}

// WrapEventHandlers replaces, in place, every event handler in options with
// one that is suppressed while a transaction is in progress.
func (m *Manager) WrapEventHandlers(options map[string]any) {
	for name, value := range options {
		if isEventHandler(name, value) {
			options[name] = m.wrapEventHandler(value)
		}
	}
}

func (m *Manager) setOption(name string, value any) {
	actual := value
	if isEventHandler(name, value) {
		actual = m.wrapEventHandler(value)
	}
	m.instance().Option(name, actual)
	m.logSync(SyncEvent{Kind: SyncEventWrite, Path: name, Value: value})
	m.emitActivity(verbOptionWritten, name, value)
}

// wrapEventHandler returns a function of the handler's own type that does
// nothing, returning zero values, while the manager is applying a batch.
func (m *Manager) wrapEventHandler(handler any) any {
	fn := reflect.ValueOf(handler)
	fnType := fn.Type()
	wrapped := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		if m.updating {
			results := make([]reflect.Value, fnType.NumOut())
			for i := range results {
				results[i] = reflect.Zero(fnType.Out(i))
			}
			return results
		}
		if fnType.IsVariadic() {
			return fn.CallSlice(args)
		}
		return fn.Call(args)
	})
	return wrapped.Interface()
}

func isEventHandler(name string, value any) bool {
	if !strings.HasPrefix(name, "on") || value == nil {
		return false
	}
	fn := reflect.ValueOf(value)
	return fn.Kind() == reflect.Func && !fn.IsNil()
}

// sameValue reports identity-style equality: comparable values by ==, maps,
// pointers and channels by reference, slices by backing array and length.
// Functions never compare equal.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Type().Comparable() {
		return false
	}
	return comparableEqual(a, b)
}

// comparableEqual guards against structs holding uncomparable interface
// values, which panic on ==.
func comparableEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
