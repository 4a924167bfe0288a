package optsync

import "reflect"

// HandleOptionChange reacts to a widget-originated option change. The value
// the element tree currently holds for the path is scheduled to be written
// back on the next turn unless an authoritative prop update for the same path
// arrives first. Changes raised while the manager is applying a batch are its
// own echo and are ignored.
func (m *Manager) HandleOptionChange(change OptionChange) {
	if m.updating {
		return
	}

	var value any
	if nested, ok := m.nested.Lookup(change.Name); ok {
		if change.Name == change.FullName {
			m.decomposeChange(change)
			return
		}
		// Collection items resolve no value.
		if !nested.IsCollectionItem {
			value = m.nestedOptionValue(nested, change.FullName)
		}
	} else if m.getter != nil {
		value = m.getter(change.Name)
	}

	if isNil(value) {
		m.logSync(SyncEvent{Kind: SyncEventChangeDropped, Path: change.FullName})
		return
	}
	if m.guards.arm(change.FullName, value) {
		m.logSync(SyncEvent{Kind: SyncEventGuardArmed, Path: change.FullName, Value: value})
		m.emitActivity(verbGuardArmed, change.FullName, value)
	}
}

// decomposeChange splits a whole-object change into one change per key.
func (m *Manager) decomposeChange(change OptionChange) {
	fields, ok := change.Value.(map[string]any)
	if !ok {
		m.logSync(SyncEvent{Kind: SyncEventChangeDropped, Path: change.FullName, Value: change.Value})
		return
	}
	for _, key := range sortedKeys(fields) {
		m.HandleOptionChange(OptionChange{
			Name:     change.Name,
			FullName: change.FullName + "." + key,
			Value:    fields[key],
		})
	}
}

// nestedOptionValue reads fullName from the own options of the most recent
// element registered under nested.
func (m *Manager) nestedOptionValue(nested *NestedOption, fullName string) any {
	entry, ok := nested.latest()
	if !ok {
		return nil
	}
	own := m.cfg.separator.SeparateProps(entry.Element.Props(), nested.Defaults, nil).Options
	segments := splitPath(fullName)
	if len(segments) < 2 {
		return nil
	}
	value, _ := lookupPath(own, segments[1:])
	if expr, ok := value.(Expression); ok {
		resolved, err := m.evaluateExpression(fullName, expr, own)
		if err != nil {
			m.logSync(SyncEvent{Kind: SyncEventExpressionFailed, Path: fullName, Err: err})
			return nil
		}
		return resolved
	}
	return value
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func (m *Manager) flushGuard(path string, value any) {
	m.setOption(path, value)
	m.logSync(SyncEvent{Kind: SyncEventGuardFlushed, Path: path, Value: value})
	m.emitActivity(verbGuardFlushed, path, value)
}
