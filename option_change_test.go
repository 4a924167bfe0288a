package optsync

import (
	"reflect"
	"testing"
)

func TestNestedPathResolvesFromRegisteredElement(t *testing.T) {
	m, widget, queue := newTestManager(t, nil)
	m.RegisterNestedOption(NewNode(childType, map[string]any{
		"value":  42,
		"nested": map[string]any{"depth": 3},
		"items":  []any{"a", map[string]any{"text": "b"}},
	}), nil)

	cases := []struct {
		fullName string
		expect   string
	}{
		{fullName: "child.value", expect: "child.value=42"},
		{fullName: "child.nested.depth", expect: "child.nested.depth=3"},
		{fullName: "child.items[1].text", expect: `child.items[1].text="b"`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.fullName, func(t *testing.T) {
			widget.reset()
			m.HandleOptionChange(OptionChange{Name: "child", FullName: tc.fullName, Value: -1})
			if got := m.PendingGuards(); !reflect.DeepEqual(got, []string{tc.fullName}) {
				t.Fatalf("expected guard for %s, got %v", tc.fullName, got)
			}
			queue.RunPending()
			if got := widget.trace(); !reflect.DeepEqual(got, []string{tc.expect}) {
				t.Fatalf("expected %s, got %v", tc.expect, got)
			}
		})
	}
}

func TestNestedPathUsesLatestEntry(t *testing.T) {
	m, widget, queue := newTestManager(t, nil)
	m.RegisterNestedOption(NewNode(childType, map[string]any{"value": 1}), nil)
	m.RegisterNestedOption(NewNode(childType, map[string]any{"value": 2}), nil)

	m.HandleOptionChange(OptionChange{Name: "child", FullName: "child.value", Value: 0})
	queue.RunPending()

	if got := widget.trace(); !reflect.DeepEqual(got, []string{"child.value=2"}) {
		t.Fatalf("expected latest entry value, got %v", got)
	}
}

func TestTopLevelChangeUsesGetter(t *testing.T) {
	var asked []string
	m, widget, queue := newTestManager(t, func(name string) any {
		asked = append(asked, name)
		return 300
	})

	m.HandleOptionChange(OptionChange{Name: "width", FullName: "width", Value: 250})
	queue.RunPending()

	if !reflect.DeepEqual(asked, []string{"width"}) {
		t.Fatalf("expected getter asked for width, got %v", asked)
	}
	if got := widget.trace(); !reflect.DeepEqual(got, []string{"width=300"}) {
		t.Fatalf("expected guarded write of getter value, got %v", got)
	}
}

func TestDroppedChanges(t *testing.T) {
	cases := []struct {
		name     string
		getter   OptionValueGetter
		register []Element
		change   OptionChange
	}{
		{
			name:   "nil getter value",
			getter: func(string) any { return nil },
			change: OptionChange{Name: "width", FullName: "width"},
		},
		{
			name:   "typed nil getter value",
			getter: func(string) any { return map[string]any(nil) },
			change: OptionChange{Name: "editing", FullName: "editing.mode"},
		},
		{
			name:   "no getter",
			change: OptionChange{Name: "width", FullName: "width"},
		},
		{
			name:     "collection item path",
			register: []Element{NewNode(columnType, map[string]any{"width": 10})},
			change:   OptionChange{Name: "columns", FullName: "columns[0].width", Value: 20},
		},
		{
			name:     "missing nested prop",
			register: []Element{NewNode(pagingType, map[string]any{"pageSize": 10})},
			change:   OptionChange{Name: "paging", FullName: "paging.pageIndex", Value: 2},
		},
		{
			name:     "nested option without entries",
			register: []Element{},
			change:   OptionChange{Name: "paging", FullName: "paging.pageSize", Value: 2},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			log := &syncLog{}
			m, widget, queue := newTestManager(t, tc.getter, WithSyncLogger(log))
			m.RegisterTree(gridExpected, tc.register...)
			if tc.register != nil && len(tc.register) == 0 {
				m.Registry().Ensure("paging", nil, nil, false)
			}

			m.HandleOptionChange(tc.change)

			if len(m.PendingGuards()) != 0 || queue.RunPending() != 0 || len(widget.calls) != 0 {
				t.Fatalf("expected change dropped, guards %v calls %v", m.PendingGuards(), widget.trace())
			}
			if got := log.kinds(); !reflect.DeepEqual(got, []string{"change.dropped " + tc.change.FullName}) {
				t.Fatalf("expected change.dropped logged, got %v", got)
			}
		})
	}
}

func TestChangesDuringTransactionAreIgnored(t *testing.T) {
	m, widget, queue := newTestManager(t, func(string) any { return "echo" })
	widget.onOption = func(name string, value any) {
		m.HandleOptionChange(OptionChange{Name: name, FullName: name, Value: value})
	}

	m.ProcessChangedValues(map[string]any{"text": "a"}, nil)

	if len(m.PendingGuards()) != 0 || queue.Len() != 0 {
		t.Fatalf("expected echo ignored, guards %v", m.PendingGuards())
	}
}

func TestGuardCoalescingFirstValueWins(t *testing.T) {
	values := []any{"first", "second"}
	m, widget, queue := newTestManager(t, func(string) any {
		value := values[0]
		values = values[1:]
		return value
	})

	m.HandleOptionChange(OptionChange{Name: "text", FullName: "text"})
	m.HandleOptionChange(OptionChange{Name: "text", FullName: "text"})

	if ran := queue.RunPending(); ran != 1 {
		t.Fatalf("expected one deferred write, ran %d", ran)
	}
	if got := widget.trace(); !reflect.DeepEqual(got, []string{`text="first"`}) {
		t.Fatalf("expected first value written once, got %v", got)
	}
}

func TestGuardFlushEchoDoesNotRearm(t *testing.T) {
	m, widget, queue := newTestManager(t, func(string) any { return 7 })
	widget.onOption = func(name string, value any) {
		m.HandleOptionChange(OptionChange{Name: name, FullName: name, Value: value})
	}

	m.HandleOptionChange(OptionChange{Name: "zoom", FullName: "zoom", Value: 7})
	queue.RunPending()

	if len(m.PendingGuards()) != 0 || queue.Len() != 0 {
		t.Fatalf("expected no guard after flush, got %v", m.PendingGuards())
	}
	if got := widget.trace(); !reflect.DeepEqual(got, []string{"zoom=7"}) {
		t.Fatalf("expected a single write, got %v", got)
	}
}

func TestWholeObjectChangeDecomposes(t *testing.T) {
	m, _, _ := newTestManager(t, nil)
	m.RegisterNestedOption(NewNode(childType, map[string]any{"a": 1, "b": 2, "c": 3}), nil)

	m.HandleOptionChange(OptionChange{
		Name:     "child",
		FullName: "child",
		Value:    map[string]any{"c": 0, "a": 0, "b": 0},
	})

	want := []string{"child.a", "child.b", "child.c"}
	if got := m.PendingGuards(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWholeObjectChangeWithScalarIsDropped(t *testing.T) {
	m, _, _ := newTestManager(t, nil)
	m.RegisterNestedOption(NewNode(childType, map[string]any{"a": 1}), nil)

	m.HandleOptionChange(OptionChange{Name: "child", FullName: "child", Value: 5})

	if len(m.PendingGuards()) != 0 {
		t.Fatalf("expected no guards, got %v", m.PendingGuards())
	}
}

func TestNestedExpressionResolvesOnChange(t *testing.T) {
	m, widget, queue := newTestManager(t, nil)
	m.RegisterNestedOption(NewNode(pagingType, map[string]any{
		"pageSize":  10,
		"pageIndex": Expr("pageSize / 5"),
	}), gridExpected)

	m.HandleOptionChange(OptionChange{Name: "paging", FullName: "paging.pageIndex", Value: 0})
	queue.RunPending()

	if got := widget.trace(); !reflect.DeepEqual(got, []string{"paging.pageIndex=2"}) {
		t.Fatalf("expected evaluated value, got %v", got)
	}
}

func TestInlineSchedulerWritesEachChange(t *testing.T) {
	widths := []any{120, 140}
	m, widget, _ := newTestManager(t, func(string) any {
		value := widths[0]
		widths = widths[1:]
		return value
	}, WithScheduler(NewDispatchScheduler(func(cb func()) { cb() })))

	m.HandleOptionChange(OptionChange{Name: "width", FullName: "width", Value: 120})
	m.HandleOptionChange(OptionChange{Name: "width", FullName: "width", Value: 140})

	if got := widget.trace(); !reflect.DeepEqual(got, []string{"width=120", "width=140"}) {
		t.Fatalf("expected both writes, got %v", got)
	}
	if pending := m.PendingGuards(); len(pending) != 0 {
		t.Fatalf("expected no pending guard, got %v", pending)
	}
}
