package optsync

import (
	"reflect"
	"testing"
)

func TestRegistryEnsureKeepsFirstMetadata(t *testing.T) {
	registry := NewRegistry()
	first := registry.Ensure("columns", map[string]string{"defaultWidth": "width"}, nil, true)
	second := registry.Ensure("columns", map[string]string{"other": "x"}, []TemplateMeta{{TmplOption: "t"}}, false)

	if first != second {
		t.Fatalf("expected Ensure to return the existing descriptor")
	}
	if !second.IsCollectionItem || second.Defaults["defaultWidth"] != "width" || len(second.Templates) != 0 {
		t.Fatalf("expected first registration metadata, got %+v", second)
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"paging", "columns", "editing", "columns"} {
		registry.Ensure(name, nil, nil, false)
	}

	var names []string
	for _, option := range registry.Options() {
		names = append(names, option.OptionName)
	}
	if want := []string{"paging", "columns", "editing"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	if registry.Len() != 3 {
		t.Fatalf("expected 3 options, got %d", registry.Len())
	}
}

func TestRegistryResetKeepsDescriptors(t *testing.T) {
	registry := NewRegistry()
	option := registry.Ensure("columns", nil, nil, true)
	option.Entries = append(option.Entries, &ElementEntry{}, &ElementEntry{})

	registry.Reset()

	got, ok := registry.Lookup("columns")
	if !ok || got != option {
		t.Fatalf("expected descriptor to survive reset")
	}
	if len(got.Entries) != 0 {
		t.Fatalf("expected entries cleared, got %d", len(got.Entries))
	}
	if _, ok := got.latest(); ok {
		t.Fatalf("expected no latest entry after reset")
	}
}

func TestRegistryNilSafety(t *testing.T) {
	var registry *Registry
	if _, ok := registry.Lookup("x"); ok {
		t.Fatalf("expected lookup miss on nil registry")
	}
	if registry.Len() != 0 || registry.Options() != nil {
		t.Fatalf("expected empty nil registry")
	}
	registry.Reset()
}
