package optsync

import "cogentcore.org/core/base/keylist"

// NestedOption describes one option name within a registry level together
// with every element currently registered under it.
type NestedOption struct {
	OptionName       string
	IsCollectionItem bool
	Defaults         map[string]string
	Templates        []TemplateMeta
	Entries          []*ElementEntry
}

// ElementEntry is one concrete element registered under a NestedOption.
type ElementEntry struct {
	Element         Element
	Children        *Registry
	PredefinedProps map[string]any
}

// latest returns the most recently registered entry.
func (o *NestedOption) latest() (*ElementEntry, bool) {
	if o == nil || len(o.Entries) == 0 {
		return nil, false
	}
	return o.Entries[len(o.Entries)-1], true
}

// Registry maps option names to their descriptors, preserving registration
// order. The zero value is ready to use.
type Registry struct {
	options keylist.List[string, *NestedOption]
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Ensure returns the descriptor registered for optionName, creating it when
// missing. Metadata supplied for an existing name is ignored: the first
// registration wins.
func (r *Registry) Ensure(optionName string, defaults map[string]string, templates []TemplateMeta, isCollectionItem bool) *NestedOption {
	if existing, ok := r.options.AtTry(optionName); ok && existing != nil {
		return existing
	}
	option := &NestedOption{
		OptionName:       optionName,
		IsCollectionItem: isCollectionItem,
		Defaults:         defaults,
		Templates:        templates,
	}
	r.options.Set(optionName, option)
	return option
}

// Lookup returns the descriptor registered for optionName.
func (r *Registry) Lookup(optionName string) (*NestedOption, bool) {
	if r == nil {
		return nil, false
	}
	option, ok := r.options.AtTry(optionName)
	if !ok || option == nil {
		return nil, false
	}
	return option, true
}

// Options returns the descriptors in registration order.
func (r *Registry) Options() []*NestedOption {
	if r == nil || r.options.Len() == 0 {
		return nil
	}
	return append([]*NestedOption(nil), r.options.Values...)
}

// Len returns the number of option names registered at this level.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.options.Len()
}

// Reset drops every element entry while keeping descriptors and their
// metadata, so a following registration pass reuses them in place.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	for _, option := range r.options.Values {
		clear(option.Entries)
		option.Entries = option.Entries[:0]
	}
}
