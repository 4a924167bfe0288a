package optsync

// Binding is handed to a registered element so its descendants can register
// under it and so it can push its own prop updates to the widget.
type Binding struct {
	OptionName string
	FullPath   string

	manager  *Manager
	meta     *NestedOptionType
	children *Registry
}

// RegisterNestedOption registers child under this element, using the
// element type's expected children.
func (b *Binding) RegisterNestedOption(child Element) *BoundElement {
	return b.manager.register(child, b.meta.ExpectedChildren, b.children, b.FullPath)
}

// Update forwards this element's changed props to the widget, addressed
// below the element's full path.
func (b *Binding) Update(newProps, prevProps map[string]any) {
	options := b.manager.cfg.separator.SeparateProps(newProps, b.meta.DefaultsProps, b.meta.TemplateProps).Options
	prefix := b.FullPath + "."
	b.manager.ProcessChangedValues(prefixKeys(options, prefix), prefixKeys(prevProps, prefix))
}

// RegisterNestedOption registers a direct child of the widget component.
// Elements that are not nested option elements are ignored and nil is
// returned.
func (m *Manager) RegisterNestedOption(element Element, expected map[string]ExpectedChild) *BoundElement {
	return m.register(element, expected, m.nested, "")
}

// RegisterTree registers children and, recursively, every descendant of each
// recognized element. It returns the bound top-level elements. Descendants of
// unrecognized elements are not visited.
func (m *Manager) RegisterTree(expected map[string]ExpectedChild, children ...Element) []*BoundElement {
	return registerTree(children, func(child Element) *BoundElement {
		return m.RegisterNestedOption(child, expected)
	})
}

func registerTree(children []Element, register func(Element) *BoundElement) []*BoundElement {
	var bound []*BoundElement
	for _, child := range children {
		element := register(child)
		if element == nil {
			continue
		}
		bound = append(bound, element)
		registerTree(element.Children(), element.Binding.RegisterNestedOption)
	}
	return bound
}

func (m *Manager) register(element Element, expected map[string]ExpectedChild, owner *Registry, ownerPath string) *BoundElement {
	if element == nil {
		return nil
	}
	meta, ok := asNestedOption(element)
	if !ok {
		return nil
	}
	if bound, ok := element.(*BoundElement); ok {
		element = bound.Element
	}

	resolved := ResolveNestedOption(meta.OptionName, meta.IsCollectionItem, expected)
	descriptor := owner.Ensure(resolved.OptionName, meta.DefaultsProps, meta.TemplateProps, resolved.IsCollectionItem)
	fullPath := composePath(ownerPath, resolved.OptionName, resolved.IsCollectionItem, len(descriptor.Entries))

	children := NewRegistry()
	binding := &Binding{
		OptionName: resolved.OptionName,
		FullPath:   fullPath,
		manager:    m,
		meta:       meta,
		children:   children,
	}
	descriptor.Entries = append(descriptor.Entries, &ElementEntry{
		Element:         element,
		Children:        children,
		PredefinedProps: meta.PredefinedProps,
	})
	return &BoundElement{Element: element, Binding: binding}
}
