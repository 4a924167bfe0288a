package optsync

// ExpectedChild describes how a parent exposes a child component in its option
// tree. A parent declares one per child component name it knows about.
type ExpectedChild struct {
	OptionName       string `yaml:"optionName" toml:"optionName" json:"optionName"`
	IsCollectionItem bool   `yaml:"isCollectionItem" toml:"isCollectionItem" json:"isCollectionItem"`
}

// TemplateMeta names the props that carry a renderable template for a single
// template option.
type TemplateMeta struct {
	TmplOption string `yaml:"tmplOption" toml:"tmplOption" json:"tmplOption"`
	Render     string `yaml:"render" toml:"render" json:"render"`
	Component  string `yaml:"component" toml:"component" json:"component"`
	KeyFn      string `yaml:"keyFn" toml:"keyFn" json:"keyFn,omitempty"`
}

// NestedOptionType is the metadata an element type exposes when it authors a
// nested option instead of a flat prop.
type NestedOptionType struct {
	OptionName       string `yaml:"optionName" toml:"optionName"`
	IsCollectionItem bool   `yaml:"isCollectionItem" toml:"isCollectionItem"`
	// DefaultsProps maps an author prop (e.g. "defaultValue") to the option it
	// seeds (e.g. "value").
	DefaultsProps    map[string]string        `yaml:"defaultsProps" toml:"defaultsProps"`
	TemplateProps    []TemplateMeta           `yaml:"templateProps" toml:"templateProps"`
	PredefinedProps  map[string]any           `yaml:"predefinedProps" toml:"predefinedProps"`
	ExpectedChildren map[string]ExpectedChild `yaml:"expectedChildren" toml:"expectedChildren"`
}

// Element is a rendered node. The manager only ever reads its props.
type Element interface {
	Props() map[string]any
}

// NestedOptionElement is an Element whose type declares nested option
// metadata. Elements that do not implement it, or report an empty option name,
// are treated as opaque.
type NestedOptionElement interface {
	Element
	NestedOptionType() *NestedOptionType
}

// Parent is implemented by elements that carry child elements.
type Parent interface {
	Children() []Element
}

// asNestedOption reports whether element is a recognized nested option
// element and returns its type metadata.
func asNestedOption(element Element) (*NestedOptionType, bool) {
	if bound, ok := element.(*BoundElement); ok && bound != nil {
		element = bound.Element
	}
	nested, ok := element.(NestedOptionElement)
	if !ok || nested == nil {
		return nil, false
	}
	meta := nested.NestedOptionType()
	if meta == nil || meta.OptionName == "" {
		return nil, false
	}
	return meta, true
}

// Node is a minimal element implementation: a type, its props and children.
// A Node without a Type is an opaque element.
type Node struct {
	Type  *NestedOptionType
	Attrs map[string]any
	Nodes []Element
}

// NewNode builds a Node for the given type.
func NewNode(nodeType *NestedOptionType, props map[string]any, children ...Element) *Node {
	return &Node{
		Type:  nodeType,
		Attrs: props,
		Nodes: children,
	}
}

// Props implements Element.
func (n *Node) Props() map[string]any {
	if n == nil {
		return nil
	}
	return n.Attrs
}

// NestedOptionType implements NestedOptionElement.
func (n *Node) NestedOptionType() *NestedOptionType {
	if n == nil {
		return nil
	}
	return n.Type
}

// Children implements Parent.
func (n *Node) Children() []Element {
	if n == nil {
		return nil
	}
	return n.Nodes
}

// BoundElement wraps a registered element together with the binding its
// descendants use to register themselves and to push prop updates.
type BoundElement struct {
	Element
	Binding *Binding
}

// Children forwards to the wrapped element when it is a Parent.
func (b *BoundElement) Children() []Element {
	if b == nil {
		return nil
	}
	if parent, ok := b.Element.(Parent); ok {
		return parent.Children()
	}
	return nil
}
