package optsync

// SeparatedProps is an element's props partitioned by role.
type SeparatedProps struct {
	// Defaults holds values of default-seeding props keyed by the option
	// they seed.
	Defaults  map[string]any
	Options   map[string]any
	Templates map[string]any
}

// PropSeparator partitions raw element props into defaults, options and
// template props.
type PropSeparator interface {
	SeparateProps(props map[string]any, defaults map[string]string, templates []TemplateMeta) SeparatedProps
}

// PropSeparatorFunc adapts a function to PropSeparator.
type PropSeparatorFunc func(props map[string]any, defaults map[string]string, templates []TemplateMeta) SeparatedProps

// SeparateProps implements PropSeparator.
func (f PropSeparatorFunc) SeparateProps(props map[string]any, defaults map[string]string, templates []TemplateMeta) SeparatedProps {
	return f(props, defaults, templates)
}

// DefaultPropSeparator returns the built-in partitioning: element plumbing
// props are dropped, default-seeding props are renamed to their option, and
// template render/component props are set aside.
func DefaultPropSeparator() PropSeparator {
	return PropSeparatorFunc(separateProps)
}

var elementPropNames = map[string]struct{}{
	"children": {},
	"key":      {},
}

func separateProps(props map[string]any, defaults map[string]string, templates []TemplateMeta) SeparatedProps {
	out := SeparatedProps{
		Defaults:  map[string]any{},
		Options:   map[string]any{},
		Templates: map[string]any{},
	}
	known := make(map[string]struct{}, len(templates)*2)
	for _, meta := range templates {
		if meta.Render != "" {
			known[meta.Render] = struct{}{}
		}
		if meta.Component != "" {
			known[meta.Component] = struct{}{}
		}
	}
	for key, value := range props {
		if _, skip := elementPropNames[key]; skip {
			continue
		}
		if optionName := defaults[key]; optionName != "" {
			out.Defaults[optionName] = value
			continue
		}
		if _, ok := known[key]; ok {
			out.Templates[key] = value
			continue
		}
		out.Options[key] = value
	}
	return out
}
