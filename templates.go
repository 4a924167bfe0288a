package optsync

// Template is a renderable template definition handed to the widget through
// integrationOptions.templates.
type Template struct {
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Render    any    `json:"-"`
	Component any    `json:"-"`
	KeyFn     any    `json:"-"`
	// StateUpdater is the opaque handle the host passed to
	// GetNestedOptionsObjects.
	StateUpdater any `json:"-"`
}

// TemplateRequest carries what a TemplateExtractor needs for one element.
type TemplateRequest struct {
	Options       map[string]any
	NestedOptions map[string]any
	TemplateProps []TemplateMeta
	OwnerName     string
	StateUpdater  any
	PropsGetter   func(prop string) any
}

// TemplateOptions is the extraction result: template definitions keyed by
// full template name, plus stubs placed in the owner's options.
type TemplateOptions struct {
	Templates     map[string]any
	TemplateStubs map[string]any
}

// TemplateExtractor extracts renderable template slots from an element's
// template props.
type TemplateExtractor interface {
	ExtractTemplates(req TemplateRequest) TemplateOptions
}

// TemplateExtractorFunc adapts a function to TemplateExtractor.
type TemplateExtractorFunc func(req TemplateRequest) TemplateOptions

// ExtractTemplates implements TemplateExtractor.
func (f TemplateExtractorFunc) ExtractTemplates(req TemplateRequest) TemplateOptions {
	return f(req)
}

// DefaultTemplateExtractor returns the built-in extractor. Every template
// meta whose render or component prop is set yields a Template named
// "owner.tmplOption" and a stub tmplOption -> name in the owner's options.
func DefaultTemplateExtractor() TemplateExtractor {
	return TemplateExtractorFunc(extractTemplates)
}

func extractTemplates(req TemplateRequest) TemplateOptions {
	out := TemplateOptions{
		Templates:     map[string]any{},
		TemplateStubs: map[string]any{},
	}
	for _, meta := range req.TemplateProps {
		render := req.Options[meta.Render]
		component := req.Options[meta.Component]
		if render == nil && component == nil {
			continue
		}
		name := meta.TmplOption
		if req.OwnerName != "" {
			name = req.OwnerName + "." + meta.TmplOption
		}
		var keyFn any
		if meta.KeyFn != "" && req.PropsGetter != nil {
			keyFn = req.PropsGetter(meta.KeyFn)
		}
		out.Templates[name] = Template{
			Name:         name,
			Owner:        req.OwnerName,
			Render:       render,
			Component:    component,
			KeyFn:        keyFn,
			StateUpdater: req.StateUpdater,
		}
		out.TemplateStubs[meta.TmplOption] = name
	}
	return out
}
