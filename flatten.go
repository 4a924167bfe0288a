package optsync

import (
	"fmt"

	"github.com/goliatone/go-optsync/layering"
)

const integrationOptionsKey = "integrationOptions"

// GetNestedOptionsObjects rebuilds the nested options object for widget
// construction from everything registered so far. Collection options become
// slices in registration order; other options take their most recent entry.
// Template definitions gathered along the way are exposed under
// integrationOptions.templates.
func (m *Manager) GetNestedOptionsObjects(stateUpdater any) map[string]any {
	return m.flatten(m.nested, "", stateUpdater)
}

func (m *Manager) flatten(registry *Registry, ownerPath string, stateUpdater any) map[string]any {
	result := map[string]any{}
	templates := map[string]any{}

	for _, descriptor := range registry.Options() {
		values := make([]any, 0, len(descriptor.Entries))
		for index, entry := range descriptor.Entries {
			props := entry.Element.Props()
			separated := m.cfg.separator.SeparateProps(props, descriptor.Defaults, descriptor.Templates)

			ownerName := descriptor.OptionName
			if descriptor.IsCollectionItem {
				ownerName = fmt.Sprintf("%s[%d]", descriptor.OptionName, index)
			}
			extracted := m.cfg.templates.ExtractTemplates(TemplateRequest{
				Options:       separated.Templates,
				NestedOptions: map[string]any{},
				TemplateProps: descriptor.Templates,
				OwnerName:     ownerName,
				StateUpdater:  stateUpdater,
				PropsGetter: func(prop string) any {
					return props[prop]
				},
			})
			for name, template := range extracted.Templates {
				templates[name] = template
			}

			fullPath := composePath(ownerPath, descriptor.OptionName, descriptor.IsCollectionItem, index)
			values = append(values, layering.Spread(
				entry.PredefinedProps,
				separated.Defaults,
				m.resolveExpressions(fullPath, separated.Options),
				extracted.TemplateStubs,
				m.flatten(entry.Children, fullPath, stateUpdater),
			))
		}

		switch {
		case descriptor.IsCollectionItem:
			result[descriptor.OptionName] = layering.Clone(values)
		case len(values) > 0:
			result[descriptor.OptionName] = layering.Clone(values[len(values)-1])
		}
	}

	if len(templates) > 0 {
		result[integrationOptionsKey] = map[string]any{
			"templates": templates,
		}
	}
	return result
}
