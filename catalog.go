package optsync

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Catalog holds nested option element types keyed by component name.
type Catalog map[string]*NestedOptionType

type catalogFile struct {
	Components map[string]*NestedOptionType `yaml:"components" toml:"components"`
}

// LoadCatalog reads a YAML catalog from r.
func LoadCatalog(r io.Reader) (Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("optsync: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses a YAML catalog of the form
//
//	components:
//	  Column:
//	    optionName: columns
//	    isCollectionItem: true
//	    expectedChildren:
//	      Format: {optionName: format}
//
// optionName defaults to the component name.
func ParseCatalog(data []byte) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("optsync: parse catalog: %w", err)
	}
	return file.catalog()
}

// ParseCatalogTOML parses a catalog with the same layout as ParseCatalog
// written as TOML.
func ParseCatalogTOML(data []byte) (Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("optsync: parse catalog: %w", err)
	}
	return file.catalog()
}

func (f catalogFile) catalog() (Catalog, error) {
	catalog := make(Catalog, len(f.Components))
	for _, name := range sortedKeys(f.Components) {
		entry := f.Components[name]
		if entry == nil {
			entry = &NestedOptionType{}
		}
		if entry.OptionName == "" {
			entry.OptionName = name
		}
		for _, child := range sortedKeys(entry.ExpectedChildren) {
			if entry.ExpectedChildren[child].OptionName == "" {
				return nil, fmt.Errorf("optsync: catalog component %q: expected child %q has no optionName", name, child)
			}
		}
		for i, meta := range entry.TemplateProps {
			if meta.TmplOption == "" {
				return nil, fmt.Errorf("optsync: catalog component %q: template prop %d has no tmplOption", name, i)
			}
		}
		catalog[name] = entry
	}
	return catalog, nil
}

// Type returns the element type registered for a component name.
func (c Catalog) Type(name string) (*NestedOptionType, bool) {
	nodeType, ok := c[name]
	return nodeType, ok && nodeType != nil
}

// Node builds an element of the named component. Unknown names yield an
// opaque element.
func (c Catalog) Node(name string, props map[string]any, children ...Element) *Node {
	nodeType, _ := c.Type(name)
	return NewNode(nodeType, props, children...)
}

// Names lists the catalog's component names in order.
func (c Catalog) Names() []string {
	return sortedKeys(c)
}
