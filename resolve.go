package optsync

// ResolveNestedOption computes the canonical option name and collection flag
// for a child component. An expectation registered by the parent for
// componentName always decides the collection flag, and replaces the option
// name when it declares one.
func ResolveNestedOption(componentName string, canBeCollectionItem bool, expectations map[string]ExpectedChild) ExpectedChild {
	resolved := ExpectedChild{
		OptionName:       componentName,
		IsCollectionItem: canBeCollectionItem,
	}
	expectation, ok := expectations[componentName]
	if !ok {
		return resolved
	}
	resolved.IsCollectionItem = expectation.IsCollectionItem
	if expectation.OptionName != "" {
		resolved.OptionName = expectation.OptionName
	}
	return resolved
}
