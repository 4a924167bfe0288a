package optsync

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// composePath builds the full path of an option registered under owner.
func composePath(owner, optionName string, isCollectionItem bool, index int) string {
	path := optionName
	if isCollectionItem {
		path = fmt.Sprintf("%s[%d]", optionName, index)
	}
	if owner == "" {
		return path
	}
	return owner + "." + path
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// lookupPath walks value down segments. Segments may carry bracketed
// indexes ("items[1]").
func lookupPath(value any, segments []string) (any, bool) {
	current := value
	for _, segment := range segments {
		name, indexes := parseSegment(segment)
		if name != "" {
			fields, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			current, ok = fields[name]
			if !ok {
				return nil, false
			}
		}
		for _, index := range indexes {
			items, ok := current.([]any)
			if !ok || index < 0 || index >= len(items) {
				return nil, false
			}
			current = items[index]
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []int) {
	open := strings.IndexByte(segment, '[')
	if open < 0 {
		return segment, nil
	}
	name := segment[:open]
	var indexes []int
	rest := segment[open:]
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		index, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return segment, nil
		}
		indexes = append(indexes, index)
		rest = rest[end+1:]
	}
	return name, indexes
}

// prefixKeys returns a copy of props with every key prefixed.
func prefixKeys(props map[string]any, prefix string) map[string]any {
	out := make(map[string]any, len(props))
	for key, value := range props {
		out[prefix+key] = value
	}
	return out
}

// scopedSnapshot returns the props that share name's owner prefix, with the
// prefix stripped, so a nested expression sees its siblings by bare name.
func scopedSnapshot(name string, props map[string]any) map[string]any {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return props
	}
	prefix := name[:dot+1]
	out := map[string]any{}
	for key, value := range props {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			out[rest] = value
		}
	}
	return out
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
