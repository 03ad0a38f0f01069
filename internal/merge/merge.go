// Package merge deep-merges loaded settings trees with first-writer-wins semantics.
package merge

import "github.com/Azhovan/cascade/internal/normalize"

// Layer is one loaded settings tree and the name it is reported under (usually a file path).
type Layer struct {
	Name string
	Data map[string]any
}

// Merge combines layers in order. Earlier layers take precedence:
//   - a key missing from the accumulator is copied in
//   - a key present in both, where both values are mappings, is merged recursively
//   - otherwise the earlier value is kept
//
// Inputs are never mutated. The returned origins map records, for every leaf
// path in the result, the name of the layer that supplied it.
func Merge(layers ...Layer) (map[string]any, map[string]string) {
	result := make(map[string]any)
	origins := make(map[string]string)

	for _, layer := range layers {
		into(result, layer.Data, "", layer.Name, origins)
	}

	return result, origins
}

// Trees merges bare trees without tracking origins.
func Trees(trees ...map[string]any) map[string]any {
	layers := make([]Layer, len(trees))
	for i, tree := range trees {
		layers[i] = Layer{Data: tree}
	}
	result, _ := Merge(layers...)
	return result
}

func into(base, next map[string]any, prefix, name string, origins map[string]string) {
	for key, value := range next {
		path := normalize.JoinKey(prefix, key)

		existing, ok := base[key]
		if !ok {
			base[key] = Copy(value)
			record(origins, path, value, name)
			continue
		}

		existingMap, baseIsMap := existing.(map[string]any)
		nextMap, nextIsMap := value.(map[string]any)
		if baseIsMap && nextIsMap {
			into(existingMap, nextMap, path, name, origins)
		}
	}
}

// record marks every leaf under path as coming from name.
func record(origins map[string]string, path string, value any, name string) {
	m, ok := value.(map[string]any)
	if !ok || len(m) == 0 {
		origins[path] = name
		return
	}
	for key, child := range m {
		record(origins, normalize.JoinKey(path, key), child, name)
	}
}

// Copy returns a deep copy of mappings and sequences; scalars are returned as-is.
func Copy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[key] = Copy(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = Copy(child)
		}
		return out
	default:
		return value
	}
}
