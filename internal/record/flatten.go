package record

import "strconv"

// Separator joins a parent path and a mapping key.
const Separator = ": "

// Pair is one flattened leaf.
type Pair struct {
	Key   string
	Value any
}

// Flatten walks v depth-first and returns its leaves in insertion order.
// Mapping keys extend the path as "<parent>: <key>", sequence items as
// "<parent> [<index>]".
func Flatten(v Value) []Pair {
	return walk(nil, "", v)
}

func walk(out []Pair, path string, v Value) []Pair {
	switch v.kind {
	case KindMapping:
		for _, f := range v.fields {
			out = walk(out, join(path, f.Key), f.Value)
		}
	case KindSequence:
		for i, item := range v.items {
			out = walk(out, index(path, i), item)
		}
	default:
		out = append(out, Pair{Key: path, Value: v.scalar})
	}
	return out
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + Separator + key
}

func index(parent string, i int) string {
	if parent == "" {
		return "[" + strconv.Itoa(i) + "]"
	}
	return parent + " [" + strconv.Itoa(i) + "]"
}
