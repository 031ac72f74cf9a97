package compare

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// RootPath addresses a document whose root is a single scalar value.
const RootPath = "$"

// identityFields are tried in order to key list elements by a stable id
// instead of their position.
var identityFields = []string{
	"architecture_id",
	"component_id",
	"service_codename",
	"service_component_codename",
	"attribute_codename",
	"instance_id",
	"id",
	"name",
}

// Leaf is one addressable value of a flattened document.
type Leaf struct {
	Segments []string
	Value    any
}

// Path renders the leaf's canonical path.
func (l Leaf) Path() string {
	return JoinPath(l.Segments)
}

// Flatten walks a decoded document tree and returns every leaf in a stable
// order. Leaves are scalars, lists without nested objects or lists, and empty
// containers.
func Flatten(root any) []Leaf {
	var leaves []Leaf
	walk(nil, root, &leaves)
	return leaves
}

func walk(prefix []string, node any, out *[]Leaf) {
	switch v := node.(type) {
	case map[string]any:
		if len(v) == 0 {
			*out = append(*out, Leaf{Segments: prefix, Value: v})
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(appendSegment(prefix, keySegment(k)), v[k], out)
		}
	case []any:
		if !hasContainer(v) {
			*out = append(*out, Leaf{Segments: prefix, Value: v})
			return
		}
		segments := listSegments(v)
		for i, el := range v {
			walk(appendSegment(prefix, segments[i]), el, out)
		}
	default:
		*out = append(*out, Leaf{Segments: prefix, Value: v})
	}
}

// JoinPath renders path segments: object keys are dot-separated and bracket
// segments attach directly to their parent.
func JoinPath(segments []string) string {
	if len(segments) == 0 {
		return RootPath
	}
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// GroupOf returns the top-level grouping of a path: its first segment plus
// a directly following list selector, e.g. "architectures[architecture_id=a1]".
func GroupOf(segments []string) string {
	if len(segments) == 0 {
		return RootPath
	}
	n := 1
	if len(segments) > 1 && strings.HasPrefix(segments[1], "[") && !strings.HasPrefix(segments[0], "[") {
		n = 2
	}
	return JoinPath(segments[:n])
}

func appendSegment(prefix []string, seg string) []string {
	out := make([]string, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = seg
	return out
}

// keySegment renders an object key, quoting keys that would otherwise be
// ambiguous in a dotted path.
func keySegment(key string) string {
	if isPlain(key) {
		return key
	}
	return "[" + strconv.Quote(key) + "]"
}

func isPlain(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, ".[]\"=$ \t\r\n")
}

func hasContainer(list []any) bool {
	for _, el := range list {
		switch el.(type) {
		case map[string]any, []any:
			return true
		}
	}
	return false
}

// listSegments keys list elements by the first identity field that every
// element carries with a unique scalar value, falling back to indexes.
func listSegments(list []any) []string {
	for _, field := range identityFields {
		if segs, ok := identitySegments(list, field); ok {
			return segs
		}
	}
	segs := make([]string, len(list))
	for i := range list {
		segs[i] = "[" + strconv.Itoa(i) + "]"
	}
	return segs
}

func identitySegments(list []any, field string) ([]string, bool) {
	segs := make([]string, len(list))
	seen := make(map[string]struct{}, len(list))
	for i, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, false
		}
		id, ok := scalarString(obj[field])
		if !ok {
			return nil, false
		}
		if _, dup := seen[id]; dup {
			return nil, false
		}
		seen[id] = struct{}{}
		if !isPlain(id) {
			id = strconv.Quote(id)
		}
		segs[i] = "[" + field + "=" + id + "]"
	}
	return segs, true
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

// formatValue renders a leaf value for difference descriptions.
func formatValue(v any) string {
	switch s := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return jsonString(v)
}
