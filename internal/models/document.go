package models

// Document is a decoded architecture description or reasoning document.
// Root holds the generic JSON tree: objects are map[string]any, lists are
// []any and scalars are string, json.Number, float64, bool or nil.
type Document struct {
	Path string
	Root any
}

// NewDocument wraps an already decoded tree.
func NewDocument(path string, root any) *Document {
	return &Document{Path: path, Root: root}
}

// IsEmpty reports whether the document carries no data at all.
func (d *Document) IsEmpty() bool {
	if d == nil || d.Root == nil {
		return true
	}
	switch v := d.Root.(type) {
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}
