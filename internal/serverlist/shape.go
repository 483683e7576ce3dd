package serverlist

import "fmt"

// Top-level document fields. ActiveField is owned by the client application;
// DisabledField is created and managed by this tool to park servers that have
// no per-entry enable marker.
const (
	ActiveField   = "mcpServers"
	DisabledField = "mcpServersDisabled"
)

// ShapeKind says how the document stores its server entries.
type ShapeKind int

const (
	// Keyed collections map a server name to its entry (the Claude Desktop
	// and Cursor layout).
	Keyed ShapeKind = iota
	// Indexed collections are arrays of entries; position is the only
	// locator.
	Indexed
)

func (k ShapeKind) String() string {
	if k == Indexed {
		return "indexed"
	}
	return "keyed"
}

// Shape is the detected schema of one document. It is computed once from the
// active collection; the disabled collection, if present, is assumed to
// mirror it.
type Shape struct {
	Kind ShapeKind

	// HasEnabledMarker is true when at least one entry in the active
	// collection declares an "enabled" field. It is a document-wide flag
	// that selects the transition strategy.
	HasEnabledMarker bool
}

// SchemaError reports an active-entry field that is neither an object nor an
// array.
type SchemaError struct {
	Field string
	Value any
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unsupported schema: field %q is %T, want object or array", e.Field, e.Value)
}

// DetectShape classifies the document's entry collection. A document without
// the active field (or with it set to null) defaults to a keyed shape with no
// marker, so empty documents still enumerate and list cleanly.
func DetectShape(doc map[string]any) (Shape, error) {
	raw, ok := doc[ActiveField]
	if !ok || raw == nil {
		return Shape{Kind: Keyed}, nil
	}
	switch v := raw.(type) {
	case map[string]any:
		shape := Shape{Kind: Keyed}
		for _, entry := range v {
			if declaresEnabled(entry) {
				shape.HasEnabledMarker = true
				break
			}
		}
		return shape, nil
	case []any:
		shape := Shape{Kind: Indexed}
		for _, entry := range v {
			if declaresEnabled(entry) {
				shape.HasEnabledMarker = true
				break
			}
		}
		return shape, nil
	default:
		return Shape{}, &SchemaError{Field: ActiveField, Value: raw}
	}
}

// declaresEnabled reports whether the entry is an object carrying an
// "enabled" field, regardless of the field's value.
func declaresEnabled(entry any) bool {
	fields, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	_, ok = fields["enabled"]
	return ok
}
