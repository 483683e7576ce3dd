package serverlist

import (
	"errors"
	"testing"
)

func TestDetectShape(t *testing.T) {
	testCases := []struct {
		name       string
		doc        map[string]any
		wantKind   ShapeKind
		wantMarker bool
		wantErr    bool
	}{
		{
			name:     "Missing active field defaults to keyed",
			doc:      map[string]any{},
			wantKind: Keyed,
		},
		{
			name:     "Null active field defaults to keyed",
			doc:      map[string]any{ActiveField: nil},
			wantKind: Keyed,
		},
		{
			name: "Object collection without marker",
			doc: map[string]any{
				ActiveField: map[string]any{
					"github": map[string]any{"command": "gh-mcp"},
				},
			},
			wantKind: Keyed,
		},
		{
			name: "Object collection with marker on one entry",
			doc: map[string]any{
				ActiveField: map[string]any{
					"github": map[string]any{"command": "gh-mcp"},
					"slack":  map[string]any{"enabled": false},
				},
			},
			wantKind:   Keyed,
			wantMarker: true,
		},
		{
			name: "Marker detection is presence, not truthiness",
			doc: map[string]any{
				ActiveField: map[string]any{
					"github": map[string]any{"enabled": nil},
				},
			},
			wantKind:   Keyed,
			wantMarker: true,
		},
		{
			name: "Array collection without marker",
			doc: map[string]any{
				ActiveField: []any{
					map[string]any{"id": "github"},
				},
			},
			wantKind: Indexed,
		},
		{
			name: "Array collection with marker",
			doc: map[string]any{
				ActiveField: []any{
					map[string]any{"id": "github", "enabled": true},
				},
			},
			wantKind:   Indexed,
			wantMarker: true,
		},
		{
			name:    "String collection is unsupported",
			doc:     map[string]any{ActiveField: "oops"},
			wantErr: true,
		},
		{
			name:    "Number collection is unsupported",
			doc:     map[string]any{ActiveField: float64(3)},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shape, err := DetectShape(tc.doc)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got shape %+v", shape)
				}
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("expected *SchemaError, got %T: %v", err, err)
				}
				if schemaErr.Field != ActiveField {
					t.Errorf("SchemaError.Field = %q, want %q", schemaErr.Field, ActiveField)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectShape failed: %v", err)
			}
			if shape.Kind != tc.wantKind {
				t.Errorf("Kind = %v, want %v", shape.Kind, tc.wantKind)
			}
			if shape.HasEnabledMarker != tc.wantMarker {
				t.Errorf("HasEnabledMarker = %v, want %v", shape.HasEnabledMarker, tc.wantMarker)
			}
		})
	}
}

func TestDetectShapeIsReadOnly(t *testing.T) {
	doc := map[string]any{
		ActiveField: map[string]any{"x": map[string]any{}},
		"theme":     "dark",
	}
	if _, err := DetectShape(doc); err != nil {
		t.Fatalf("DetectShape failed: %v", err)
	}
	if len(doc) != 2 {
		t.Errorf("document gained or lost fields: %v", doc)
	}
	if _, ok := doc[DisabledField]; ok {
		t.Errorf("detection created the disabled container")
	}
}
