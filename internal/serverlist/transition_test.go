package serverlist

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// deepCopy snapshots a document through a JSON round trip so mutations can be
// compared against the original.
func deepCopy(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return out
}

// resolveItem enumerates the document and resolves identifier to a single item.
func resolveItem(t *testing.T, doc map[string]any, identifier string) (Item, Shape) {
	t.Helper()
	shape := mustShape(t, doc)
	res := Resolve(Enumerate(doc, shape), identifier)
	if !res.Resolved() {
		t.Fatalf("failed to resolve %q: %+v", identifier, res)
	}
	return *res.Item, shape
}

func TestDisableWithMarkerDoesNotRelocate(t *testing.T) {
	doc := map[string]any{
		ActiveField: map[string]any{
			"x": map[string]any{"enabled": true},
		},
	}
	item, shape := resolveItem(t, doc, "x")

	changes, err := Disable(doc, item, shape)
	if err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if len(changes) != 1 || !strings.HasPrefix(changes[0], "set enabled=false") {
		t.Errorf("changes = %v", changes)
	}

	active := doc[ActiveField].(map[string]any)
	entry, ok := active["x"].(map[string]any)
	if !ok {
		t.Fatal("x was relocated out of the active container")
	}
	if entry["enabled"] != false {
		t.Errorf("enabled = %v, want false", entry["enabled"])
	}
	if _, ok := doc[DisabledField]; ok {
		t.Errorf("disabled container should not have been created")
	}
}

func TestDisableWithoutMarkerRelocates(t *testing.T) {
	doc := map[string]any{
		ActiveField:   map[string]any{"x": map[string]any{"command": "x-mcp"}},
		DisabledField: map[string]any{},
	}
	item, shape := resolveItem(t, doc, "x")

	changes, err := Disable(doc, item, shape)
	if err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if len(changes) != 1 || !strings.HasPrefix(changes[0], "moved") {
		t.Errorf("changes = %v", changes)
	}

	active := doc[ActiveField].(map[string]any)
	if _, ok := active["x"]; ok {
		t.Error("x still present under the active container")
	}
	disabled := doc[DisabledField].(map[string]any)
	entry, ok := disabled["x"].(map[string]any)
	if !ok {
		t.Fatal("x missing from the disabled container")
	}
	if entry["command"] != "x-mcp" {
		t.Errorf("entry payload lost in relocation: %v", entry)
	}
}

func TestDisableIndexedWithoutMarkerFails(t *testing.T) {
	doc := map[string]any{
		ActiveField: []any{map[string]any{"id": "x"}},
		"theme":     "dark",
	}
	before := deepCopy(t, doc)
	item, shape := resolveItem(t, doc, "x")

	_, err := Disable(doc, item, shape)
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if transitionErr.Label != "x" {
		t.Errorf("Label = %q, want x", transitionErr.Label)
	}
	if !reflect.DeepEqual(deepCopy(t, doc), before) {
		t.Errorf("document mutated on failed transition:\nbefore %v\nafter  %v", before, doc)
	}
}

func TestEnableFromDisabledContainer(t *testing.T) {
	doc := map[string]any{
		ActiveField:   map[string]any{},
		DisabledField: map[string]any{"x": map[string]any{"command": "x-mcp"}},
	}
	item, shape := resolveItem(t, doc, "x")

	changes, err := Enable(doc, item, shape)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if len(changes) != 1 || !strings.HasPrefix(changes[0], "moved") {
		t.Errorf("changes = %v", changes)
	}
	if _, ok := doc[ActiveField].(map[string]any)["x"]; !ok {
		t.Error("x missing from the active container")
	}
	if _, ok := doc[DisabledField].(map[string]any)["x"]; ok {
		t.Error("x still present under the disabled container")
	}
}

func TestEnableDisableRoundTrip(t *testing.T) {
	doc := map[string]any{
		ActiveField: map[string]any{
			"x": map[string]any{"command": "x-mcp", "args": []any{"--port", "8080"}},
			"y": map[string]any{"command": "y-mcp"},
		},
		"unrelated": map[string]any{"keep": true},
	}
	before := deepCopy(t, doc)

	item, shape := resolveItem(t, doc, "x")
	if _, err := Disable(doc, item, shape); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	// Items are ephemeral; re-enumerate after the mutation.
	item, shape = resolveItem(t, doc, "x")
	if _, err := Enable(doc, item, shape); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}

	// The relocation pair leaves an empty disabled container behind, which
	// is equivalent membership; ignore it for the comparison.
	after := deepCopy(t, doc)
	if disabled, ok := after[DisabledField].(map[string]any); ok && len(disabled) == 0 {
		delete(after, DisabledField)
	}
	if !reflect.DeepEqual(after, before) {
		t.Errorf("round trip diverged:\nbefore %v\nafter  %v", before, after)
	}
}

func TestEnableIdempotentWithMarker(t *testing.T) {
	doc := map[string]any{
		ActiveField: map[string]any{"x": map[string]any{"enabled": true}},
	}
	item, shape := resolveItem(t, doc, "x")

	changes, err := Enable(doc, item, shape)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if len(changes) != 1 || !strings.HasPrefix(changes[0], "already enabled=true") {
		t.Errorf("changes = %v", changes)
	}
}

func TestEnableKeepsActiveEntryWithoutMarker(t *testing.T) {
	doc := map[string]any{
		ActiveField: map[string]any{"x": map[string]any{}},
	}
	item, shape := resolveItem(t, doc, "x")

	changes, err := Enable(doc, item, shape)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if len(changes) != 1 || !strings.HasPrefix(changes[0], "kept") {
		t.Errorf("changes = %v", changes)
	}
}

func TestDisableAlreadyDisabledContainer(t *testing.T) {
	doc := map[string]any{
		ActiveField:   map[string]any{},
		DisabledField: map[string]any{"x": map[string]any{}},
	}
	item, shape := resolveItem(t, doc, "x")

	changes, err := Disable(doc, item, shape)
	if err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if len(changes) != 1 || !strings.HasPrefix(changes[0], "kept") {
		t.Errorf("changes = %v", changes)
	}
}

func TestMarkerWinsEvenInDisabledContainer(t *testing.T) {
	// An entry with its own "enabled" field toggles in place wherever it
	// lives; the container is never touched.
	doc := map[string]any{
		ActiveField:   map[string]any{"other": map[string]any{"enabled": true}},
		DisabledField: map[string]any{"x": map[string]any{"enabled": true}},
	}
	item, shape := resolveItem(t, doc, "x")

	if _, err := Disable(doc, item, shape); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	entry := doc[DisabledField].(map[string]any)["x"].(map[string]any)
	if entry["enabled"] != false {
		t.Errorf("enabled = %v, want false", entry["enabled"])
	}

	item, shape = resolveItem(t, doc, "x")
	if _, err := Enable(doc, item, shape); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if _, ok := doc[DisabledField].(map[string]any)["x"]; !ok {
		t.Error("marker toggle must not relocate the entry")
	}
}

func TestRelocateCreatesMissingContainer(t *testing.T) {
	doc := map[string]any{
		ActiveField: map[string]any{"x": map[string]any{}},
	}
	item, shape := resolveItem(t, doc, "x")

	if _, err := Disable(doc, item, shape); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	disabled, ok := doc[DisabledField].(map[string]any)
	if !ok {
		t.Fatalf("disabled container not created: %T", doc[DisabledField])
	}
	if _, ok := disabled["x"]; !ok {
		t.Error("x missing from the created container")
	}
}

func TestRelocateReplacesWrongTypeContainer(t *testing.T) {
	doc := map[string]any{
		ActiveField:   map[string]any{"x": map[string]any{}},
		DisabledField: "corrupt",
	}
	item, shape := resolveItem(t, doc, "x")

	if _, err := Disable(doc, item, shape); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	disabled, ok := doc[DisabledField].(map[string]any)
	if !ok {
		t.Fatalf("wrong-type container not replaced: %T", doc[DisabledField])
	}
	if _, ok := disabled["x"]; !ok {
		t.Error("x missing after container replacement")
	}
}

func TestIndexedRelocationMovesByPosition(t *testing.T) {
	doc := map[string]any{
		ActiveField: []any{
			map[string]any{"id": "a"},
			map[string]any{"id": "b", "enabled": true},
		},
		DisabledField: []any{
			map[string]any{"id": "c"},
		},
	}
	item, shape := resolveItem(t, doc, "c")

	changes, err := Enable(doc, item, shape)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if len(changes) != 1 || !strings.HasPrefix(changes[0], "moved") {
		t.Errorf("changes = %v", changes)
	}

	active := doc[ActiveField].([]any)
	if len(active) != 3 {
		t.Fatalf("active length = %d, want 3", len(active))
	}
	if active[2].(map[string]any)["id"] != "c" {
		t.Errorf("relocated entry should be appended, got %v", active)
	}
	if disabled := doc[DisabledField].([]any); len(disabled) != 0 {
		t.Errorf("disabled still holds %v", disabled)
	}
}
