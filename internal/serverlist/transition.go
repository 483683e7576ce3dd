package serverlist

import "fmt"

// TransitionError reports a disable request the document's schema cannot
// express: an array entry without its own "enabled" field has no stable
// identity to relocate under.
type TransitionError struct {
	Label string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot disable %q: array-shaped server lists need a per-entry \"enabled\" field", e.Label)
}

// Enable makes the item active and returns the changes applied, in order.
// An entry that declares its own "enabled" field is toggled in place; an
// entry without one is moved back into the active container when needed.
func Enable(doc map[string]any, item Item, shape Shape) ([]string, error) {
	if fields := item.fields(); fields != nil {
		if v, ok := fields["enabled"]; ok {
			if b, ok := v.(bool); ok && b {
				return []string{fmt.Sprintf("already enabled=true for %q", item.Label())}, nil
			}
			fields["enabled"] = true
			return []string{fmt.Sprintf("set enabled=true on %q", item.Label())}, nil
		}
	}
	if item.Container == ContainerActive {
		return []string{fmt.Sprintf("kept %q in active", item.Label())}, nil
	}
	return []string{relocate(doc, item, shape, ContainerDisabled, ContainerActive)}, nil
}

// Disable makes the item inactive. The per-entry "enabled" field wins over
// container relocation: when the entry declares it, the field is set false
// and the entry stays where it is, even under the disabled container.
// Indexed entries without the field cannot be disabled; the document is left
// untouched and a TransitionError is returned.
func Disable(doc map[string]any, item Item, shape Shape) ([]string, error) {
	if fields := item.fields(); fields != nil {
		if v, ok := fields["enabled"]; ok {
			if b, ok := v.(bool); ok && !b {
				return []string{fmt.Sprintf("already enabled=false for %q", item.Label())}, nil
			}
			fields["enabled"] = false
			return []string{fmt.Sprintf("set enabled=false on %q", item.Label())}, nil
		}
	}
	if item.Container == ContainerDisabled {
		return []string{fmt.Sprintf("kept %q in disabled", item.Label())}, nil
	}
	if shape.Kind == Indexed {
		return nil, &TransitionError{Label: item.Label()}
	}
	return []string{relocate(doc, item, shape, ContainerActive, ContainerDisabled)}, nil
}

// relocate moves the item's entry between the two containers, creating the
// destination lazily in the document's shape. Keyed entries keep their key;
// indexed entries are appended to the destination array.
func relocate(doc map[string]any, item Item, shape Shape, from, to Container) string {
	switch shape.Kind {
	case Keyed:
		src := ensureMap(doc, from.Field())
		dst := ensureMap(doc, to.Field())
		dst[item.Key] = item.value
		delete(src, item.Key)
	case Indexed:
		src := ensureSlice(doc, from.Field())
		if item.Index >= 0 && item.Index < len(src) {
			doc[from.Field()] = append(src[:item.Index:item.Index], src[item.Index+1:]...)
		}
		doc[to.Field()] = append(ensureSlice(doc, to.Field()), item.value)
	}
	return fmt.Sprintf("moved %q from %s to %s", item.Label(), from, to)
}

// ensureMap returns doc[field] as an object, creating it when missing and
// replacing it when present with the wrong type.
func ensureMap(doc map[string]any, field string) map[string]any {
	if m, ok := doc[field].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	doc[field] = m
	return m
}

// ensureSlice mirrors ensureMap for array containers.
func ensureSlice(doc map[string]any, field string) []any {
	if s, ok := doc[field].([]any); ok {
		return s
	}
	doc[field] = []any{}
	return []any{}
}
