package serverlist

import (
	"fmt"
	"sort"
	"strings"
)

// Container names which top-level field an item currently lives under.
type Container int

const (
	ContainerActive Container = iota
	ContainerDisabled
)

func (c Container) String() string {
	if c == ContainerDisabled {
		return "disabled"
	}
	return "active"
}

// Field returns the document key backing this container.
func (c Container) Field() string {
	if c == ContainerDisabled {
		return DisabledField
	}
	return ActiveField
}

// Status is the derived on/off state of an item.
type Status int

const (
	StatusEnabled Status = iota
	StatusDisabled
)

func (s Status) String() string {
	if s == StatusDisabled {
		return "disabled"
	}
	return "enabled"
}

// summaryWidth caps the display summary. Purely cosmetic.
const summaryWidth = 60

// Item is a uniform view over one server entry plus where it lives. Items are
// rebuilt from the document on every operation and share the entry's storage:
// mutations applied through an item land in the document. They must not be
// kept across mutations or persisted.
type Item struct {
	Key       string // set for keyed shape
	Index     int    // set for indexed shape, -1 otherwise
	Container Container
	Status    Status
	ID        string
	Name      string
	Summary   string

	value any // backing entry value inside the document
}

// Label returns the identifier shown to the user: key, then id, then name,
// then array position.
func (it Item) Label() string {
	switch {
	case it.Key != "":
		return it.Key
	case it.ID != "":
		return it.ID
	case it.Name != "":
		return it.Name
	default:
		return fmt.Sprintf("#%d", it.Index)
	}
}

// fields returns the entry's object form, or nil when the raw value is not an
// object.
func (it Item) fields() map[string]any {
	m, _ := it.value.(map[string]any)
	return m
}

// Enumerate builds the ordered item sequence: the active container first,
// then the disabled one. Keyed containers iterate in sorted key order (the
// document key order is not observable through a Go map), indexed ones in
// array order. A disabled container whose type does not match the detected
// shape is treated as empty: it is tool-managed and only ever created in the
// matching shape.
func Enumerate(doc map[string]any, shape Shape) []Item {
	items := collect(nil, doc[ActiveField], shape, ContainerActive)
	return collect(items, doc[DisabledField], shape, ContainerDisabled)
}

func collect(items []Item, raw any, shape Shape, c Container) []Item {
	switch shape.Kind {
	case Keyed:
		m, ok := raw.(map[string]any)
		if !ok {
			return items
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			items = append(items, newItem(m[k], c, k, -1))
		}
	case Indexed:
		s, ok := raw.([]any)
		if !ok {
			return items
		}
		for i, v := range s {
			items = append(items, newItem(v, c, "", i))
		}
	}
	return items
}

func newItem(value any, c Container, key string, index int) Item {
	it := Item{Key: key, Index: index, Container: c, Status: StatusEnabled, value: value}
	if c == ContainerDisabled {
		it.Status = StatusDisabled
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return it
	}
	it.ID = stringField(fields, "id")
	it.Name = stringField(fields, "name")
	if b, ok := fields["enabled"].(bool); ok && !b {
		it.Status = StatusDisabled
	}
	it.Summary = summarize(fields)
	return it
}

// stringField coerces a present, non-null field to its string form.
func stringField(fields map[string]any, name string) string {
	v, ok := fields[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// summarize renders the entry's command line or URL for display.
func summarize(fields map[string]any) string {
	var s string
	if cmd := stringField(fields, "command"); cmd != "" {
		parts := []string{cmd}
		if args, ok := fields["args"].([]any); ok {
			for _, a := range args {
				parts = append(parts, fmt.Sprintf("%v", a))
			}
		}
		s = strings.Join(parts, " ")
	} else {
		s = stringField(fields, "url")
	}
	if len(s) > summaryWidth {
		s = s[:summaryWidth-3] + "..."
	}
	return s
}
