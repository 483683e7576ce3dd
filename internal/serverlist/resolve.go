package serverlist

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxCandidates caps both ambiguity and suggestion lists.
const maxCandidates = 5

// MatchResult is the outcome of resolving a user-typed identifier. Exactly
// one of the three views applies: Item when uniquely resolved, Ambiguous when
// two or more items tie on the same field, otherwise Suggestions (possibly
// empty), ranked by ascending edit distance.
type MatchResult struct {
	Item        *Item
	Ambiguous   []Item
	Suggestions []Item
}

// Resolved reports whether a single item matched.
func (r MatchResult) Resolved() bool { return r.Item != nil }

// Resolve matches identifier against the items case-insensitively with field
// priority id, then key, then name. A unique hit at a tier resolves; multiple
// hits at one tier are ambiguous and never fall through to lower tiers. With
// no hit at any tier, near misses are suggested instead.
func Resolve(items []Item, identifier string) MatchResult {
	q := strings.ToLower(identifier)
	tiers := []func(*Item) string{
		func(it *Item) string { return it.ID },
		func(it *Item) string { return it.Key },
		func(it *Item) string { return it.Name },
	}
	for _, field := range tiers {
		var hits []Item
		for i := range items {
			if v := field(&items[i]); v != "" && strings.ToLower(v) == q {
				hits = append(hits, items[i])
			}
		}
		switch {
		case len(hits) == 1:
			return MatchResult{Item: &hits[0]}
		case len(hits) > 1:
			if len(hits) > maxCandidates {
				hits = hits[:maxCandidates]
			}
			return MatchResult{Ambiguous: hits}
		}
	}
	return MatchResult{Suggestions: suggest(items, q)}
}

// suggest scores every populated id/key/name value by edit distance to the
// query and maps the closest candidates back to their items. One item may
// contribute up to three candidates; only its best-ranked occurrence
// survives. The sort is stable, so ties keep enumeration order.
func suggest(items []Item, q string) []Item {
	type candidate struct {
		item     int
		distance int
	}
	var pool []candidate
	for i := range items {
		for _, v := range []string{items[i].ID, items[i].Key, items[i].Name} {
			if v == "" {
				continue
			}
			pool = append(pool, candidate{
				item:     i,
				distance: fuzzy.LevenshteinDistance(strings.ToLower(v), q),
			})
		}
	}
	sort.SliceStable(pool, func(a, b int) bool { return pool[a].distance < pool[b].distance })

	seen := make(map[int]bool, len(items))
	var out []Item
	for _, c := range pool {
		if seen[c.item] {
			continue
		}
		seen[c.item] = true
		out = append(out, items[c.item])
		if len(out) == maxCandidates {
			break
		}
	}
	return out
}
