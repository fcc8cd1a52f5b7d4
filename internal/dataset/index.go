package dataset

import "strings"

// minFragmentLen guards the containment fallback: very short fragments
// ("an", "co") would otherwise match inside almost any canonical name.
const minFragmentLen = 3

// AreaIndex maps normalized area-name strings to canonical area
// identifiers. It is built once per snapshot and read-only afterwards.
type AreaIndex struct {
	exact     map[string]string // normalized name/alias -> canonical id
	canonical []string          // canonical ids in dataset order
	normNames []string          // normalized canonical names, same order
}

// NewAreaIndex builds an index over the canonical areas (in dataset order).
// Aliases are extra keys pointing at an existing canonical id; aliases for
// unknown ids are ignored.
func NewAreaIndex(areas []string, aliases map[string]string) *AreaIndex {
	idx := &AreaIndex{
		exact:     make(map[string]string, len(areas)+len(aliases)),
		canonical: make([]string, 0, len(areas)),
		normNames: make([]string, 0, len(areas)),
	}

	known := make(map[string]bool, len(areas))
	for _, area := range areas {
		norm := Normalize(area)
		if norm == "" || known[area] {
			continue
		}
		known[area] = true
		idx.canonical = append(idx.canonical, area)
		idx.normNames = append(idx.normNames, norm)
		idx.exact[norm] = area
	}

	for alias, target := range aliases {
		if !known[target] {
			continue
		}
		norm := Normalize(alias)
		if norm == "" {
			continue
		}
		if _, taken := idx.exact[norm]; !taken {
			idx.exact[norm] = target
		}
	}

	return idx
}

// Resolve maps a free-text fragment to a canonical area id.
// Exact normalized match wins; otherwise the fragment is matched by
// containment against canonical names, preferring the shortest canonical
// name and breaking ties by dataset order. Malformed or empty fragments
// simply fail to resolve.
func (idx *AreaIndex) Resolve(fragment string) (string, bool) {
	norm := Normalize(fragment)
	if norm == "" {
		return "", false
	}

	if area, ok := idx.exact[norm]; ok {
		return area, true
	}

	if len(norm) < minFragmentLen {
		return "", false
	}

	best := -1
	for i, name := range idx.normNames {
		if !strings.Contains(name, norm) {
			continue
		}
		if best == -1 || len(name) < len(idx.normNames[best]) {
			best = i
		}
	}
	if best == -1 {
		return "", false
	}
	return idx.canonical[best], true
}

// Areas returns the canonical ids in dataset order.
func (idx *AreaIndex) Areas() []string {
	return idx.canonical
}

// Normalize lower-cases a name and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
