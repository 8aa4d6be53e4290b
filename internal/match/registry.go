package match

import (
	"strings"
)

// RegistryEntry maps a postal address to a national id. Keywords
// disambiguate when two people live at the same address; they are matched
// against the transaction message.
type RegistryEntry struct {
	NationalID string
	Address    string
	Keywords   []string
}

// Registry is the in-memory address-to-identity registry, loaded once at
// startup and grown through arbitration.
type Registry struct {
	entries []RegistryEntry
}

// NewRegistry builds a registry from the persisted entries.
func NewRegistry(entries []RegistryEntry) *Registry {
	return &Registry{entries: entries}
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Contains reports whether any entry covers the address (case-insensitive
// exact match).
func (r *Registry) Contains(address string) bool {
	for i := range r.entries {
		if strings.EqualFold(r.entries[i].Address, address) {
			return true
		}
	}
	return false
}

// Match resolves an address, using the message against entry keywords when
// several people share the address. The second return value reports
// ambiguity: plural candidates and no keyword singled one out.
func (r *Registry) Match(address, message string) (*RegistryEntry, bool) {
	var candidates []*RegistryEntry
	for i := range r.entries {
		if strings.EqualFold(r.entries[i].Address, address) {
			candidates = append(candidates, &r.entries[i])
		}
	}

	switch len(candidates) {
	case 0:
		return nil, false
	case 1:
		return candidates[0], false
	}

	normalized := normalizeKeywordText(message)
	var matched []*RegistryEntry
	for _, c := range candidates {
		for _, kw := range c.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(normalized, normalizeKeywordText(kw)) {
				matched = append(matched, c)
				break
			}
		}
	}
	if len(matched) == 1 {
		return matched[0], false
	}
	return nil, true
}

// Add appends an entry to the in-memory view. Persistence is the caller's
// concern.
func (r *Registry) Add(entry RegistryEntry) {
	r.entries = append(r.entries, entry)
}

func normalizeKeywordText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
