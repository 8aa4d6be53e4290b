package ledger

import (
	"context"
	"strings"

	"github.com/kbirkholm/kollekt/internal/match"
)

// The registry sheet has a header row and three fixed columns: national id,
// address, keywords.
const (
	registryIDCol      = 1
	registryAddressCol = 2
	registryKeywordCol = 3
)

// LoadRegistry reads every persisted address-to-identity entry. Rows missing
// the id or the address are ignored.
func LoadRegistry(store Store) *match.Registry {
	var entries []match.RegistryEntry
	for row := 2; row <= store.LastRow(); row++ {
		id := strings.TrimSpace(store.Cell(row, registryIDCol))
		address := strings.TrimSpace(store.Cell(row, registryAddressCol))
		if id == "" || address == "" {
			continue
		}
		entry := match.RegistryEntry{NationalID: id, Address: address}
		if raw := strings.TrimSpace(store.Cell(row, registryKeywordCol)); raw != "" {
			for _, kw := range strings.Split(raw, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					entry.Keywords = append(entry.Keywords, kw)
				}
			}
		}
		entries = append(entries, entry)
	}
	return match.NewRegistry(entries)
}

// RegistryStore persists arbitrated entries. Appends save immediately so an
// interrupted run keeps what the operator already typed in.
type RegistryStore struct {
	store Store
}

// NewRegistryStore wraps a Store as a match.RegistryWriter.
func NewRegistryStore(store Store) *RegistryStore {
	return &RegistryStore{store: store}
}

// Append implements match.RegistryWriter. Existing rows are never touched.
func (r *RegistryStore) Append(_ context.Context, entry match.RegistryEntry) error {
	row := r.store.LastRow() + 1
	if row < 2 {
		row = 2
	}
	r.store.SetCell(row, registryIDCol, entry.NationalID)
	r.store.SetCell(row, registryAddressCol, entry.Address)
	if len(entry.Keywords) > 0 {
		r.store.SetCell(row, registryKeywordCol, strings.Join(entry.Keywords, ", "))
	}
	return r.store.Save()
}
