package match

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kbirkholm/kollekt/internal/model"
)

// Arbitrator is the human-in-the-loop port used when a bank deposit's
// address is not in the registry. A console implementation and an
// always-decline implementation both satisfy it; the latter keeps unattended
// re-runs non-blocking.
type Arbitrator interface {
	// ConfirmAddress asks whether a registry entry should be created for the
	// address. Declining skips the address for the rest of the run.
	ConfirmAddress(ctx context.Context, address string) (bool, error)
	// NationalID asks for the national id belonging to the address. A
	// non-empty message is shown to tell two senders at one address apart.
	// An empty id means the operator gave up on this entry.
	NationalID(ctx context.Context, address, message string) (string, error)
}

// DeclineAll is the non-interactive Arbitrator: every unknown address is
// rejected.
type DeclineAll struct{}

// ConfirmAddress always declines.
func (DeclineAll) ConfirmAddress(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// NationalID always returns the empty id.
func (DeclineAll) NationalID(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

// RegistryWriter persists newly arbitrated entries. Implementations must
// append, never overwrite existing rows.
type RegistryWriter interface {
	Append(ctx context.Context, entry RegistryEntry) error
}

// GrowRegistry walks the batch's unknown addresses and arbitrates each one.
// Only multi-line postal addresses are considered: a candidate must contain
// a comma, anything else is a free-text sender, not a member. New entries are
// added to the in-memory registry and persisted immediately.
func GrowRegistry(ctx context.Context, txns []model.Transaction, registry *Registry, arb Arbitrator, writer RegistryWriter) error {
	for _, address := range unknownAddresses(txns, registry) {
		ok, err := arb.ConfirmAddress(ctx, address)
		if err != nil {
			return err
		}
		if !ok {
			slog.Info("address skipped by operator", "address", address)
			continue
		}

		entries, err := arbitrateAddress(ctx, txns, address, arb)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			registry.Add(entry)
			if err := writer.Append(ctx, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

// arbitrateAddress runs the prompt sequence for one confirmed address. When
// some calendar day saw more than one deposit from the address, two people
// live there: prompt once per transaction in that day group, keeping each
// message as the disambiguating keyword. Otherwise a single prompt covers
// the address.
func arbitrateAddress(ctx context.Context, txns []model.Transaction, address string, arb Arbitrator) ([]RegistryEntry, error) {
	shared := sameDayGroup(txns, address)
	if shared == nil {
		id, err := arb.NationalID(ctx, address, "")
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, nil
		}
		return []RegistryEntry{{NationalID: id, Address: address}}, nil
	}

	var entries []RegistryEntry
	for _, txn := range shared {
		id, err := arb.NationalID(ctx, address, txn.Message)
		if err != nil {
			return nil, err
		}
		if id == "" {
			continue
		}
		entries = append(entries, RegistryEntry{
			NationalID: id,
			Address:    address,
			Keywords:   []string{txn.Message},
		})
	}
	return entries, nil
}

// unknownAddresses returns the batch's distinct multi-line addresses that
// the registry does not cover yet, in first-seen order.
func unknownAddresses(txns []model.Transaction, registry *Registry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, txn := range txns {
		if !strings.Contains(txn.Address, ",") {
			continue
		}
		key := strings.ToLower(txn.Address)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if registry.Contains(txn.Address) {
			continue
		}
		out = append(out, txn.Address)
	}
	return out
}

// sameDayGroup returns the first day group with more than one deposit from
// the address, or nil when every day saw at most one.
func sameDayGroup(txns []model.Transaction, address string) []model.Transaction {
	byDay := make(map[string][]model.Transaction)
	var order []string
	for _, txn := range txns {
		if !strings.EqualFold(txn.Address, address) {
			continue
		}
		day := txn.Day().Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			order = append(order, day)
		}
		byDay[day] = append(byDay[day], txn)
	}
	for _, day := range order {
		if len(byDay[day]) > 1 {
			return byDay[day]
		}
	}
	return nil
}
