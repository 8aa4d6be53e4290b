// Package match resolves a transaction's sender to a known identity.
//
// The phone suffix is the high-precision key; the free-text sender name is
// the fallback. Whenever the rules cannot single out one identity the result
// is Ambiguous, never a silent pick.
package match

import (
	"fmt"
	"strings"
)

// Entry is one roster candidate presented to the matcher. Row is an opaque
// reference into the backing store, carried through untouched.
type Entry struct {
	Row         int
	Name        string
	PhoneSuffix string
}

// Outcome classifies a resolution attempt.
type Outcome int

const (
	// Unresolved means no candidate matched; the caller may create one.
	Unresolved Outcome = iota
	// Resolved means exactly one candidate matched.
	Resolved
	// Ambiguous means the rules found plural or conflicting candidates.
	Ambiguous
)

// Result is the outcome of one resolution attempt.
type Result struct {
	Outcome Outcome
	Entry   *Entry
	// BackfillPhone is set when the match came through the name fallback and
	// the stored row has no phone yet: the caller should write the
	// transaction's suffix through so phone numbers self-heal over time.
	BackfillPhone bool
	Reason        string
}

// Resolve applies the phone-first, name-fallback matching rules to the
// candidate set.
func Resolve(entries []Entry, name, phoneSuffix string) Result {
	name = strings.TrimSpace(name)

	if phoneSuffix != "" {
		var byPhone []*Entry
		for i := range entries {
			if entries[i].PhoneSuffix == phoneSuffix {
				byPhone = append(byPhone, &entries[i])
			}
		}
		switch {
		case len(byPhone) == 1:
			return Result{Outcome: Resolved, Entry: byPhone[0]}
		case len(byPhone) > 1:
			return Result{
				Outcome: Ambiguous,
				Reason:  fmt.Sprintf("multiple rows share phone suffix %s", phoneSuffix),
			}
		}
	}

	var byName []*Entry
	if name != "" {
		for i := range entries {
			if strings.EqualFold(strings.TrimSpace(entries[i].Name), name) {
				byName = append(byName, &entries[i])
			}
		}
	}

	switch len(byName) {
	case 0:
		return Result{Outcome: Unresolved}
	case 1:
		entry := byName[0]
		if phoneSuffix == "" || entry.PhoneSuffix == "" {
			return Result{
				Outcome:       Resolved,
				Entry:         entry,
				BackfillPhone: phoneSuffix != "" && entry.PhoneSuffix == "",
			}
		}
		// The stored row holds a different phone. Same name, different
		// number: could be a second person.
		return Result{
			Outcome: Ambiguous,
			Reason: fmt.Sprintf("row named %q holds phone suffix %s, transaction has %s",
				name, entry.PhoneSuffix, phoneSuffix),
		}
	default:
		return Result{
			Outcome: Ambiguous,
			Reason:  fmt.Sprintf("%d rows named %q and none match the phone suffix", len(byName), name),
		}
	}
}
