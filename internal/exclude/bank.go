package exclude

import (
	"strings"

	"github.com/kbirkholm/kollekt/internal/model"
)

// DefaultNonMemberAddresses are sender-address fragments that identify
// deposits from payment rails and fixed organizational senders rather than
// members.
func DefaultNonMemberAddresses() []string {
	return []string{
		"Vipps",
		"Begravelseshjælp",
		"Korskærvej 25, 7000",
		"Kirkegade 15, 8722  Hedensted",
	}
}

// membershipFeeMarkers flag deposits handled by the membership-fee process,
// not the donation ledger.
var membershipFeeMarkers = []string{"kontingent", "kont"}

// FilterBankDeposits drops the bank-stream transactions that never reach
// reconciliation: non-positive amounts, membership-fee payments, and
// deposits from known non-member senders. These are dropped entirely, not
// merely tagged.
func FilterBankDeposits(txns []model.Transaction, nonMemberAddresses []string) []model.Transaction {
	kept := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if !txn.Amount.IsPositive() {
			continue
		}
		if containsAnyFold(txn.Message, membershipFeeMarkers) {
			continue
		}
		if containsAnyFold(txn.Address, nonMemberAddresses) {
			continue
		}
		kept = append(kept, txn)
	}
	return kept
}

func containsAnyFold(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
