// Package ingest parses the delimited transaction exports into model.Transactions.
package ingest

// Format describes one export's column layout. The two exports share the
// semicolon delimiter and Danish locale conventions but disagree on
// everything else, so every field position is configuration, not code.
type Format struct {
	Name string

	// Separator between fields on a record line.
	Separator string

	// SkipHeader drops the first line of the file.
	SkipHeader bool

	// JoinContinuations enables the wrapped-record repair: a line is a new
	// record only when its first ten characters parse as a dd-mm-yyyy date;
	// anything else is glued onto the pending record before splitting.
	JoinContinuations bool

	// MinFields is the required field count after splitting.
	MinFields int

	// Field positions, zero-based. Negative means the format lacks the field.
	Date       int
	Amount     int
	Message    int
	Kind       int
	ExternalID int
	SenderName int
	Phone      int
	Address    int
}

// MobilePay returns the layout of the mobile-payment provider's transaction
// report. One record per line, header row present.
func MobilePay() Format {
	return Format{
		Name:       "mobilepay",
		Separator:  ";",
		SkipHeader: true,
		MinFields:  17,
		Date:       10,
		Amount:     6,
		Message:    11,
		Kind:       5,
		ExternalID: 14,
		SenderName: 15,
		Phone:      16,
		Address:    -1,
	}
}

// Bank returns the layout of the bank's posting export. Long fields wrap
// across physical lines, so continuation joining is on.
func Bank() Format {
	return Format{
		Name:              "bank",
		Separator:         ";",
		JoinContinuations: true,
		MinFields:         8,
		Date:              0,
		Message:           1,
		Amount:            2,
		Address:           7,
		Kind:              -1,
		ExternalID:        -1,
		SenderName:        -1,
		Phone:             -1,
	}
}
