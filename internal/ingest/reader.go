package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kbirkholm/kollekt/internal/common"
	"github.com/kbirkholm/kollekt/internal/model"
)

// dateLayout is the record-start date format shared by both exports.
const dateLayout = "02-01-2006"

// timestampLayouts are tried in order when a date field carries a time of
// day. The exports are not consistent about the time separator.
var timestampLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006 15.04.05",
	"02-01-2006 15:04",
	"02-01-2006",
}

var messageCleaner = strings.NewReplacer(`"`, " ", `'`, " ")

// Reader turns raw export lines into transactions for one configured format.
type Reader struct {
	format Format
}

// NewReader creates a reader for the given format.
func NewReader(format Format) *Reader {
	return &Reader{format: format}
}

// Parse consumes the source and returns every well-formed transaction.
// Malformed records are logged and skipped; only I/O failures abort the batch.
func (r *Reader) Parse(ctx context.Context, src io.Reader) ([]model.Transaction, error) {
	records, err := r.records(ctx, src)
	if err != nil {
		return nil, err
	}

	transactions := make([]model.Transaction, 0, len(records))
	skipped := 0
	for _, record := range records {
		txn, err := r.parseRecord(record)
		if err != nil {
			skipped++
			slog.Warn("skipping malformed record",
				"format", r.format.Name,
				"record", record,
				"error", err)
			continue
		}
		transactions = append(transactions, txn)
	}

	slog.Info("parsed export",
		"format", r.format.Name,
		"transactions", len(transactions),
		"skipped", skipped)
	return transactions, nil
}

// records assembles logical records from physical lines, repairing wrapped
// lines when the format calls for it.
func (r *Reader) records(ctx context.Context, src io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []string
	var pending string
	first := true

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := scanner.Text()
		if first {
			first = false
			if r.format.SkipHeader {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !r.format.JoinContinuations {
			records = append(records, line)
			continue
		}

		if startsWithDate(line) {
			if pending != "" {
				records = append(records, pending)
			}
			pending = line
			continue
		}
		if pending == "" {
			// Leading junk before the first dated record.
			slog.Debug("dropping line outside any record", "format", r.format.Name, "line", line)
			continue
		}
		pending += " " + line
	}
	if pending != "" {
		records = append(records, pending)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s export: %w", r.format.Name, err)
	}
	return records, nil
}

func (r *Reader) parseRecord(record string) (model.Transaction, error) {
	fields := strings.Split(record, r.format.Separator)
	if len(fields) < r.format.MinFields {
		return model.Transaction{}, fmt.Errorf("%w: %d fields, need %d",
			common.ErrMalformedRecord, len(fields), r.format.MinFields)
	}

	date, err := parseTimestamp(fields[r.format.Date])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: date %q: %v",
			common.ErrMalformedRecord, fields[r.format.Date], err)
	}
	amount, err := ParseAmount(fields[r.format.Amount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: amount %q: %v",
			common.ErrMalformedRecord, fields[r.format.Amount], err)
	}

	txn := model.Transaction{
		Date:    date,
		Amount:  amount,
		Message: messageCleaner.Replace(field(fields, r.format.Message)),
	}
	txn.Message = strings.TrimSpace(txn.Message)
	txn.Kind = strings.TrimSpace(field(fields, r.format.Kind))
	txn.ExternalID = strings.TrimSpace(field(fields, r.format.ExternalID))
	txn.Name = strings.TrimSpace(model.CollapseSpaces(field(fields, r.format.SenderName)))
	txn.PhoneSuffix = model.PhoneSuffix(field(fields, r.format.Phone))
	txn.Address = strings.TrimSpace(field(fields, r.format.Address))
	return txn, nil
}

func field(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// ParseAmount parses a Danish-locale decimal: comma decimal separator,
// optional dot thousands separators. Cells formatted by the spreadsheet's
// builtin number formats render the other way around (comma grouping, dot
// decimal); when both separators appear, whichever comes last is the
// decimal point.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	if comma >= 0 {
		if dot > comma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	}
	return decimal.NewFromString(s)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// startsWithDate reports whether a line opens a new record: its first ten
// characters must parse as a dd-mm-yyyy date.
func startsWithDate(line string) bool {
	if len(line) < len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, line[:len(dateLayout)])
	return err == nil
}
