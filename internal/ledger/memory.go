package ledger

import (
	"github.com/shopspring/decimal"
)

// MemoryStore is the in-memory Store used by tests and as the embedded-table
// backend. Rows and columns are 1-based like the spreadsheet implementations.
type MemoryStore struct {
	rows  [][]string
	saves int
}

// NewMemoryStore creates an empty in-memory sheet.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFromRows seeds a sheet from literal rows, header first.
func NewMemoryStoreFromRows(rows [][]string) *MemoryStore {
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return &MemoryStore{rows: copied}
}

// LastRow implements Store.
func (m *MemoryStore) LastRow() int {
	return len(m.rows)
}

// LastColumn implements Store.
func (m *MemoryStore) LastColumn() int {
	widest := 0
	for _, row := range m.rows {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}

// Cell implements Store.
func (m *MemoryStore) Cell(row, col int) string {
	if row < 1 || row > len(m.rows) {
		return ""
	}
	r := m.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// SetCell implements Store.
func (m *MemoryStore) SetCell(row, col int, value string) {
	for len(m.rows) < row {
		m.rows = append(m.rows, nil)
	}
	r := m.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	m.rows[row-1] = r
}

// SetAmount implements Store.
func (m *MemoryStore) SetAmount(row, col int, value decimal.Decimal) {
	m.SetCell(row, col, value.String())
}

// InsertRowBefore implements Store.
func (m *MemoryStore) InsertRowBefore(row int) {
	if row < 1 {
		row = 1
	}
	for len(m.rows) < row-1 {
		m.rows = append(m.rows, nil)
	}
	m.rows = append(m.rows, nil)
	copy(m.rows[row:], m.rows[row-1:])
	m.rows[row-1] = nil
}

// Save implements Store. It only counts invocations so tests can assert the
// save-once-per-run behavior.
func (m *MemoryStore) Save() error {
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	return m.saves
}

// Rows returns a copy of the raw grid.
func (m *MemoryStore) Rows() [][]string {
	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
