package exclude

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbirkholm/kollekt/internal/model"
)

func TestTag_GroupLevelClassification(t *testing.T) {
	txns := []model.Transaction{
		{ExternalID: "TX-1", Message: "Til sommerfesten", Kind: "Betaling"},
		{ExternalID: "TX-1", Message: "", Kind: model.KindFee}, // fee row, no message
		{ExternalID: "TX-2", Message: "Gave", Kind: "Betaling"},
	}

	Tag(txns, []string{"sommerfest"})

	assert.True(t, txns[0].Excluded)
	assert.True(t, txns[1].Excluded, "fee inherits exclusion through the shared external id")
	assert.False(t, txns[2].Excluded)
}

func TestTag_CaseAndWhitespaceInsensitive(t *testing.T) {
	txns := []model.Transaction{
		{ExternalID: "TX-1", Message: "TIL  Bygge   FONDEN"},
	}

	Tag(txns, []string{"bygge fonden"})

	assert.True(t, txns[0].Excluded)
}

func TestTag_RerunClearsStaleFlags(t *testing.T) {
	txns := []model.Transaction{
		{ExternalID: "TX-1", Message: "Gave", Excluded: true},
	}

	Tag(txns, []string{"sommerfest"})

	assert.False(t, txns[0].Excluded)
}

func TestLoadKeywords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exclusions.txt")
	require.NoError(t, os.WriteFile(path, []byte("sommerfest\n\n  byggefond  \n"), 0o600))

	keywords, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sommerfest", "byggefond"}, keywords)
}

func TestLoadKeywords_MissingFileIsEmpty(t *testing.T) {
	keywords, err := LoadKeywords(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)
	assert.Empty(t, keywords)
}

func TestFilterBankDeposits(t *testing.T) {
	amount := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	txns := []model.Transaction{
		{Message: "Gave", Amount: amount(500), Address: "Hovedgaden 12, 7000 Fredericia"},
		{Message: "Kontingent 2024", Amount: amount(200), Address: "Hovedgaden 12, 7000 Fredericia"},
		{Message: "kont. juni", Amount: amount(200), Address: "Hovedgaden 12, 7000 Fredericia"},
		{Message: "Gave", Amount: amount(-100), Address: "Hovedgaden 12, 7000 Fredericia"},
		{Message: "Overførsel", Amount: amount(300), Address: "Vipps AS, Oslo"},
	}

	kept := FilterBankDeposits(txns, DefaultNonMemberAddresses())

	require.Len(t, kept, 1)
	assert.Equal(t, "Gave", kept[0].Message)
	assert.True(t, kept[0].Amount.Equal(amount(500)))
}
