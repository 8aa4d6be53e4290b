package match

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbirkholm/kollekt/internal/model"
)

// scriptedArbitrator accepts every address and hands out ids in order.
type scriptedArbitrator struct {
	ids      []string
	prompted []string // messages shown alongside each id prompt
}

func (a *scriptedArbitrator) ConfirmAddress(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (a *scriptedArbitrator) NationalID(_ context.Context, _, message string) (string, error) {
	a.prompted = append(a.prompted, message)
	if len(a.ids) == 0 {
		return "", nil
	}
	id := a.ids[0]
	a.ids = a.ids[1:]
	return id, nil
}

type memoryWriter struct {
	appended []RegistryEntry
}

func (w *memoryWriter) Append(_ context.Context, entry RegistryEntry) error {
	w.appended = append(w.appended, entry)
	return nil
}

func bankTxn(day int, address, message string) model.Transaction {
	return model.Transaction{
		Date:    time.Date(2024, time.June, day, 10, 0, 0, 0, time.Local),
		Address: address,
		Message: message,
	}
}

func TestGrowRegistry_SimpleAddress(t *testing.T) {
	txns := []model.Transaction{
		bankTxn(3, "Hovedgaden 12, 7000 Fredericia", "Gave"),
		bankTxn(10, "Hovedgaden 12, 7000 Fredericia", "Gave"),
	}
	registry := NewRegistry(nil)
	arb := &scriptedArbitrator{ids: []string{"010180-0001"}}
	writer := &memoryWriter{}

	err := GrowRegistry(context.Background(), txns, registry, arb, writer)
	require.NoError(t, err)

	require.Len(t, writer.appended, 1)
	assert.Equal(t, "010180-0001", writer.appended[0].NationalID)
	assert.Equal(t, "Hovedgaden 12, 7000 Fredericia", writer.appended[0].Address)
	assert.Empty(t, writer.appended[0].Keywords)
	assert.True(t, registry.Contains("Hovedgaden 12, 7000 Fredericia"))
}

func TestGrowRegistry_TwoSendersAtOneAddress(t *testing.T) {
	// Two deposits on the same day from one address: one entry per deposit,
	// message kept as the disambiguator.
	txns := []model.Transaction{
		bankTxn(3, "Torvet 3, 8722 Hedensted", "fra Anna"),
		bankTxn(3, "Torvet 3, 8722 Hedensted", "fra Bent"),
	}
	registry := NewRegistry(nil)
	arb := &scriptedArbitrator{ids: []string{"020280-0002", "030380-0003"}}
	writer := &memoryWriter{}

	err := GrowRegistry(context.Background(), txns, registry, arb, writer)
	require.NoError(t, err)

	require.Len(t, writer.appended, 2)
	assert.Equal(t, []string{"fra Anna"}, writer.appended[0].Keywords)
	assert.Equal(t, []string{"fra Bent"}, writer.appended[1].Keywords)
	assert.Equal(t, []string{"fra Anna", "fra Bent"}, arb.prompted)
}

func TestGrowRegistry_SkipsKnownAndSingleLineAddresses(t *testing.T) {
	txns := []model.Transaction{
		bankTxn(3, "Hovedgaden 12, 7000 Fredericia", ""),
		bankTxn(4, "Mobilepay", ""), // no comma: not a postal address
	}
	registry := NewRegistry([]RegistryEntry{
		{NationalID: "010180-0001", Address: "hovedgaden 12, 7000 fredericia"},
	})
	arb := &scriptedArbitrator{ids: []string{"never-used"}}
	writer := &memoryWriter{}

	err := GrowRegistry(context.Background(), txns, registry, arb, writer)
	require.NoError(t, err)
	assert.Empty(t, writer.appended)
	assert.Empty(t, arb.prompted)
}

func TestGrowRegistry_DeclineAllNeverWrites(t *testing.T) {
	txns := []model.Transaction{
		bankTxn(3, "Hovedgaden 12, 7000 Fredericia", ""),
	}
	writer := &memoryWriter{}

	err := GrowRegistry(context.Background(), txns, NewRegistry(nil), DeclineAll{}, writer)
	require.NoError(t, err)
	assert.Empty(t, writer.appended)
}
