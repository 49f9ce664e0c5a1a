package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumn(t *testing.T) {
	headers := []string{"Posting Date", "Details", "Amount"}

	assert.Equal(t, "Posting Date", ResolveColumn(headers, []string{"Date", "Posting Date"}))
	assert.Equal(t, "Details", ResolveColumn(headers, []string{"details"}), "case-insensitive")
	assert.Equal(t, "", ResolveColumn(headers, []string{"Payee"}))
}

func TestResolveColumnFirstMatchWins(t *testing.T) {
	headers := []string{"Transaction Date", "Date"}
	// Candidate order decides, not header order.
	assert.Equal(t, "Date", ResolveColumn(headers, []string{"Date", "Transaction Date"}))
}

func TestResolvePreset(t *testing.T) {
	m, err := ResolvePreset("generic", []string{"Date", "Description", "Amount", "Currency"})
	require.NoError(t, err)
	assert.Equal(t, "Date", m.PostedDate)
	assert.Equal(t, "Description", m.DescriptionRaw)
	assert.Equal(t, AmountSingle, m.AmountType)
	assert.Equal(t, "Currency", m.Currency)
	assert.Equal(t, "", m.Merchant, "no merchant column in this file")
}

func TestResolvePresetMerchantEqualsDescription(t *testing.T) {
	// Bank presets reuse the description column as the merchant candidate,
	// which the importer reads as "auto-extract from description".
	m, err := ResolvePreset("chase", []string{"Transaction Date", "Description", "Amount"})
	require.NoError(t, err)
	assert.Equal(t, m.DescriptionRaw, m.Merchant)
}

func TestResolvePresetUnknownFallsBackToGeneric(t *testing.T) {
	m, err := ResolvePreset("no-such-bank", []string{"Date", "Description", "Amount"})
	require.NoError(t, err)
	assert.Equal(t, "Date", m.PostedDate)
}

func TestResolvePresetMissingColumns(t *testing.T) {
	_, err := ResolvePreset("generic", []string{"Foo", "Bar"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_type")
	assert.Contains(t, err.Error(), "Foo")
}

func TestValidate(t *testing.T) {
	valid := ColumnMapping{PostedDate: "Date", DescriptionRaw: "Desc", AmountType: AmountSingle, Amount: "Amount"}
	assert.NoError(t, valid.Validate())

	split := ColumnMapping{PostedDate: "Date", DescriptionRaw: "Desc", AmountType: AmountSplit, Debit: "Debit"}
	assert.NoError(t, split.Validate())

	tests := []struct {
		name string
		m    ColumnMapping
	}{
		{"missing date", ColumnMapping{DescriptionRaw: "Desc", AmountType: AmountSingle, Amount: "Amount"}},
		{"missing description", ColumnMapping{PostedDate: "Date", AmountType: AmountSingle, Amount: "Amount"}},
		{"single without amount", ColumnMapping{PostedDate: "Date", DescriptionRaw: "Desc", AmountType: AmountSingle}},
		{"split without either side", ColumnMapping{PostedDate: "Date", DescriptionRaw: "Desc", AmountType: AmountSplit}},
		{"unknown amount type", ColumnMapping{PostedDate: "Date", DescriptionRaw: "Desc", AmountType: "weird", Amount: "Amount"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.m.Validate())
		})
	}
}

func TestCheckHeaders(t *testing.T) {
	m := ColumnMapping{PostedDate: "Date", DescriptionRaw: "Description", AmountType: AmountSingle, Amount: "Amount"}
	assert.NoError(t, m.CheckHeaders([]string{"Date", "Description", "Amount", "Extra"}))

	err := m.CheckHeaders([]string{"Date", "Description"})
	require.Error(t, err)

	var colErr *ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Amount", colErr.Column)
	assert.Equal(t, "amount", colErr.Field)
	assert.Equal(t, []string{"Date", "Description"}, colErr.Available)
}

func TestCheckHeadersSkipsEmptyOptionals(t *testing.T) {
	m := ColumnMapping{PostedDate: "Date", DescriptionRaw: "Description", AmountType: AmountSingle, Amount: "Amount"}
	// Currency and Merchant are unset and must not be checked.
	assert.NoError(t, m.CheckHeaders([]string{"Date", "Description", "Amount"}))
}
