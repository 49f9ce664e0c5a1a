// Package mapping resolves a statement's ambiguous column headers to the
// canonical transaction fields, either through a preset keyed by source
// type or through an explicit user-supplied column mapping.
package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Amount column layouts.
const (
	AmountSingle = "single" // one signed amount column
	AmountSplit  = "split"  // separate debit / credit columns
)

// ColumnMapping names the source-file columns that feed each canonical
// field. AmountType decides whether Amount or Debit/Credit apply.
type ColumnMapping struct {
	PostedDate     string `json:"posted_date"`
	DescriptionRaw string `json:"description_raw"`
	AmountType     string `json:"amount_type"`
	Amount         string `json:"amount,omitempty"`
	Debit          string `json:"debit,omitempty"`
	Credit         string `json:"credit,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Merchant       string `json:"merchant,omitempty"`
}

// Validate checks the mapping's internal consistency before any row is
// touched. Violations are batch-fatal.
func (m ColumnMapping) Validate() error {
	if m.PostedDate == "" || m.DescriptionRaw == "" {
		return errors.New("mapping must specify both posted_date and description_raw columns")
	}
	switch m.AmountType {
	case AmountSingle, "":
		if m.Amount == "" {
			return errors.New("mapping.amount is required when amount_type='single'")
		}
	case AmountSplit:
		if m.Debit == "" && m.Credit == "" {
			return errors.New("mapping must specify at least one of debit or credit when amount_type='split'")
		}
	default:
		return fmt.Errorf("unknown amount_type %q (expected %q or %q)", m.AmountType, AmountSingle, AmountSplit)
	}
	return nil
}

// ColumnError reports a mapped column that is absent from the extracted
// headers, with enough context for the user to fix the mapping.
type ColumnError struct {
	Column    string
	Field     string
	Available []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q (mapped as %s) not found; available headers: %v",
		e.Column, e.Field, e.Available)
}

// CheckHeaders verifies that every named column exists in the extracted
// headers. Optional columns that are left empty are not checked.
func (m ColumnMapping) CheckHeaders(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	check := func(col, field string) error {
		if col != "" && !present[col] {
			return &ColumnError{Column: col, Field: field, Available: headers}
		}
		return nil
	}

	for _, c := range []struct{ col, field string }{
		{m.PostedDate, "date"},
		{m.DescriptionRaw, "description"},
		{m.Amount, "amount"},
		{m.Debit, "debit"},
		{m.Credit, "credit"},
		{m.Currency, "currency"},
		{m.Merchant, "merchant"},
	} {
		if err := check(c.col, c.field); err != nil {
			return err
		}
	}
	return nil
}

// Preset lists candidate header names, in priority order, for each
// canonical field of a known source type.
type Preset struct {
	PostedDate     []string
	DescriptionRaw []string
	Amount         []string
	Currency       []string
	Merchant       []string
}

// Presets is the legacy source-type mapping table. A preset whose merchant
// candidates equal its description candidates has no distinct merchant
// column; the importer auto-extracts the merchant from the description.
var Presets = map[string]Preset{
	"generic": {
		PostedDate:     []string{"Date", "Transaction Date", "Posted Date", "Trans. Date", "Posting Date"},
		DescriptionRaw: []string{"Description", "Payee", "Memo", "Narrative", "Details", "Transaction Description"},
		Amount:         []string{"Amount", "Transaction Amount"},
		Currency:       []string{"Currency", "Ccy"},
		Merchant:       []string{"Merchant", "Merchant Name"},
	},
	"chase": {
		PostedDate:     []string{"Transaction Date"},
		DescriptionRaw: []string{"Description"},
		Amount:         []string{"Amount"},
		Merchant:       []string{"Description"},
	},
	"bofa": {
		PostedDate:     []string{"Date"},
		DescriptionRaw: []string{"Description"},
		Amount:         []string{"Amount"},
		Merchant:       []string{"Description"},
	},
	"amex": {
		PostedDate:     []string{"Date"},
		DescriptionRaw: []string{"Description"},
		Amount:         []string{"Amount"},
		Merchant:       []string{"Description"},
	},
}

// ResolveColumn returns the first candidate present in headers,
// case-insensitively, or "" when none match.
func ResolveColumn(headers, candidates []string) string {
	index := make(map[string]string, len(headers))
	for _, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = h
	}
	for _, c := range candidates {
		if match, ok := index[strings.ToLower(strings.TrimSpace(c))]; ok {
			return match
		}
	}
	return ""
}

// ResolvePreset maps a source type's candidate lists onto the actual
// headers of one file. Missing required columns fail with the resolved and
// expected names spelled out.
func ResolvePreset(sourceType string, headers []string) (ColumnMapping, error) {
	preset, ok := Presets[sourceType]
	if !ok {
		preset = Presets["generic"]
	}

	m := ColumnMapping{
		PostedDate:     ResolveColumn(headers, preset.PostedDate),
		DescriptionRaw: ResolveColumn(headers, preset.DescriptionRaw),
		AmountType:     AmountSingle,
		Amount:         ResolveColumn(headers, preset.Amount),
		Currency:       ResolveColumn(headers, preset.Currency),
		Merchant:       ResolveColumn(headers, preset.Merchant),
	}

	if m.PostedDate == "" || m.DescriptionRaw == "" || m.Amount == "" {
		return ColumnMapping{}, fmt.Errorf(
			"headers %v could not be mapped for source_type=%q "+
				"(resolved date=%q description=%q amount=%q); "+
				"check the source type or your file's columns",
			headers, sourceType, m.PostedDate, m.DescriptionRaw, m.Amount)
	}
	return m, nil
}
