package models

import "time"

// Category is a user-visible spending bucket. Deleting a category nulls the
// reference on its transactions rather than cascading.
type Category struct {
	ID                 int64     `db:"id"`
	Name               string    `db:"name"`
	Color              string    `db:"color"` // hex, e.g. #94a3b8
	Icon               string    `db:"icon"`
	IsDefault          bool      `db:"is_default"`
	MonthlyBudgetCents *int64    `db:"monthly_budget"`
	TaxDeductible      bool      `db:"tax_deductible"`
	CreatedAt          time.Time `db:"created_at"`
}
