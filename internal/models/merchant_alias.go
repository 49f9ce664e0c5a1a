package models

import "time"

// MerchantAlias collapses a variant merchant string onto its canonical
// name. The alias side is stored lowercase.
type MerchantAlias struct {
	ID        int64     `db:"id"`
	Alias     string    `db:"alias"`
	Canonical string    `db:"canonical"`
	CreatedAt time.Time `db:"created_at"`
}
