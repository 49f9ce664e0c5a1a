package dto

type CategoryRequest struct {
	Name               string `json:"name"`
	Color              string `json:"color"`
	Icon               string `json:"icon"`
	MonthlyBudgetCents *int64 `json:"monthly_budget_cents"`
	TaxDeductible      bool   `json:"tax_deductible"`
}

type CategoryResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Color              string `json:"color"`
	Icon               string `json:"icon"`
	IsDefault          bool   `json:"is_default"`
	MonthlyBudgetCents *int64 `json:"monthly_budget_cents,omitempty"`
	TaxDeductible      bool   `json:"tax_deductible"`
	CreatedAt          string `json:"created_at"`
}
