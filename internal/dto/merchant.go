package dto

type MerchantAliasRequest struct {
	Alias     string `json:"alias"`
	Canonical string `json:"canonical"`
}

type MerchantAliasResponse struct {
	ID        int64  `json:"id"`
	Alias     string `json:"alias"`
	Canonical string `json:"canonical"`
	CreatedAt string `json:"created_at"`
}

// RebuildResponse reports a full canonical-merchant rebuild.
type RebuildResponse struct {
	Updated int `json:"updated"`
	Total   int `json:"total"`
}
