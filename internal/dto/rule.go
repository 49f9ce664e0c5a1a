package dto

type RuleRequest struct {
	Pattern    string `json:"pattern"`
	MatchType  string `json:"match_type"`
	CategoryID int64  `json:"category_id"`
	Priority   int    `json:"priority"`
	IsActive   bool   `json:"is_active"`
}

type RuleResponse struct {
	ID           int64  `json:"id"`
	Pattern      string `json:"pattern"`
	MatchType    string `json:"match_type"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	Priority     int    `json:"priority"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

// ApplyRulesResponse reports a full recategorization pass.
type ApplyRulesResponse struct {
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
}
