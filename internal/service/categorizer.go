package service

import (
	"context"
	"regexp"
	"strings"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Categorize returns the category and rule of the first rule matching the
// normalized description, or (nil, nil). Rules must already be sorted by
// priority DESC, id ASC; evaluation is first-match-wins. Invalid regex
// patterns are skipped, never fatal.
func Categorize(descriptionNorm string, rules []*models.Rule) (categoryID, ruleID *int64) {
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		var matched bool
		switch rule.MatchType {
		case models.MatchContains:
			matched = strings.Contains(descriptionNorm, strings.ToLower(rule.Pattern))
		case models.MatchExact:
			matched = strings.ToLower(rule.Pattern) == strings.TrimSpace(descriptionNorm)
		case models.MatchRegex:
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				continue
			}
			matched = re.MatchString(descriptionNorm)
		}
		if matched {
			cat, id := rule.CategoryID, rule.ID
			return &cat, &id
		}
	}
	return nil, nil
}

// CategorizerService applies the active rule set to stored transactions.
type CategorizerService struct {
	rules        RuleStore
	transactions TransactionStore
	logger       *zap.Logger
}

func NewCategorizerService(rules RuleStore, transactions TransactionStore, logger *zap.Logger) *CategorizerService {
	return &CategorizerService{
		rules:        rules,
		transactions: transactions,
		logger:       logger,
	}
}

// ApplyToImport categorizes only the rows of one batch. Called right after
// an import commits; exits early when no active rules exist.
func (s *CategorizerService) ApplyToImport(ctx context.Context, importID uuid.UUID) error {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}

	transactions, err := s.transactions.ListByImport(ctx, importID)
	if err != nil {
		return err
	}

	for _, tx := range transactions {
		if err := s.recategorize(ctx, tx, rules); err != nil {
			return err
		}
	}
	return nil
}

// ApplyToAll recategorizes every transaction, overwriting existing
// assignments and their provenance, manual ones included.
func (s *CategorizerService) ApplyToAll(ctx context.Context) (*dto.ApplyRulesResponse, error) {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, tx := range transactions {
		before := categoryState{tx.CategoryID, tx.CategoryRuleID}
		if err := s.recategorize(ctx, tx, rules); err != nil {
			return nil, err
		}
		after := categoryState{tx.CategoryID, tx.CategoryRuleID}
		if !before.equal(after) {
			updated++
		}
	}

	s.logger.Info("recategorized all transactions",
		zap.Int("updated", updated),
		zap.Int("total", len(transactions)),
	)
	return &dto.ApplyRulesResponse{
		Updated:   updated,
		Unchanged: len(transactions) - updated,
		Total:     len(transactions),
	}, nil
}

type categoryState struct {
	categoryID *int64
	ruleID     *int64
}

func (a categoryState) equal(b categoryState) bool {
	return int64PtrEqual(a.categoryID, b.categoryID) && int64PtrEqual(a.ruleID, b.ruleID)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// recategorize writes the new assignment only when it differs from the
// stored one, and mirrors the write onto tx so callers see the new state.
func (s *CategorizerService) recategorize(ctx context.Context, tx *models.Transaction, rules []*models.Rule) error {
	newCat, newRule := Categorize(tx.DescriptionNorm, rules)
	var newSource *string
	if newCat != nil {
		src := models.CategorySourceRule
		newSource = &src
	}

	current := categoryState{tx.CategoryID, tx.CategoryRuleID}
	next := categoryState{newCat, newRule}
	if current.equal(next) {
		return nil
	}

	if err := s.transactions.UpdateCategory(ctx, tx.ID, newCat, newSource, newRule); err != nil {
		return err
	}
	tx.CategoryID = newCat
	tx.CategorySource = newSource
	tx.CategoryRuleID = newRule
	return nil
}
