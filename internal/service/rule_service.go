package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/models"

	"go.uber.org/zap"
)

type RuleService struct {
	rules      RuleStore
	categories CategoryStore
	logger     *zap.Logger
}

func NewRuleService(rules RuleStore, categories CategoryStore, logger *zap.Logger) *RuleService {
	return &RuleService{
		rules:      rules,
		categories: categories,
		logger:     logger,
	}
}

func (s *RuleService) validate(ctx context.Context, req dto.RuleRequest) error {
	if req.Pattern == "" {
		return fmt.Errorf("%w: pattern is required", ErrInvalidInput)
	}
	switch req.MatchType {
	case models.MatchContains, models.MatchExact:
	case models.MatchRegex:
		if _, err := regexp.Compile("(?i)" + req.Pattern); err != nil {
			return fmt.Errorf("%w: invalid regex pattern: %v", ErrInvalidInput, err)
		}
	default:
		return fmt.Errorf("%w: match_type %q", ErrInvalidInput, req.MatchType)
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category %d", ErrInvalidInput, req.CategoryID)
	}
	return nil
}

func toRuleResponse(rule *models.Rule, categoryName string) *dto.RuleResponse {
	return &dto.RuleResponse{
		ID:           rule.ID,
		Pattern:      rule.Pattern,
		MatchType:    rule.MatchType,
		CategoryID:   rule.CategoryID,
		CategoryName: categoryName,
		Priority:     rule.Priority,
		IsActive:     rule.IsActive,
		CreatedAt:    rule.CreatedAt.Format(time.RFC3339),
	}
}

func (s *RuleService) Create(ctx context.Context, req dto.RuleRequest) (*dto.RuleResponse, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	rule := &models.Rule{
		Pattern:    req.Pattern,
		MatchType:  req.MatchType,
		CategoryID: req.CategoryID,
		Priority:   req.Priority,
		IsActive:   req.IsActive,
		CreatedAt:  time.Now(),
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return s.withCategoryName(ctx, rule)
}

func (s *RuleService) List(ctx context.Context) ([]*dto.RuleResponse, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.RuleResponse, len(rules))
	for i, rule := range rules {
		responses[i] = toRuleResponse(rule, names[rule.CategoryID])
	}
	return responses, nil
}

func (s *RuleService) Update(ctx context.Context, id int64, req dto.RuleRequest) (*dto.RuleResponse, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrNotFound
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	rule.Pattern = req.Pattern
	rule.MatchType = req.MatchType
	rule.CategoryID = req.CategoryID
	rule.Priority = req.Priority
	rule.IsActive = req.IsActive
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, err
	}
	return s.withCategoryName(ctx, rule)
}

func (s *RuleService) Delete(ctx context.Context, id int64) error {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return ErrNotFound
	}
	return s.rules.Delete(ctx, id)
}

func (s *RuleService) withCategoryName(ctx context.Context, rule *models.Rule) (*dto.RuleResponse, error) {
	category, err := s.categories.GetByID(ctx, rule.CategoryID)
	if err != nil {
		return nil, err
	}
	name := ""
	if category != nil {
		name = category.Name
	}
	return toRuleResponse(rule, name), nil
}

func (s *RuleService) categoryNames(ctx context.Context) (map[int64]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
