package service

import (
	"context"
	"fmt"
	"time"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/models"

	"go.uber.org/zap"
)

type CategoryService struct {
	categories CategoryStore
	logger     *zap.Logger
}

func NewCategoryService(categories CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

func toCategoryResponse(c *models.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Color:              c.Color,
		Icon:               c.Icon,
		IsDefault:          c.IsDefault,
		MonthlyBudgetCents: c.MonthlyBudgetCents,
		TaxDeductible:      c.TaxDeductible,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
}

func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	existing, err := s.categories.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category %q", ErrConflict, req.Name)
	}

	category := &models.Category{
		Name:               req.Name,
		Color:              req.Color,
		Icon:               req.Icon,
		MonthlyBudgetCents: req.MonthlyBudgetCents,
		TaxDeductible:      req.TaxDeductible,
		CreatedAt:          time.Now(),
	}
	if category.Color == "" {
		category.Color = "#94a3b8"
	}
	if category.Icon == "" {
		category.Icon = "📌"
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

func (s *CategoryService) List(ctx context.Context) ([]*dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = toCategoryResponse(c)
	}
	return responses, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.Name != category.Name {
		existing, err := s.categories.GetByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: category %q", ErrConflict, req.Name)
		}
	}

	category.Name = req.Name
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}
	category.MonthlyBudgetCents = req.MonthlyBudgetCents
	category.TaxDeductible = req.TaxDeductible
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete removes a category; transactions referencing it fall back to
// uncategorized through the schema's SET NULL, and its rules go with it.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.categories.Delete(ctx, id)
}
