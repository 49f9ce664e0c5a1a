package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/models"

	"go.uber.org/zap"
)

// MerchantService manages the alias table. Aliases are stored lowercase so
// lookups are case-insensitive.
type MerchantService struct {
	aliases AliasStore
	logger  *zap.Logger
}

func NewMerchantService(aliases AliasStore, logger *zap.Logger) *MerchantService {
	return &MerchantService{
		aliases: aliases,
		logger:  logger,
	}
}

func toAliasResponse(a *models.MerchantAlias) *dto.MerchantAliasResponse {
	return &dto.MerchantAliasResponse{
		ID:        a.ID,
		Alias:     a.Alias,
		Canonical: a.Canonical,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func (s *MerchantService) Create(ctx context.Context, req dto.MerchantAliasRequest) (*dto.MerchantAliasResponse, error) {
	alias := strings.ToLower(strings.TrimSpace(req.Alias))
	canonical := strings.TrimSpace(req.Canonical)
	if alias == "" || canonical == "" {
		return nil, fmt.Errorf("%w: alias and canonical are both required", ErrInvalidInput)
	}

	existing, err := s.aliases.GetByAlias(ctx, alias)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: alias %q", ErrConflict, alias)
	}

	record := &models.MerchantAlias{
		Alias:     alias,
		Canonical: canonical,
		CreatedAt: time.Now(),
	}
	if err := s.aliases.Create(ctx, record); err != nil {
		return nil, err
	}
	return toAliasResponse(record), nil
}

func (s *MerchantService) List(ctx context.Context) ([]*dto.MerchantAliasResponse, error) {
	aliases, err := s.aliases.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.MerchantAliasResponse, len(aliases))
	for i, a := range aliases {
		responses[i] = toAliasResponse(a)
	}
	return responses, nil
}

func (s *MerchantService) Update(ctx context.Context, id int64, req dto.MerchantAliasRequest) (*dto.MerchantAliasResponse, error) {
	record, err := s.aliases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	alias := strings.ToLower(strings.TrimSpace(req.Alias))
	canonical := strings.TrimSpace(req.Canonical)
	if alias == "" || canonical == "" {
		return nil, fmt.Errorf("%w: alias and canonical are both required", ErrInvalidInput)
	}

	if alias != record.Alias {
		existing, err := s.aliases.GetByAlias(ctx, alias)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: alias %q", ErrConflict, alias)
		}
	}

	record.Alias = alias
	record.Canonical = canonical
	if err := s.aliases.Update(ctx, record); err != nil {
		return nil, err
	}
	return toAliasResponse(record), nil
}

func (s *MerchantService) Delete(ctx context.Context, id int64) error {
	record, err := s.aliases.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	return s.aliases.Delete(ctx, id)
}
