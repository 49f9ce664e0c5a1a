package service

import (
	"context"
	"strings"

	"ledgerbook/internal/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CanonicalizerService resolves raw merchant strings to their canonical
// names through the alias table.
type CanonicalizerService struct {
	aliases      AliasStore
	transactions TransactionStore
	logger       *zap.Logger
}

func NewCanonicalizerService(aliases AliasStore, transactions TransactionStore, logger *zap.Logger) *CanonicalizerService {
	return &CanonicalizerService{
		aliases:      aliases,
		transactions: transactions,
		logger:       logger,
	}
}

// Canonical looks up the canonical name for a merchant; a merchant without
// an alias maps to itself.
func Canonical(merchant string, aliasMap map[string]string) string {
	if canonical, ok := aliasMap[strings.ToLower(strings.TrimSpace(merchant))]; ok {
		return canonical
	}
	return merchant
}

func (s *CanonicalizerService) buildAliasMap(ctx context.Context) (map[string]string, error) {
	aliases, err := s.aliases.List(ctx)
	if err != nil {
		return nil, err
	}
	aliasMap := make(map[string]string, len(aliases))
	for _, a := range aliases {
		aliasMap[strings.ToLower(a.Alias)] = a.Canonical
	}
	return aliasMap, nil
}

// ApplyToImport sets merchant_canonical on every row of one batch.
func (s *CanonicalizerService) ApplyToImport(ctx context.Context, importID uuid.UUID) error {
	aliasMap, err := s.buildAliasMap(ctx)
	if err != nil {
		return err
	}

	transactions, err := s.transactions.ListByImport(ctx, importID)
	if err != nil {
		return err
	}

	for _, tx := range transactions {
		var canonical *string
		if tx.Merchant != nil {
			c := Canonical(*tx.Merchant, aliasMap)
			canonical = &c
		}
		if strPtrEqual(tx.MerchantCanonical, canonical) {
			continue
		}
		if err := s.transactions.UpdateCanonicalMerchant(ctx, tx.ID, canonical); err != nil {
			return err
		}
		tx.MerchantCanonical = canonical
	}
	return nil
}

// RebuildAll recomputes merchant_canonical for every transaction, writing
// only the rows that actually change. Run after alias edits.
func (s *CanonicalizerService) RebuildAll(ctx context.Context) (*dto.RebuildResponse, error) {
	aliasMap, err := s.buildAliasMap(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	updated := 0
	for _, tx := range transactions {
		var canonical *string
		if tx.Merchant != nil {
			c := Canonical(*tx.Merchant, aliasMap)
			canonical = &c
		}
		if strPtrEqual(tx.MerchantCanonical, canonical) {
			continue
		}
		if err := s.transactions.UpdateCanonicalMerchant(ctx, tx.ID, canonical); err != nil {
			return nil, err
		}
		tx.MerchantCanonical = canonical
		updated++
	}

	s.logger.Info("rebuilt canonical merchants",
		zap.Int("updated", updated),
		zap.Int("total", len(transactions)),
	)
	return &dto.RebuildResponse{Updated: updated, Total: len(transactions)}, nil
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
