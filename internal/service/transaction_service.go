package service

import (
	"context"
	"fmt"
	"time"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionService struct {
	transactions TransactionStore
	categories   CategoryStore
	logger       *zap.Logger
}

func NewTransactionService(transactions TransactionStore, categories CategoryStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		categories:   categories,
		logger:       logger,
	}
}

func toTransactionResponse(tx *models.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:                tx.ID.String(),
		ImportID:          tx.ImportID.String(),
		PostedDate:        tx.PostedDate,
		DescriptionRaw:    tx.DescriptionRaw,
		DescriptionNorm:   tx.DescriptionNorm,
		AmountCents:       tx.AmountCents,
		Currency:          tx.Currency,
		Merchant:          tx.Merchant,
		MerchantCanonical: tx.MerchantCanonical,
		CategoryID:        tx.CategoryID,
		CategorySource:    tx.CategorySource,
		CategoryRuleID:    tx.CategoryRuleID,
		TransactionType:   string(tx.TransactionType),
		Note:              tx.Note,
		CreatedAt:         tx.CreatedAt.Format(time.RFC3339),
	}
}

func (s *TransactionService) List(ctx context.Context, limit, offset int) ([]*dto.TransactionResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := s.transactions.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = toTransactionResponse(tx)
	}
	return responses, nil
}

func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrNotFound
	}
	return toTransactionResponse(tx), nil
}

// Patch applies manual edits: category assignment or clearing, note, and
// transaction type. A manual assignment records "manual" provenance and no
// rule reference.
func (s *TransactionService) Patch(ctx context.Context, id uuid.UUID, req dto.PatchTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrNotFound
	}

	switch {
	case req.ClearCategory:
		if err := s.transactions.UpdateCategory(ctx, id, nil, nil, nil); err != nil {
			return nil, err
		}
	case req.CategoryID != nil:
		category, err := s.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: category %d", ErrInvalidInput, *req.CategoryID)
		}
		source := models.CategorySourceManual
		if err := s.transactions.UpdateCategory(ctx, id, req.CategoryID, &source, nil); err != nil {
			return nil, err
		}
	}

	if req.Note != nil {
		if err := s.transactions.UpdateNote(ctx, id, req.Note); err != nil {
			return nil, err
		}
	}

	if req.TransactionType != nil {
		txType := models.TransactionType(*req.TransactionType)
		switch txType {
		case models.TypeNormal, models.TypeTransfer, models.TypePayment:
		default:
			return nil, fmt.Errorf("%w: transaction_type %q", ErrInvalidInput, *req.TransactionType)
		}
		if err := s.transactions.UpdateTransactionType(ctx, id, txType); err != nil {
			return nil, err
		}
	}

	updated, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(updated), nil
}
