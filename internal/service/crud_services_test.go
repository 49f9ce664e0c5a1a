package service

import (
	"context"
	"testing"
	"time"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRuleServiceValidation(t *testing.T) {
	ctx := context.Background()
	categories := newFakeCategoryStore()
	rules := newFakeRuleStore()
	svc := NewRuleService(rules, categories, zap.NewNop())

	require.NoError(t, categories.Create(ctx, &models.Category{Name: "Dining", CreatedAt: time.Now()}))

	tests := []struct {
		name string
		req  dto.RuleRequest
	}{
		{"empty pattern", dto.RuleRequest{MatchType: models.MatchContains, CategoryID: 1}},
		{"bad match type", dto.RuleRequest{Pattern: "x", MatchType: "fuzzy", CategoryID: 1}},
		{"invalid regex", dto.RuleRequest{Pattern: "([bad", MatchType: models.MatchRegex, CategoryID: 1}},
		{"unknown category", dto.RuleRequest{Pattern: "x", MatchType: models.MatchContains, CategoryID: 404}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	resp, err := svc.Create(ctx, dto.RuleRequest{
		Pattern:    "starbucks",
		MatchType:  models.MatchContains,
		CategoryID: 1,
		Priority:   70,
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dining", resp.CategoryName)
	assert.Equal(t, 70, resp.Priority)
}

func TestRuleServiceUpdateMissing(t *testing.T) {
	svc := NewRuleService(newFakeRuleStore(), newFakeCategoryStore(), zap.NewNop())

	_, err := svc.Update(context.Background(), 42, dto.RuleRequest{
		Pattern: "x", MatchType: models.MatchContains, CategoryID: 1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrNotFound)
}

func TestCategoryServiceDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newFakeCategoryStore(), zap.NewNop())

	first, err := svc.Create(ctx, dto.CategoryRequest{Name: "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, "#94a3b8", first.Color, "defaults applied when omitted")

	_, err = svc.Create(ctx, dto.CategoryRequest{Name: "Groceries"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMerchantServiceLowercasesAlias(t *testing.T) {
	ctx := context.Background()
	aliases := newFakeAliasStore()
	svc := NewMerchantService(aliases, zap.NewNop())

	resp, err := svc.Create(ctx, dto.MerchantAliasRequest{Alias: "  AMZN Mktp  ", Canonical: "Amazon"})
	require.NoError(t, err)
	assert.Equal(t, "amzn mktp", resp.Alias)

	_, err = svc.Create(ctx, dto.MerchantAliasRequest{Alias: "amzn mktp", Canonical: "Amazon"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, dto.MerchantAliasRequest{Alias: "", Canonical: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransactionServicePatch(t *testing.T) {
	ctx := context.Background()
	transactions := newFakeTransactionStore()
	categories := newFakeCategoryStore()
	svc := NewTransactionService(transactions, categories, zap.NewNop())

	require.NoError(t, categories.Create(ctx, &models.Category{Name: "Dining", CreatedAt: time.Now()}))
	tx := seedTransaction(transactions, uuid.New(), "philz coffee")

	catID := int64(1)
	resp, err := svc.Patch(ctx, tx.ID, dto.PatchTransactionRequest{CategoryID: &catID})
	require.NoError(t, err)
	require.NotNil(t, resp.CategoryID)
	assert.Equal(t, int64(1), *resp.CategoryID)
	require.NotNil(t, resp.CategorySource)
	assert.Equal(t, models.CategorySourceManual, *resp.CategorySource)
	assert.Nil(t, resp.CategoryRuleID, "manual assignment carries no rule reference")

	note := "split with roommate"
	txType := string(models.TypeTransfer)
	resp, err = svc.Patch(ctx, tx.ID, dto.PatchTransactionRequest{Note: &note, TransactionType: &txType})
	require.NoError(t, err)
	require.NotNil(t, resp.Note)
	assert.Equal(t, note, *resp.Note)
	assert.Equal(t, string(models.TypeTransfer), resp.TransactionType)

	resp, err = svc.Patch(ctx, tx.ID, dto.PatchTransactionRequest{ClearCategory: true})
	require.NoError(t, err)
	assert.Nil(t, resp.CategoryID)
	assert.Nil(t, resp.CategorySource)

	badType := "weird"
	_, err = svc.Patch(ctx, tx.ID, dto.PatchTransactionRequest{TransactionType: &badType})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badCat := int64(99)
	_, err = svc.Patch(ctx, tx.ID, dto.PatchTransactionRequest{CategoryID: &badCat})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Patch(ctx, uuid.New(), dto.PatchTransactionRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
