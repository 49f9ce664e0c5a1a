package service

import (
	"context"

	"ledgerbook/internal/models"

	"github.com/google/uuid"
)

// Store interfaces are defined on the consumer side so services can be
// exercised against in-memory fakes. The repository types satisfy them.

type ImportStore interface {
	CreateWithTransactions(ctx context.Context, batch *models.ImportBatch, transactions []*models.Transaction) error
	GetByFileHash(ctx context.Context, fileHash string) (*models.ImportBatch, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ImportBatch, error)
	List(ctx context.Context) ([]*models.ImportBatch, error)
	CountTransactions(ctx context.Context, importID uuid.UUID) (int, error)
	UpdateAccountMeta(ctx context.Context, id uuid.UUID, accountLabel, accountType, notes *string) error
}

type TransactionStore interface {
	ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error)
	ListByImport(ctx context.Context, importID uuid.UUID) ([]*models.Transaction, error)
	ListAll(ctx context.Context) ([]*models.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*models.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, categoryID *int64, source *string, ruleID *int64) error
	UpdateNote(ctx context.Context, id uuid.UUID, note *string) error
	UpdateTransactionType(ctx context.Context, id uuid.UUID, transactionType models.TransactionType) error
	UpdateCanonicalMerchant(ctx context.Context, id uuid.UUID, canonical *string) error
}

type RuleStore interface {
	Create(ctx context.Context, rule *models.Rule) error
	List(ctx context.Context) ([]*models.Rule, error)
	ListActive(ctx context.Context) ([]*models.Rule, error)
	GetByID(ctx context.Context, id int64) (*models.Rule, error)
	Update(ctx context.Context, rule *models.Rule) error
	Delete(ctx context.Context, id int64) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

type AliasStore interface {
	Create(ctx context.Context, alias *models.MerchantAlias) error
	List(ctx context.Context) ([]*models.MerchantAlias, error)
	GetByID(ctx context.Context, id int64) (*models.MerchantAlias, error)
	GetByAlias(ctx context.Context, alias string) (*models.MerchantAlias, error)
	Update(ctx context.Context, alias *models.MerchantAlias) error
	Delete(ctx context.Context, id int64) error
}
