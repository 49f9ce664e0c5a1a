package service

import (
	"context"
	"sort"

	"ledgerbook/internal/models"

	"github.com/google/uuid"
)

// In-memory store fakes backing the service tests.

type fakeImportStore struct {
	batches      map[uuid.UUID]*models.ImportBatch
	transactions *fakeTransactionStore
}

func newFakeImportStore(transactions *fakeTransactionStore) *fakeImportStore {
	return &fakeImportStore{
		batches:      make(map[uuid.UUID]*models.ImportBatch),
		transactions: transactions,
	}
}

func (f *fakeImportStore) CreateWithTransactions(_ context.Context, batch *models.ImportBatch, transactions []*models.Transaction) error {
	f.batches[batch.ID] = batch
	for _, tx := range transactions {
		f.transactions.rows[tx.ID] = tx
	}
	return nil
}

func (f *fakeImportStore) GetByFileHash(_ context.Context, fileHash string) (*models.ImportBatch, error) {
	for _, b := range f.batches {
		if b.FileHash == fileHash {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeImportStore) GetByID(_ context.Context, id uuid.UUID) (*models.ImportBatch, error) {
	return f.batches[id], nil
}

func (f *fakeImportStore) List(_ context.Context) ([]*models.ImportBatch, error) {
	var batches []*models.ImportBatch
	for _, b := range f.batches {
		batches = append(batches, b)
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].CreatedAt.After(batches[j].CreatedAt) })
	return batches, nil
}

func (f *fakeImportStore) CountTransactions(_ context.Context, importID uuid.UUID) (int, error) {
	count := 0
	for _, tx := range f.transactions.rows {
		if tx.ImportID == importID {
			count++
		}
	}
	return count, nil
}

func (f *fakeImportStore) UpdateAccountMeta(_ context.Context, id uuid.UUID, accountLabel, accountType, notes *string) error {
	batch, ok := f.batches[id]
	if !ok {
		return nil
	}
	if accountLabel != nil {
		batch.AccountLabel = accountLabel
	}
	if accountType != nil {
		batch.AccountType = accountType
	}
	if notes != nil {
		batch.Notes = notes
	}
	return nil
}

type fakeTransactionStore struct {
	rows map[uuid.UUID]*models.Transaction
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{rows: make(map[uuid.UUID]*models.Transaction)}
}

func (f *fakeTransactionStore) ExistsByFingerprint(_ context.Context, fingerprint string) (bool, error) {
	for _, tx := range f.rows {
		if tx.FingerprintHash == fingerprint {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTransactionStore) sorted() []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range f.rows {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PostedDate != out[j].PostedDate {
			return out[i].PostedDate > out[j].PostedDate
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (f *fakeTransactionStore) ListByImport(_ context.Context, importID uuid.UUID) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range f.sorted() {
		if tx.ImportID == importID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) ListAll(_ context.Context) ([]*models.Transaction, error) {
	return f.sorted(), nil
}

func (f *fakeTransactionStore) List(_ context.Context, limit, offset int) ([]*models.Transaction, error) {
	all := f.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeTransactionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	return f.rows[id], nil
}

func (f *fakeTransactionStore) UpdateCategory(_ context.Context, id uuid.UUID, categoryID *int64, source *string, ruleID *int64) error {
	if tx, ok := f.rows[id]; ok {
		tx.CategoryID = categoryID
		tx.CategorySource = source
		tx.CategoryRuleID = ruleID
	}
	return nil
}

func (f *fakeTransactionStore) UpdateNote(_ context.Context, id uuid.UUID, note *string) error {
	if tx, ok := f.rows[id]; ok {
		tx.Note = note
	}
	return nil
}

func (f *fakeTransactionStore) UpdateTransactionType(_ context.Context, id uuid.UUID, transactionType models.TransactionType) error {
	if tx, ok := f.rows[id]; ok {
		tx.TransactionType = transactionType
	}
	return nil
}

func (f *fakeTransactionStore) UpdateCanonicalMerchant(_ context.Context, id uuid.UUID, canonical *string) error {
	if tx, ok := f.rows[id]; ok {
		tx.MerchantCanonical = canonical
	}
	return nil
}

type fakeRuleStore struct {
	rules  map[int64]*models.Rule
	nextID int64
}

func newFakeRuleStore() *fakeRuleStore {
	return &fakeRuleStore{rules: make(map[int64]*models.Rule), nextID: 1}
}

func (f *fakeRuleStore) Create(_ context.Context, rule *models.Rule) error {
	rule.ID = f.nextID
	f.nextID++
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleStore) ordered(activeOnly bool) []*models.Rule {
	var out []*models.Rule
	for _, r := range f.rules {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeRuleStore) List(_ context.Context) ([]*models.Rule, error) {
	return f.ordered(false), nil
}

func (f *fakeRuleStore) ListActive(_ context.Context) ([]*models.Rule, error) {
	return f.ordered(true), nil
}

func (f *fakeRuleStore) GetByID(_ context.Context, id int64) (*models.Rule, error) {
	return f.rules[id], nil
}

func (f *fakeRuleStore) Update(_ context.Context, rule *models.Rule) error {
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleStore) Delete(_ context.Context, id int64) error {
	delete(f.rules, id)
	return nil
}

type fakeCategoryStore struct {
	categories map[int64]*models.Category
	nextID     int64
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[int64]*models.Category), nextID: 1}
}

func (f *fakeCategoryStore) Create(_ context.Context, category *models.Category) error {
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) List(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id int64) (*models.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryStore) GetByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, category *models.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

type fakeAliasStore struct {
	aliases map[int64]*models.MerchantAlias
	nextID  int64
}

func newFakeAliasStore() *fakeAliasStore {
	return &fakeAliasStore{aliases: make(map[int64]*models.MerchantAlias), nextID: 1}
}

func (f *fakeAliasStore) Create(_ context.Context, alias *models.MerchantAlias) error {
	alias.ID = f.nextID
	f.nextID++
	f.aliases[alias.ID] = alias
	return nil
}

func (f *fakeAliasStore) List(_ context.Context) ([]*models.MerchantAlias, error) {
	var out []*models.MerchantAlias
	for _, a := range f.aliases {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out, nil
}

func (f *fakeAliasStore) GetByID(_ context.Context, id int64) (*models.MerchantAlias, error) {
	return f.aliases[id], nil
}

func (f *fakeAliasStore) GetByAlias(_ context.Context, alias string) (*models.MerchantAlias, error) {
	for _, a := range f.aliases {
		if a.Alias == alias {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAliasStore) Update(_ context.Context, alias *models.MerchantAlias) error {
	f.aliases[alias.ID] = alias
	return nil
}

func (f *fakeAliasStore) Delete(_ context.Context, id int64) error {
	delete(f.aliases, id)
	return nil
}
