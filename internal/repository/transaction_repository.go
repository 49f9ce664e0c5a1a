package repository

import (
	"context"

	"ledgerbook/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

var transactionColumns = []string{
	"id", "import_id", "posted_date", "description_raw", "description_norm",
	"amount_cents", "currency", "merchant", "merchant_canonical", "category_id",
	"category_source", "category_rule_id", "fingerprint_hash", "transaction_type",
	"note", "created_at",
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	if err := row.Scan(
		&t.ID, &t.ImportID, &t.PostedDate, &t.DescriptionRaw, &t.DescriptionNorm,
		&t.AmountCents, &t.Currency, &t.Merchant, &t.MerchantCanonical, &t.CategoryID,
		&t.CategorySource, &t.CategoryRuleID, &t.FingerprintHash, &t.TransactionType,
		&t.Note, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	query := squirrel.Select("1").
		From("transactions").
		Where(squirrel.Eq{"fingerprint_hash": fingerprint}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *TransactionRepository) collect(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Transaction, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) ListByImport(ctx context.Context, importID uuid.UUID) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"import_id": importID}).
		OrderBy("posted_date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.collect(ctx, query)
}

func (r *TransactionRepository) ListAll(ctx context.Context) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		OrderBy("posted_date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.collect(ctx, query)
}

func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		OrderBy("posted_date DESC", "created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	return r.collect(ctx, query)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	t, err := scanTransaction(r.db.QueryRow(ctx, sql, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateCategory sets or clears categorization fields on a single transaction.
func (r *TransactionRepository) UpdateCategory(ctx context.Context, id uuid.UUID, categoryID *int64, source *string, ruleID *int64) error {
	query := squirrel.Update("transactions").
		Set("category_id", categoryID).
		Set("category_source", source).
		Set("category_rule_id", ruleID).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) UpdateNote(ctx context.Context, id uuid.UUID, note *string) error {
	query := squirrel.Update("transactions").
		Set("note", note).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) UpdateTransactionType(ctx context.Context, id uuid.UUID, transactionType models.TransactionType) error {
	query := squirrel.Update("transactions").
		Set("transaction_type", transactionType).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) UpdateCanonicalMerchant(ctx context.Context, id uuid.UUID, canonical *string) error {
	query := squirrel.Update("transactions").
		Set("merchant_canonical", canonical).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
