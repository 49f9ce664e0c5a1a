package repository

import (
	"context"
	"encoding/json"

	"ledgerbook/internal/mapping"
	"ledgerbook/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ImportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewImportRepository(db *pgxpool.Pool, logger *zap.Logger) *ImportRepository {
	return &ImportRepository{
		db:     db,
		logger: logger,
	}
}

var importColumns = []string{"id", "filename", "file_hash", "source_type", "column_mapping", "account_label", "account_type", "notes", "created_at"}

func marshalMapping(m *mapping.ColumnMapping) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func scanImport(row pgx.Row) (*models.ImportBatch, error) {
	var batch models.ImportBatch
	var mappingJSON []byte
	if err := row.Scan(
		&batch.ID, &batch.Filename, &batch.FileHash, &batch.SourceType, &mappingJSON,
		&batch.AccountLabel, &batch.AccountType, &batch.Notes, &batch.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(mappingJSON) > 0 {
		var cm mapping.ColumnMapping
		if err := json.Unmarshal(mappingJSON, &cm); err != nil {
			return nil, err
		}
		batch.ColumnMapping = &cm
	}
	return &batch, nil
}

func (r *ImportRepository) Create(ctx context.Context, batch *models.ImportBatch) error {
	mappingJSON, err := marshalMapping(batch.ColumnMapping)
	if err != nil {
		return err
	}

	query := squirrel.Insert("imports").
		Columns(importColumns...).
		Values(batch.ID, batch.Filename, batch.FileHash, batch.SourceType, mappingJSON,
			batch.AccountLabel, batch.AccountType, batch.Notes, batch.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// CreateWithTransactions inserts the import record and all of its rows in a
// single transaction, so a failed batch leaves nothing behind.
func (r *ImportRepository) CreateWithTransactions(ctx context.Context, batch *models.ImportBatch, transactions []*models.Transaction) error {
	mappingJSON, err := marshalMapping(batch.ColumnMapping)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertImport := squirrel.Insert("imports").
		Columns(importColumns...).
		Values(batch.ID, batch.Filename, batch.FileHash, batch.SourceType, mappingJSON,
			batch.AccountLabel, batch.AccountType, batch.Notes, batch.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := insertImport.ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(transactions) > 0 {
		builder := squirrel.Insert("transactions").
			Columns(transactionColumns...).
			PlaceholderFormat(squirrel.Dollar)
		for _, t := range transactions {
			builder = builder.Values(t.ID, t.ImportID, t.PostedDate, t.DescriptionRaw, t.DescriptionNorm,
				t.AmountCents, t.Currency, t.Merchant, t.MerchantCanonical, t.CategoryID, t.CategorySource,
				t.CategoryRuleID, t.FingerprintHash, t.TransactionType, t.Note, t.CreatedAt)
		}

		sql, args, err = builder.ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByFileHash returns (nil, nil) when no import with the hash exists.
func (r *ImportRepository) GetByFileHash(ctx context.Context, fileHash string) (*models.ImportBatch, error) {
	query := squirrel.Select(importColumns...).
		From("imports").
		Where(squirrel.Eq{"file_hash": fileHash}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	batch, err := scanImport(r.db.QueryRow(ctx, sql, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *ImportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ImportBatch, error) {
	query := squirrel.Select(importColumns...).
		From("imports").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	batch, err := scanImport(r.db.QueryRow(ctx, sql, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *ImportRepository) List(ctx context.Context) ([]*models.ImportBatch, error) {
	query := squirrel.Select(importColumns...).
		From("imports").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*models.ImportBatch
	for rows.Next() {
		batch, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}

func (r *ImportRepository) CountTransactions(ctx context.Context, importID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"import_id": importID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ImportRepository) UpdateAccountMeta(ctx context.Context, id uuid.UUID, accountLabel, accountType, notes *string) error {
	query := squirrel.Update("imports").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if accountLabel != nil {
		query = query.Set("account_label", *accountLabel)
	}
	if accountType != nil {
		query = query.Set("account_type", *accountType)
	}
	if notes != nil {
		query = query.Set("notes", *notes)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
