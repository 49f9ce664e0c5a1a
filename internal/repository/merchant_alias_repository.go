package repository

import (
	"context"

	"ledgerbook/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MerchantAliasRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMerchantAliasRepository(db *pgxpool.Pool, logger *zap.Logger) *MerchantAliasRepository {
	return &MerchantAliasRepository{
		db:     db,
		logger: logger,
	}
}

var aliasColumns = []string{"id", "alias", "canonical", "created_at"}

func scanAlias(row pgx.Row) (*models.MerchantAlias, error) {
	var a models.MerchantAlias
	if err := row.Scan(&a.ID, &a.Alias, &a.Canonical, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *MerchantAliasRepository) Create(ctx context.Context, alias *models.MerchantAlias) error {
	query := squirrel.Insert("merchant_aliases").
		Columns("alias", "canonical", "created_at").
		Values(alias.Alias, alias.Canonical, alias.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&alias.ID)
}

func (r *MerchantAliasRepository) List(ctx context.Context) ([]*models.MerchantAlias, error) {
	query := squirrel.Select(aliasColumns...).
		From("merchant_aliases").
		OrderBy("alias ASC").
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

	var aliases []*models.MerchantAlias
	for rows.Next() {
		a, err := scanAlias(rows)
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}

	return aliases, rows.Err()
}

func (r *MerchantAliasRepository) GetByID(ctx context.Context, id int64) (*models.MerchantAlias, error) {
	query := squirrel.Select(aliasColumns...).
		From("merchant_aliases").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanAlias(r.db.QueryRow(ctx, sql, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *MerchantAliasRepository) GetByAlias(ctx context.Context, alias string) (*models.MerchantAlias, error) {
	query := squirrel.Select(aliasColumns...).
		From("merchant_aliases").
		Where(squirrel.Eq{"alias": alias}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanAlias(r.db.QueryRow(ctx, sql, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *MerchantAliasRepository) Update(ctx context.Context, alias *models.MerchantAlias) error {
	query := squirrel.Update("merchant_aliases").
		Set("alias", alias.Alias).
		Set("canonical", alias.Canonical).
		Where(squirrel.Eq{"id": alias.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *MerchantAliasRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("merchant_aliases").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
