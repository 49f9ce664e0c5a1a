package repository

import (
	"context"

	"ledgerbook/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RuleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRuleRepository(db *pgxpool.Pool, logger *zap.Logger) *RuleRepository {
	return &RuleRepository{
		db:     db,
		logger: logger,
	}
}

var ruleColumns = []string{"id", "pattern", "match_type", "category_id", "priority", "is_active", "created_at"}

func scanRule(row pgx.Row) (*models.Rule, error) {
	var rule models.Rule
	if err := row.Scan(
		&rule.ID, &rule.Pattern, &rule.MatchType, &rule.CategoryID, &rule.Priority, &rule.IsActive, &rule.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepository) Create(ctx context.Context, rule *models.Rule) error {
	query := squirrel.Insert("rules").
		Columns("pattern", "match_type", "category_id", "priority", "is_active", "created_at").
		Values(rule.Pattern, rule.MatchType, rule.CategoryID, rule.Priority, rule.IsActive, rule.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&rule.ID)
}

// ListActive returns enabled rules in evaluation order: priority descending,
// then id ascending so older rules win ties.
func (r *RuleRepository) ListActive(ctx context.Context) ([]*models.Rule, error) {
	query := squirrel.Select(ruleColumns...).
		From("rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("priority DESC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.collect(ctx, query)
}

func (r *RuleRepository) List(ctx context.Context) ([]*models.Rule, error) {
	query := squirrel.Select(ruleColumns...).
		From("rules").
		OrderBy("priority DESC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.collect(ctx, query)
}

func (r *RuleRepository) collect(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Rule, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*models.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *RuleRepository) GetByID(ctx context.Context, id int64) (*models.Rule, error) {
	query := squirrel.Select(ruleColumns...).
		From("rules").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rule, err := scanRule(r.db.QueryRow(ctx, sql, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *RuleRepository) Update(ctx context.Context, rule *models.Rule) error {
	query := squirrel.Update("rules").
		Set("pattern", rule.Pattern).
		Set("match_type", rule.MatchType).
		Set("category_id", rule.CategoryID).
		Set("priority", rule.Priority).
		Set("is_active", rule.IsActive).
		Where(squirrel.Eq{"id": rule.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RuleRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("rules").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
