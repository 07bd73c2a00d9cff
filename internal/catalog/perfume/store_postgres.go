// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perfume

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/database/schema"
	"github.com/taibuivan/perfumery/internal/platform/dberr"
)

const resourceName = "Perfume"

// ErrUnknownBrand is returned when a perfume points at a brand that does not exist.
var ErrUnknownBrand = apperr.ValidationError("Brand does not exist",
	apperr.FieldError{Field: FieldBrandID, Message: "Must reference an existing brand"})

var brandConstraint = dberr.Constraint{ForeignKey: ErrUnknownBrand}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres perfume store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Query Building

var selectFrom = func() string {
	columns := schema.Perfume.Columns()
	for i, column := range columns {
		columns[i] = "p." + column
	}
	return fmt.Sprintf(`SELECT %s, b.%s FROM %s p JOIN %s b ON b.%s = p.%s`,
		strings.Join(columns, ", "), schema.Brand.Name,
		schema.Perfume.Table, schema.Brand.Table, schema.Brand.ID, schema.Perfume.BrandID)
}()

func scanPerfume(row pgx.Row) (*Perfume, error) {
	perfume := &Perfume{}
	var comments []byte

	err := row.Scan(
		&perfume.ID, &perfume.Name, &perfume.URI, &perfume.Price, &perfume.Concentration,
		&perfume.Description, &perfume.Ingredients, &perfume.Volume, &perfume.TargetAudience,
		&perfume.BrandID, &comments, &perfume.CreatedAt, &perfume.UpdatedAt, &perfume.BrandName,
	)
	if err != nil {
		return nil, err
	}

	perfume.Comments = Comments{}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &perfume.Comments); err != nil {
			return nil, fmt.Errorf("decode comments of perfume %s: %w", perfume.ID, err)
		}
	}
	return perfume, nil
}

func collect(rows pgx.Rows) ([]*Perfume, error) {
	defer rows.Close()

	perfumes := make([]*Perfume, 0)
	for rows.Next() {
		perfume, err := scanPerfume(rows)
		if err != nil {
			return nil, err
		}
		perfumes = append(perfumes, perfume)
	}
	return perfumes, rows.Err()
}

// insertPerfume binds every column of [schema.PerfumeTable.Columns] in order.
var insertPerfume = schema.Insert(schema.Perfume.Table, schema.Perfume.Columns()...)

// updatePerfume rewrites the catalog fields. Comments are owned by MutateComments.
var updatePerfume = schema.Update(schema.Perfume.Table, schema.Perfume.ID,
	schema.Perfume.Name, schema.Perfume.URI, schema.Perfume.Price, schema.Perfume.Concentration,
	schema.Perfume.Description, schema.Perfume.Ingredients, schema.Perfume.Volume,
	schema.Perfume.TargetAudience, schema.Perfume.BrandID, schema.Perfume.UpdatedAt,
)

func insertArgs(perfume *Perfume, comments []byte) []any {
	return []any{
		perfume.ID, perfume.Name, perfume.URI, perfume.Price, string(perfume.Concentration),
		perfume.Description, perfume.Ingredients, perfume.Volume, string(perfume.TargetAudience),
		perfume.BrandID, string(comments), perfume.CreatedAt, perfume.UpdatedAt,
	}
}

func updateArgs(perfume *Perfume) []any {
	return []any{
		perfume.ID, perfume.Name, perfume.URI, perfume.Price, string(perfume.Concentration),
		perfume.Description, perfume.Ingredients, perfume.Volume, string(perfume.TargetAudience),
		perfume.BrandID, perfume.UpdatedAt,
	}
}

var updateComments = schema.Update(schema.Perfume.Table, schema.Perfume.ID, schema.Perfume.Comments)

// filterClause builds the WHERE clause and its arguments, numbered from $1.
func filterClause(filter Filter) (string, []any) {
	conditions := []string{}
	args := []any{}

	add := func(condition func(n int) string, value any) {
		args = append(args, value)
		conditions = append(conditions, condition(len(args)))
	}
	equals := func(column string) func(int) string {
		return func(n int) string { return fmt.Sprintf(`p.%s = $%d`, column, n) }
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		add(func(n int) string { return schema.ILike("p."+schema.Perfume.Name, n) }, schema.ContainsPattern(search))
	}
	if filter.BrandID != "" {
		add(equals(schema.Perfume.BrandID+"::text"), filter.BrandID)
	}
	if filter.TargetAudience != "" {
		add(equals(schema.Perfume.TargetAudience), string(filter.TargetAudience))
	}
	if filter.Concentration != "" {
		add(equals(schema.Perfume.Concentration), string(filter.Concentration))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderBy(sort Sort) string {
	switch sort {
	case SortName:
		return fmt.Sprintf(`lower(p.%s) ASC`, schema.Perfume.Name)
	case SortPriceAsc:
		return fmt.Sprintf(`p.%s ASC, p.%s DESC`, schema.Perfume.Price, schema.Perfume.CreatedAt)
	case SortPriceDesc:
		return fmt.Sprintf(`p.%s DESC, p.%s DESC`, schema.Perfume.Price, schema.Perfume.CreatedAt)
	default:
		return fmt.Sprintf(`p.%s DESC`, schema.Perfume.CreatedAt)
	}
}

// # Catalog

/*
List returns one page of perfumes matching filter and the total match count.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Perfume, int, error) {
	where, args := filterClause(filter)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s p%s`, schema.Perfume.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	query := fmt.Sprintf(`%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectFrom, where, orderBy(filter.Sort), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	perfumes, err := collect(rows)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	return perfumes, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Perfume, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1`, selectFrom, schema.Perfume.ID)

	perfume, err := scanPerfume(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return perfume, nil
}

/*
Create inserts a new perfume. A nil comment list is stored as an empty array.

Returns:
  - error: ErrUnknownBrand when BrandID references no brand
*/
func (repository *PostgresRepository) Create(context context.Context, perfume *Perfume) error {
	document, err := json.Marshal(perfume.Comments.orEmpty())
	if err != nil {
		return apperr.Internal(err)
	}

	_, err = repository.pool.Exec(context, insertPerfume, insertArgs(perfume, document)...)
	return dberr.Wrap(err, resourceName, brandConstraint)
}

func (repository *PostgresRepository) Update(context context.Context, perfume *Perfume) error {
	tag, err := repository.pool.Exec(context, updatePerfume, updateArgs(perfume)...)
	if err != nil {
		return dberr.Wrap(err, resourceName, brandConstraint)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Perfume.Table, schema.Perfume.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

// # Comments

/*
MutateComments serializes comment changes on one perfume.

The row is read with SELECT ... FOR UPDATE inside a transaction, so two
members adding a comment at the same time are applied one after the other
and the one-comment-per-author rule holds.
*/
func (repository *PostgresRepository) MutateComments(context context.Context, id string, mutate func(*Perfume) error) (*Perfume, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer func() { _ = tx.Rollback(context) }()

	query := fmt.Sprintf(`%s WHERE p.%s = $1 FOR UPDATE OF p`, selectFrom, schema.Perfume.ID)

	perfume, err := scanPerfume(tx.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	if err := mutate(perfume); err != nil {
		return nil, err
	}

	document, err := json.Marshal(perfume.Comments.orEmpty())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if _, err := tx.Exec(context, updateComments, id, string(document)); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return perfume, nil
}

func (repository *PostgresRepository) ListCommentedBy(context context.Context, memberID string) ([]*Perfume, error) {
	containment, err := json.Marshal([]map[string]string{{"author_id": memberID}})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Containment is served by the GIN index on the comments column.
	query := fmt.Sprintf(`%s WHERE p.%s @> $1::jsonb ORDER BY p.%s DESC`,
		selectFrom, schema.Perfume.Comments, schema.Perfume.CreatedAt)

	rows, err := repository.pool.Query(context, query, string(containment))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	perfumes, err := collect(rows)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return perfumes, nil
}
