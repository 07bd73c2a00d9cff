// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/database/schema"
	"github.com/taibuivan/perfumery/internal/platform/dberr"
)

const resourceName = "Brand"

var brandConstraint = dberr.Constraint{
	Unique:     apperr.ErrBrandNameTaken,
	ForeignKey: apperr.ErrBrandInUse,
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres brand store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Query Building

var selectBrands = fmt.Sprintf(`SELECT %s FROM %s`,
	strings.Join(schema.Brand.Columns(), ", "), schema.Brand.Table)

var insertBrand = schema.Insert(schema.Brand.Table, schema.Brand.Columns()...)

var updateBrand = schema.Update(schema.Brand.Table, schema.Brand.ID, schema.Brand.Name, schema.Brand.UpdatedAt) +
	" RETURNING " + schema.Brand.CreatedAt

func insertArgs(brand *Brand) []any {
	return []any{brand.ID, brand.Name, brand.CreatedAt, brand.UpdatedAt}
}

func updateArgs(brand *Brand) []any {
	return []any{brand.ID, brand.Name, brand.UpdatedAt}
}

// listQuery builds the listing statement and its arguments.
func listQuery(filter Filter) (string, []any) {
	query := selectBrands
	args := []any{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, schema.ContainsPattern(search))
		query += " WHERE " + schema.ILike(schema.Brand.Name, len(args))
	}

	if filter.Sort == SortRecent {
		query += fmt.Sprintf(` ORDER BY %s DESC`, schema.Brand.CreatedAt)
	} else {
		query += fmt.Sprintf(` ORDER BY lower(%s) ASC`, schema.Brand.Name)
	}
	return query, args
}

// # Catalog

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Brand, error) {
	query, args := listQuery(filter)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	brands := make([]*Brand, 0)
	for rows.Next() {
		brand := &Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		brands = append(brands, brand)
	}

	return brands, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Brand, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, selectBrands, schema.Brand.ID)

	brand := &Brand{}
	err := repository.pool.QueryRow(context, query, id).Scan(&brand.ID, &brand.Name, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return brand, nil
}

func (repository *PostgresRepository) Create(context context.Context, brand *Brand) error {
	_, err := repository.pool.Exec(context, insertBrand, insertArgs(brand)...)
	return dberr.Wrap(err, resourceName, brandConstraint)
}

func (repository *PostgresRepository) Update(context context.Context, brand *Brand) error {
	err := repository.pool.QueryRow(context, updateBrand, updateArgs(brand)...).Scan(&brand.CreatedAt)
	return dberr.Wrap(err, resourceName, brandConstraint)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Brand.Table, schema.Brand.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName, brandConstraint)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}
