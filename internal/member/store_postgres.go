// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/database/schema"
	"github.com/taibuivan/perfumery/internal/platform/dberr"
)

const resourceName = "Member"

var emailConstraint = dberr.Constraint{Unique: apperr.ErrEmailTaken}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation of the credential store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = strings.Join(schema.Member.Columns(), ", ")

var insertMember = schema.Insert(schema.Member.Table,
	schema.Member.ID, schema.Member.Email, schema.Member.Password, schema.Member.Name,
	schema.Member.YOB, schema.Member.Gender, schema.Member.IsAdmin,
	schema.Member.CreatedAt, schema.Member.UpdatedAt,
)

// updateProfile never touches the admin flag or the password hash.
var updateProfile = schema.Update(schema.Member.Table, schema.Member.ID,
	schema.Member.Email, schema.Member.Name, schema.Member.YOB, schema.Member.Gender, schema.Member.UpdatedAt,
)

func insertArgs(member *Member) []any {
	return []any{
		member.ID, member.Email, member.PasswordHash, member.Name,
		member.YOB, member.Gender, member.IsAdmin,
		member.CreatedAt, member.UpdatedAt,
	}
}

func updateProfileArgs(member *Member) []any {
	return []any{member.ID, member.Email, member.Name, member.YOB, member.Gender, member.UpdatedAt}
}

// filterClause builds the WHERE clause and its arguments, numbered from $1.
func filterClause(filter Filter) (string, []any) {
	conditions := []string{}
	args := []any{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, schema.ContainsPattern(search))
		conditions = append(conditions, fmt.Sprintf(`(%s OR %s)`,
			schema.ILike(schema.Member.Name, len(args)), schema.ILike(schema.Member.Email, len(args))))
	}
	if filter.AdminsOnly {
		conditions = append(conditions, schema.Member.IsAdmin)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanMember(row pgx.Row, member *Member, extra ...any) error {
	targets := append([]any{
		&member.ID, &member.Email, &member.Name, &member.YOB, &member.Gender,
		&member.IsAdmin, &member.CreatedAt, &member.UpdatedAt,
	}, extra...)
	return row.Scan(targets...)
}

/*
Create inserts a new member row.

Returns:
  - error: apperr.ErrEmailTaken on a unique violation
*/
func (repository *PostgresRepository) Create(context context.Context, member *Member) error {
	_, err := repository.pool.Exec(context, insertMember, insertArgs(member)...)
	return dberr.Wrap(err, resourceName, emailConstraint)
}

/*
FindByID retrieves a member without the password hash.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.Member.Table, schema.Member.ID)

	member := &Member{}
	if err := scanMember(repository.pool.QueryRow(context, query, id), member); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return member, nil
}

/*
FindByEmail retrieves a member and its password hash by normalized email.
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		selectColumns, schema.Member.Password, schema.Member.Table, schema.Member.Email)

	member := &Member{}
	if err := scanMember(repository.pool.QueryRow(context, query, email), member, &member.PasswordHash); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return member, nil
}

// FindByIDs loads several members in one round trip.
func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Member, error) {
	members := make([]*Member, 0, len(ids))
	if len(ids) == 0 {
		return members, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[])`,
		selectColumns, schema.Member.Table, schema.Member.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	for rows.Next() {
		member := &Member{}
		if err := scanMember(rows, member); err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		members = append(members, member)
	}

	return members, dberr.Wrap(rows.Err(), resourceName)
}

/*
UpdateProfile persists email, name, year of birth and gender.
The admin flag and password are never touched here.
*/
func (repository *PostgresRepository) UpdateProfile(context context.Context, member *Member) error {
	tag, err := repository.pool.Exec(context, updateProfile, updateProfileArgs(member)...)
	if err != nil {
		return dberr.Wrap(err, resourceName, emailConstraint)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

// UpdatePassword replaces the stored hash.
func (repository *PostgresRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.Member.Table, schema.Member.Password, schema.Member.UpdatedAt, schema.Member.ID)

	tag, err := repository.pool.Exec(context, query, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

/*
List returns a page of members, newest first, and the total match count.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Member, int, error) {
	where, args := filterClause(filter)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.Member.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s DESC LIMIT $%d OFFSET $%d`,
		selectColumns, schema.Member.Table, where, schema.Member.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	members := make([]*Member, 0)
	for rows.Next() {
		member := &Member{}
		if err := scanMember(rows, member); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		members = append(members, member)
	}

	return members, total, dberr.Wrap(rows.Err(), resourceName)
}
