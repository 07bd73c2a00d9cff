// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
)

// Constraint maps Postgres integrity violations to domain errors.
// A nil field leaves that class of violation to the generic Internal path.
type Constraint struct {
	// Unique is returned on SQLSTATE 23505.
	Unique *apperr.AppError
	// ForeignKey is returned on SQLSTATE 23503.
	ForeignKey *apperr.AppError
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Parameters
//   - err: The raw error returned by pgx.
//   - resource: Human name used in the 404 message ("Perfume", "Brand").
//   - constraint: Optional mapping of integrity violations.
func Wrap(err error, resource string, constraint ...Constraint) error {
	if err == nil {
		return nil
	}

	// 1. Errors already classified upstream pass through.
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 3. A malformed UUID can never match a row
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.InvalidTextRepresentation {
		return apperr.NotFound(resource)
	}

	// 4. Integrity violations
	if errors.As(err, &pgError) && len(constraint) > 0 {
		mapping := constraint[0]
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			if mapping.Unique != nil {
				return mapping.Unique
			}
		case pgerrcode.ForeignKeyViolation:
			if mapping.ForeignKey != nil {
				return mapping.ForeignKey
			}
		}
	}

	// 5. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", resource, err))
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
