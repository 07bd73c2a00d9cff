// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"fmt"
	"strings"
)

// # Statement Builders
//
// Placeholders are numbered from the column list, so a statement can never
// carry more columns than parameters or the other way round.

// Placeholders returns "$from, $from+1, ..." for count parameters.
func Placeholders(from, count int) string {
	params := make([]string, count)
	for i := range params {
		params[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(params, ", ")
}

// Insert returns an INSERT of every column, bound to $1..$n in order.
func Insert(table string, columns ...string) string {
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(columns, ", "), Placeholders(1, len(columns)))
}

// Update returns an UPDATE keyed on $1 that sets columns to $2..$n+1 in order.
func Update(table, key string, columns ...string) string {
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}
	return fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`,
		table, strings.Join(assignments, ", "), key)
}

// # Search

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user text into an ILIKE substring pattern with the
// wildcards escaped. Pair it with [ILike].
func ContainsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// ILike returns a case-insensitive match of column against parameter $n.
func ILike(column string, n int) string {
	return fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, column, n)
}
