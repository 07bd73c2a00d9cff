// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/perfumery":   "pgx5://u:p@db:5432/perfumery",
		"postgresql://u:p@db:5432/perfumery": "pgx5://u:p@db:5432/perfumery",
		"pgx5://u:p@db:5432/perfumery":       "pgx5://u:p@db:5432/perfumery",
		"host=db user=u dbname=perfumery":    "host=db user=u dbname=perfumery",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, convertToPgx5DSN(input), input)
	}
}
