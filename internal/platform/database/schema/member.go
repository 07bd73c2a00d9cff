// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns used by the Postgres stores,
// so queries are assembled from one source of truth.
package schema

// MemberTable represents the 'catalog.member' table
type MemberTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	Name      string
	YOB       string
	Gender    string
	IsAdmin   string
	CreatedAt string
	UpdatedAt string
}

// Member is the schema definition for catalog.member
var Member = MemberTable{
	Table:     "catalog.member",
	ID:        "id",
	Email:     "email",
	Password:  "passwordhash",
	Name:      "name",
	YOB:       "yob",
	Gender:    "gender",
	IsAdmin:   "isadmin",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns every column except the password hash.
func (t MemberTable) Columns() []string {
	return []string{t.ID, t.Email, t.Name, t.YOB, t.Gender, t.IsAdmin, t.CreatedAt, t.UpdatedAt}
}
