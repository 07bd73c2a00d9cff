// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package brand manages the perfume houses referenced by the catalog.
// Brands are created, renamed and deleted by administrators only.
package brand

import "time"

// Brand is a perfume house. Names are unique, ignoring case.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the writable part of a brand.
type Input struct {
	Name string `json:"name"`
}

// Sort orders a brand listing.
type Sort string

const (
	SortName   Sort = "name"
	SortRecent Sort = "recent"
)

// Filter holds the parameters for a brand listing.
type Filter struct {
	Search string
	Sort   Sort
}

const (
	FieldName = "name"
	FieldSort = "sort"

	maxNameLength = 100
)
