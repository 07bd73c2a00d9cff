// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PerfumeTable represents the 'catalog.perfume' table.
// Comments live in a JSONB array column on the same row.
type PerfumeTable struct {
	Table          string
	ID             string
	Name           string
	URI            string
	Price          string
	Concentration  string
	Description    string
	Ingredients    string
	Volume         string
	TargetAudience string
	BrandID        string
	Comments       string
	CreatedAt      string
	UpdatedAt      string
}

// Perfume is the schema definition for catalog.perfume
var Perfume = PerfumeTable{
	Table:          "catalog.perfume",
	ID:             "id",
	Name:           "name",
	URI:            "uri",
	Price:          "price",
	Concentration:  "concentration",
	Description:    "description",
	Ingredients:    "ingredients",
	Volume:         "volume",
	TargetAudience: "targetaudience",
	BrandID:        "brandid",
	Comments:       "comments",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t PerfumeTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.URI, t.Price, t.Concentration, t.Description, t.Ingredients,
		t.Volume, t.TargetAudience, t.BrandID, t.Comments, t.CreatedAt, t.UpdatedAt,
	}
}
