// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package perfume implements the product catalog and the member reviews attached to it.

Each perfume belongs to exactly one brand and owns an ordered list of comments.
Comments are stored inside the perfume record, so they share its lifetime.

Rules enforced here:

  - A member may comment on a perfume at most once.
  - Only the author may edit or delete a comment. Administrators are not exempt.
*/
package perfume

import (
	"strings"
	"time"

	"github.com/taibuivan/perfumery/internal/platform/validate"
	"github.com/taibuivan/perfumery/pkg/pointer"
	"github.com/taibuivan/perfumery/pkg/slice"
)

// # Enumerations

// Concentration is the fragrance oil strength.
type Concentration string

const (
	ConcentrationExtrait    Concentration = "Extrait"
	ConcentrationEDP        Concentration = "EDP"
	ConcentrationEDT        Concentration = "EDT"
	ConcentrationEDC        Concentration = "EDC"
	ConcentrationEauFraiche Concentration = "Eau Fraiche"
)

// Concentrations lists every accepted concentration, strongest first.
var Concentrations = []Concentration{
	ConcentrationExtrait, ConcentrationEDP, ConcentrationEDT, ConcentrationEDC, ConcentrationEauFraiche,
}

// TargetAudience is who a perfume is marketed to.
type TargetAudience string

const (
	AudienceMale   TargetAudience = "male"
	AudienceFemale TargetAudience = "female"
	AudienceUnisex TargetAudience = "unisex"
)

// Audiences lists every accepted target audience.
var Audiences = []TargetAudience{AudienceMale, AudienceFemale, AudienceUnisex}

// Sort orders a perfume listing.
type Sort string

const (
	SortRecent    Sort = "recent"
	SortName      Sort = "name"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// # Entities

// Perfume is a catalog product.
type Perfume struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	URI            string         `json:"uri"`
	Price          float64        `json:"price"`
	Concentration  Concentration  `json:"concentration"`
	Description    string         `json:"description"`
	Ingredients    string         `json:"ingredients"`
	Volume         float64        `json:"volume"`
	TargetAudience TargetAudience `json:"target_audience"`
	BrandID        string         `json:"brand_id"`
	BrandName      string         `json:"brand_name,omitempty"`
	Comments       Comments       `json:"comments"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Rating summarizes the comment ratings of a perfume.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Rating computes the mean rating over all comments.
func (perfume *Perfume) Rating() Rating {
	if len(perfume.Comments) == 0 {
		return Rating{}
	}

	total := slice.Reduce(perfume.Comments, 0, func(sum int, comment Comment) int { return sum + comment.Rating })
	return Rating{Average: float64(total) / float64(len(perfume.Comments)), Count: len(perfume.Comments)}
}

// Input is the writable part of a perfume, used on create.
type Input struct {
	Name           string         `json:"name"`
	URI            string         `json:"uri"`
	Price          float64        `json:"price"`
	Concentration  Concentration  `json:"concentration"`
	Description    string         `json:"description"`
	Ingredients    string         `json:"ingredients"`
	Volume         float64        `json:"volume"`
	TargetAudience TargetAudience `json:"target_audience"`
	BrandID        string         `json:"brand_id"`
}

// Patch returns a patch that replaces every writable field with input's.
func (input Input) Patch() Patch {
	return Patch{
		Name:           pointer.To(input.Name),
		URI:            pointer.To(input.URI),
		Price:          pointer.To(input.Price),
		Concentration:  pointer.To(input.Concentration),
		Description:    pointer.To(input.Description),
		Ingredients:    pointer.To(input.Ingredients),
		Volume:         pointer.To(input.Volume),
		TargetAudience: pointer.To(input.TargetAudience),
		BrandID:        pointer.To(input.BrandID),
	}
}

// InputOf returns the writable fields of perfume.
func InputOf(perfume *Perfume) Input {
	return Input{
		Name:           perfume.Name,
		URI:            perfume.URI,
		Price:          perfume.Price,
		Concentration:  perfume.Concentration,
		Description:    perfume.Description,
		Ingredients:    perfume.Ingredients,
		Volume:         perfume.Volume,
		TargetAudience: perfume.TargetAudience,
		BrandID:        perfume.BrandID,
	}
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name           *string         `json:"name"`
	URI            *string         `json:"uri"`
	Price          *float64        `json:"price"`
	Concentration  *Concentration  `json:"concentration"`
	Description    *string         `json:"description"`
	Ingredients    *string         `json:"ingredients"`
	Volume         *float64        `json:"volume"`
	TargetAudience *TargetAudience `json:"target_audience"`
	BrandID        *string         `json:"brand_id"`
}

// Apply copies the supplied fields onto perfume.
func (patch Patch) Apply(perfume *Perfume) {
	pointer.Assign(&perfume.Name, patch.Name)
	pointer.Assign(&perfume.URI, patch.URI)
	pointer.Assign(&perfume.Price, patch.Price)
	pointer.Assign(&perfume.Concentration, patch.Concentration)
	pointer.Assign(&perfume.Description, patch.Description)
	pointer.Assign(&perfume.Ingredients, patch.Ingredients)
	pointer.Assign(&perfume.Volume, patch.Volume)
	pointer.Assign(&perfume.TargetAudience, patch.TargetAudience)
	pointer.Assign(&perfume.BrandID, patch.BrandID)
}

// Filter holds the parameters for a perfume listing.
type Filter struct {
	Search         string
	BrandID        string
	TargetAudience TargetAudience
	Concentration  Concentration
	Sort           Sort
}

// # Validation

const (
	FieldName           = "name"
	FieldURI            = "uri"
	FieldPrice          = "price"
	FieldConcentration  = "concentration"
	FieldDescription    = "description"
	FieldIngredients    = "ingredients"
	FieldVolume         = "volume"
	FieldTargetAudience = "target_audience"
	FieldBrandID        = "brand_id"
	FieldSort           = "sort"
	FieldRating         = "rating"
	FieldContent        = "content"

	maxNameLength    = 200
	maxContentLength = 2000
	MinRating        = 1
	MaxRating        = 5
)

func concentrationValues() []string {
	values := make([]string, len(Concentrations))
	for i, concentration := range Concentrations {
		values[i] = string(concentration)
	}
	return values
}

func audienceValues() []string {
	values := make([]string, len(Audiences))
	for i, audience := range Audiences {
		values[i] = string(audience)
	}
	return values
}

// validatePerfume checks a fully populated perfume after trimming its text fields.
func validatePerfume(perfume *Perfume) error {
	perfume.Name = strings.TrimSpace(perfume.Name)
	perfume.URI = strings.TrimSpace(perfume.URI)
	perfume.Description = strings.TrimSpace(perfume.Description)
	perfume.Ingredients = strings.TrimSpace(perfume.Ingredients)
	perfume.BrandID = strings.TrimSpace(perfume.BrandID)

	validator := &validate.Validator{}
	validator.
		Required(FieldName, perfume.Name).
		MaxLen(FieldName, perfume.Name, maxNameLength).
		Required(FieldURI, perfume.URI).
		NonNegative(FieldPrice, perfume.Price).
		OneOf(FieldConcentration, string(perfume.Concentration), concentrationValues()...).
		Required(FieldDescription, perfume.Description).
		Required(FieldIngredients, perfume.Ingredients).
		NonNegative(FieldVolume, perfume.Volume).
		OneOf(FieldTargetAudience, string(perfume.TargetAudience), audienceValues()...).
		Required(FieldBrandID, perfume.BrandID)

	if perfume.URI != "" {
		validator.URL(FieldURI, perfume.URI)
	}
	return validator.Err()
}

func validateFilter(filter Filter) error {
	validator := &validate.Validator{}
	if filter.Sort != "" {
		validator.OneOf(FieldSort, string(filter.Sort),
			string(SortRecent), string(SortName), string(SortPriceAsc), string(SortPriceDesc))
	}
	if filter.Concentration != "" {
		validator.OneOf(FieldConcentration, string(filter.Concentration), concentrationValues()...)
	}
	if filter.TargetAudience != "" {
		validator.OneOf(FieldTargetAudience, string(filter.TargetAudience), audienceValues()...)
	}
	return validator.Err()
}
