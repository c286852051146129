// Package domain defines the core types and interfaces for the recipe book.
// All other packages depend on domain; domain depends on nothing but uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is used when a recipe is created without a category.
const DefaultCategory = "Main Course"

// Rating bounds. Zero means unrated.
const (
	MinRating = 1
	MaxRating = 5
)

// Recipe represents a complete cooking recipe.
type Recipe struct {
	ID           string
	Name         string
	Ingredients  map[string]string // ingredient name -> free-text amount
	Instructions []string
	PrepTime     int // minutes
	CookTime     int // minutes
	Servings     int
	Category     string
	CreatedAt    time.Time
	Rating       int
	Tags         []string
}

// NewRecipe creates a recipe with a fresh ID and creation timestamp.
// Nothing is validated: negative times or an empty name are kept as given.
func NewRecipe(name string, ingredients map[string]string, instructions []string,
	prepTime, cookTime, servings int, category string) *Recipe {
	if category == "" {
		category = DefaultCategory
	}
	if ingredients == nil {
		ingredients = make(map[string]string)
	}
	if instructions == nil {
		instructions = []string{}
	}
	return &Recipe{
		ID:           uuid.NewString(),
		Name:         name,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     prepTime,
		CookTime:     cookTime,
		Servings:     servings,
		Category:     category,
		CreatedAt:    time.Now().UTC().Round(0),
		Tags:         []string{},
	}
}

// TotalTime returns prep plus cook time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// AddTag appends tag unless an identical tag is already present.
func (r *Recipe) AddTag(tag string) {
	for _, t := range r.Tags {
		if t == tag {
			return
		}
	}
	r.Tags = append(r.Tags, tag)
}

// SetRating sets the rating when value is within [MinRating, MaxRating].
// Out-of-range values leave the rating unchanged; this is not an error.
// The return value reports whether the rating was applied.
func (r *Recipe) SetRating(value int) bool {
	if value < MinRating || value > MaxRating {
		return false
	}
	r.Rating = value
	return true
}

// HasTag reports whether tag is present (exact match).
func (r *Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the recipe.
func (r *Recipe) Clone() Recipe {
	c := *r
	c.Ingredients = make(map[string]string, len(r.Ingredients))
	for k, v := range r.Ingredients {
		c.Ingredients[k] = v
	}
	c.Instructions = append([]string{}, r.Instructions...)
	c.Tags = append([]string{}, r.Tags...)
	return c
}
