// Package storage provides snapshot persistence implementations.
package storage

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/mealbook/internal/domain"
)

// naiveISO is how timestamps without a zone were written by earlier data files.
const naiveISO = "2006-01-02T15:04:05.999999999"

// snapshotDoc is the on-disk shape shared by the JSON and YAML gateways.
type snapshotDoc struct {
	Recipes  []recipeDoc `json:"recipes" yaml:"recipes"`
	MealPlan mealPlanDoc `json:"meal_plan" yaml:"meal_plan"`
}

type mealPlanDoc struct {
	Meals map[string]map[string]string `json:"meals" yaml:"meals"`
}

type recipeDoc struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Ingredients  map[string]string `json:"ingredients" yaml:"ingredients"`
	Instructions []string          `json:"instructions" yaml:"instructions"`
	PrepTime     int               `json:"prep_time" yaml:"prep_time"`
	CookTime     int               `json:"cook_time" yaml:"cook_time"`
	Servings     int               `json:"servings" yaml:"servings"`
	Category     string            `json:"category" yaml:"category"`
	CreatedDate  string            `json:"created_date" yaml:"created_date"`
	Rating       int               `json:"rating,omitempty" yaml:"rating,omitempty"`
	Tags         []string          `json:"tags" yaml:"tags"`
}

func toDoc(s *domain.Snapshot) snapshotDoc {
	doc := snapshotDoc{
		Recipes:  make([]recipeDoc, 0, len(s.Recipes)),
		MealPlan: mealPlanDoc{Meals: s.MealPlan.Clone().Meals},
	}
	for i := range s.Recipes {
		r := s.Recipes[i].Clone()
		doc.Recipes = append(doc.Recipes, recipeDoc{
			ID:           r.ID,
			Name:         r.Name,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
			PrepTime:     r.PrepTime,
			CookTime:     r.CookTime,
			Servings:     r.Servings,
			Category:     r.Category,
			CreatedDate:  formatTimestamp(r.CreatedAt),
			Rating:       r.Rating,
			Tags:         r.Tags,
		})
	}
	return doc
}

func fromDoc(doc snapshotDoc) (*domain.Snapshot, error) {
	snap := domain.EmptySnapshot()
	for _, rd := range doc.Recipes {
		r, err := rd.recipe()
		if err != nil {
			return nil, err
		}
		snap.Recipes = append(snap.Recipes, r)
	}
	for date, day := range doc.MealPlan.Meals {
		slots := make(map[string]string, len(day))
		for slot, id := range day {
			slots[slot] = id
		}
		snap.MealPlan.Meals[date] = slots
	}
	return snap, nil
}

func (rd recipeDoc) recipe() (domain.Recipe, error) {
	created, err := parseTimestamp(rd.CreatedDate)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: recipe %s: %v", domain.ErrCorruptSnapshot, rd.ID, err)
	}
	r := domain.Recipe{
		ID:           rd.ID,
		Name:         rd.Name,
		Ingredients:  rd.Ingredients,
		Instructions: rd.Instructions,
		PrepTime:     rd.PrepTime,
		CookTime:     rd.CookTime,
		Servings:     rd.Servings,
		Category:     rd.Category,
		CreatedAt:    created,
		Rating:       rd.Rating,
		Tags:         rd.Tags,
	}
	if r.Ingredients == nil {
		r.Ingredients = make(map[string]string)
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTimestamp accepts RFC 3339 and zone-less ISO 8601 (read as local time).
// An empty string is the zero time.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(naiveISO, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad created_date %q", s)
	}
	return t.UTC(), nil
}
