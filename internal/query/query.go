// Package query implements read-only recipe queries. Every function takes a
// copy of the collection and keeps its order unless stated otherwise.
package query

import (
	"sort"
	"strings"

	"github.com/hammamikhairi/mealbook/internal/domain"
)

// DefaultTopRated is the usual number of recipes returned by TopRated.
const DefaultTopRated = 5

// Search returns recipes whose name, any ingredient name, or any tag
// contains q, ignoring case. Each recipe appears at most once.
func Search(recipes []domain.Recipe, q string) []domain.Recipe {
	q = strings.ToLower(q)
	var out []domain.Recipe
	for _, r := range recipes {
		if matches(&r, q) {
			out = append(out, r)
		}
	}
	return out
}

// matches checks name, then ingredients, then tags, stopping at the first hit.
func matches(r *domain.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for ingredient := range r.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), q) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FilterByCategory returns recipes whose category equals category, ignoring case.
func FilterByCategory(recipes []domain.Recipe, category string) []domain.Recipe {
	var out []domain.Recipe
	for _, r := range recipes {
		if strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByMaxTime returns recipes with TotalTime() <= maxMinutes.
func FilterByMaxTime(recipes []domain.Recipe, maxMinutes int) []domain.Recipe {
	var out []domain.Recipe
	for _, r := range recipes {
		if r.TotalTime() <= maxMinutes {
			out = append(out, r)
		}
	}
	return out
}

// TopRated returns at most limit rated recipes, highest rating first.
// Equal ratings keep their collection order. Unrated recipes are excluded.
func TopRated(recipes []domain.Recipe, limit int) []domain.Recipe {
	if limit <= 0 {
		return nil
	}
	var rated []domain.Recipe
	for _, r := range recipes {
		if r.Rating > 0 {
			rated = append(rated, r)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if len(rated) > limit {
		rated = rated[:limit]
	}
	return rated
}
