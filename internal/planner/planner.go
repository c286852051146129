// Package planner derives shopping lists and statistics from the recipe
// collection and meal plan.
package planner

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/hammamikhairi/mealbook/internal/domain"
)

// DefaultShoppingDays is the usual length of a shopping list window.
const DefaultShoppingDays = 7

// ShoppingList collects, for each of days dates starting at start, the
// ingredients of every planned recipe as "<amount> (for <name>)" entries.
// Slots whose recipe no longer exists are skipped.
func ShoppingList(recipes []domain.Recipe, plan domain.MealPlan, start time.Time, days int) map[string][]string {
	byID := make(map[string]*domain.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	list := make(map[string][]string)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		meals := plan.MealsForDate(date)
		for _, slot := range plan.Slots(date) {
			r, ok := byID[meals[slot]]
			if !ok {
				continue
			}
			for _, ingredient := range sortedKeys(r.Ingredients) {
				list[ingredient] = append(list[ingredient],
					fmt.Sprintf("%s (for %s)", r.Ingredients[ingredient], r.Name))
			}
		}
	}
	return list
}

// SortedIngredients returns the shopping list's ingredient names alphabetically.
func SortedIngredients(list map[string][]string) []string {
	return sortedKeys(list)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats summarizes recipes. An empty collection yields domain.EmptyStats.
func Stats(recipes []domain.Recipe) domain.StatsReport {
	if len(recipes) == 0 {
		return domain.EmptyStats{Message: domain.NoRecipesMessage}
	}

	stats := domain.Statistics{
		TotalRecipes: len(recipes),
		Categories:   make(map[string]int),
	}
	totalTime, totalRating := 0, 0
	for _, r := range recipes {
		stats.Categories[r.Category]++
		totalTime += r.TotalTime()
		if r.Rating > 0 {
			stats.RatedRecipes++
			totalRating += r.Rating
		}
	}

	stats.AverageCookingTime = round1(float64(totalTime) / float64(len(recipes)))
	if stats.RatedRecipes > 0 {
		stats.AverageRating = round1(float64(totalRating) / float64(stats.RatedRecipes))
	}
	return stats
}

// round1 rounds to one decimal place. Ties go to even, judged on the exact
// binary value, so 2.25 becomes 2.2 and 1.15 (stored as 1.1499...) becomes 1.1.
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
