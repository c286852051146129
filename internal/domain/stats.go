package domain

// NoRecipesMessage is reported by statistics over an empty collection.
const NoRecipesMessage = "No recipes found"

// StatsReport is the result of computing collection statistics.
// It is either EmptyStats or Statistics.
type StatsReport interface {
	isStatsReport()
}

// EmptyStats is returned when the collection has no recipes.
type EmptyStats struct {
	Message string
}

// Statistics summarizes a non-empty collection.
type Statistics struct {
	TotalRecipes       int
	Categories         map[string]int
	AverageCookingTime float64 // minutes, one decimal
	AverageRating      float64 // rated recipes only, one decimal
	RatedRecipes       int
}

func (EmptyStats) isStatsReport() {}
func (Statistics) isStatsReport() {}
