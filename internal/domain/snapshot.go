package domain

// Snapshot is the complete persisted state: every recipe in insertion order
// plus the meal plan. It is always saved and loaded as one unit.
type Snapshot struct {
	Recipes  []Recipe
	MealPlan MealPlan
}

// EmptySnapshot returns a snapshot with no recipes and an empty plan.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Recipes:  []Recipe{},
		MealPlan: NewMealPlan(),
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Recipes:  make([]Recipe, len(s.Recipes)),
		MealPlan: s.MealPlan.Clone(),
	}
	for i := range s.Recipes {
		c.Recipes[i] = s.Recipes[i].Clone()
	}
	return c
}
