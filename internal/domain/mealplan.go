package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used as the meal plan key.
const DateLayout = time.DateOnly

// slotOrder ranks the common meal slots by time of day.
var slotOrder = map[string]int{
	"breakfast": 0,
	"brunch":    1,
	"lunch":     2,
	"snack":     3,
	"dinner":    4,
	"dessert":   5,
}

// MealPlan maps calendar dates to meal slots to recipe IDs.
// Recipe IDs are weak references: they are not checked on assignment and
// may point at recipes that no longer exist.
type MealPlan struct {
	Meals map[string]map[string]string // date -> slot -> recipe ID
}

// NewMealPlan creates an empty meal plan.
func NewMealPlan() MealPlan {
	return MealPlan{Meals: make(map[string]map[string]string)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// DateKey formats the calendar day of t as a meal plan key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeSlot trims and lowercases a meal slot label.
func NormalizeSlot(slot string) string {
	return strings.ToLower(strings.TrimSpace(slot))
}

// AddMeal assigns recipeID to the slot on date, replacing any previous entry.
func (p *MealPlan) AddMeal(date time.Time, slot, recipeID string) {
	if p.Meals == nil {
		p.Meals = make(map[string]map[string]string)
	}
	key := DateKey(date)
	day, ok := p.Meals[key]
	if !ok {
		day = make(map[string]string)
		p.Meals[key] = day
	}
	day[NormalizeSlot(slot)] = recipeID
}

// MealsForDate returns a copy of the slot map for date. Empty if nothing is planned.
func (p *MealPlan) MealsForDate(date time.Time) map[string]string {
	out := make(map[string]string)
	for slot, id := range p.Meals[DateKey(date)] {
		out[slot] = id
	}
	return out
}

// Slots returns the planned slots of date, breakfast to dessert first and
// any other labels alphabetically after them.
func (p *MealPlan) Slots(date time.Time) []string {
	day := p.Meals[DateKey(date)]
	out := make([]string, 0, len(day))
	for slot := range day {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := slotOrder[out[i]]
		rj, jKnown := slotOrder[out[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Len returns the number of planned (date, slot) entries.
func (p *MealPlan) Len() int {
	n := 0
	for _, day := range p.Meals {
		n += len(day)
	}
	return n
}

// Clone returns a deep copy of the plan.
func (p *MealPlan) Clone() MealPlan {
	c := NewMealPlan()
	for date, day := range p.Meals {
		slots := make(map[string]string, len(day))
		for slot, id := range day {
			slots[slot] = id
		}
		c.Meals[date] = slots
	}
	return c
}
