package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAddMeal(t *testing.T) {
	plan := NewMealPlan()
	d := mustDate(t, "2024-03-10")

	plan.AddMeal(d, "Dinner", "r1")
	plan.AddMeal(d.Add(20*time.Hour), " dinner ", "r2") // same calendar day, overwrites
	plan.AddMeal(d, "lunch", "r3")

	assert.Equal(t, map[string]string{"dinner": "r2", "lunch": "r3"}, plan.MealsForDate(d))
	assert.Equal(t, 2, plan.Len())
}

func TestAddMealOnZeroValuePlan(t *testing.T) {
	var plan MealPlan
	plan.AddMeal(mustDate(t, "2024-01-01"), "breakfast", "missing-recipe")
	assert.Equal(t, "missing-recipe", plan.Meals["2024-01-01"]["breakfast"])
}

func TestMealsForDate(t *testing.T) {
	plan := NewMealPlan()
	d := mustDate(t, "2024-03-10")
	plan.AddMeal(d, "lunch", "r1")

	empty := plan.MealsForDate(d.AddDate(0, 0, 1))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	got := plan.MealsForDate(d)
	got["lunch"] = "tampered"
	assert.Equal(t, "r1", plan.Meals["2024-03-10"]["lunch"])
}

func TestSlotsOrder(t *testing.T) {
	plan := NewMealPlan()
	d := mustDate(t, "2024-03-10")
	for _, slot := range []string{"supper", "dinner", "elevenses", "breakfast", "lunch", "snack"} {
		plan.AddMeal(d, slot, "r")
	}

	assert.Equal(t, []string{"breakfast", "lunch", "snack", "dinner", "elevenses", "supper"}, plan.Slots(d))
	assert.Empty(t, plan.Slots(d.AddDate(0, 0, 1)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", DateKey(d))

	for _, bad := range []string{"", "2024-13-01", "29/02/2024", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.True(t, errors.Is(err, ErrInvalidDate), "input %q", bad)
	}
}

func TestMealPlanClone(t *testing.T) {
	plan := NewMealPlan()
	plan.AddMeal(mustDate(t, "2024-03-10"), "lunch", "r1")

	c := plan.Clone()
	assert.Equal(t, plan, c)

	c.AddMeal(mustDate(t, "2024-03-10"), "lunch", "r2")
	assert.Equal(t, "r1", plan.Meals["2024-03-10"]["lunch"])
}

func TestSnapshotClone(t *testing.T) {
	snap := EmptySnapshot()
	snap.Recipes = append(snap.Recipes, *NewRecipe("r", nil, nil, 0, 0, 1, ""))
	snap.MealPlan.AddMeal(mustDate(t, "2024-03-10"), "lunch", snap.Recipes[0].ID)

	c := snap.Clone()
	require.Equal(t, snap, c)

	c.Recipes[0].AddTag("x")
	assert.Empty(t, snap.Recipes[0].Tags)
}

func TestCommandFromString(t *testing.T) {
	assert.Equal(t, CommandShop, CommandFromString("shop"))
	assert.Equal(t, CommandUnknown, CommandFromString("dance"))
	assert.Equal(t, "quick", CommandQuick.String())
	assert.Equal(t, "unknown", CommandType(99).String())

	cmd := &Command{Args: []string{"a"}}
	assert.Equal(t, "a", cmd.Arg(0))
	assert.Equal(t, "", cmd.Arg(1))
}
