package recipe

import (
	"context"

	"github.com/hammamikhairi/mealbook/internal/domain"
)

// Samples returns fresh copies of the built-in starter recipes.
func Samples() []*domain.Recipe {
	return []*domain.Recipe{
		spaghettiCarbonara(),
		chocolateChipCookies(),
		greekSalad(),
	}
}

// SeedSamples adds the starter recipes, saving after each one.
func (s *Store) SeedSamples(ctx context.Context) error {
	for _, r := range Samples() {
		if err := s.AddRecipe(ctx, r); err != nil {
			return err
		}
	}
	s.log.Info("seeded %d sample recipes", len(Samples()))
	return nil
}

func spaghettiCarbonara() *domain.Recipe {
	r := domain.NewRecipe("Spaghetti Carbonara",
		map[string]string{
			"spaghetti":       "400g",
			"eggs":            "4 large",
			"parmesan cheese": "100g grated",
			"pancetta":        "150g diced",
			"black pepper":    "to taste",
			"salt":            "to taste",
		},
		[]string{
			"Cook spaghetti in salted boiling water until al dente",
			"Fry pancetta until crispy",
			"Beat eggs with grated parmesan and black pepper",
			"Drain pasta, reserving some pasta water",
			"Mix hot pasta with pancetta and egg mixture",
			"Add pasta water if needed for creaminess",
			"Serve immediately with extra parmesan",
		},
		10, 15, 4, "Main Course")
	r.AddTag("italian")
	r.AddTag("pasta")
	r.AddTag("quick")
	r.SetRating(5)
	return r
}

func chocolateChipCookies() *domain.Recipe {
	r := domain.NewRecipe("Chocolate Chip Cookies",
		map[string]string{
			"flour":           "2 1/4 cups",
			"butter":          "1 cup softened",
			"brown sugar":     "3/4 cup",
			"white sugar":     "3/4 cup",
			"eggs":            "2 large",
			"vanilla extract": "2 tsp",
			"baking soda":     "1 tsp",
			"salt":            "1 tsp",
			"chocolate chips": "2 cups",
		},
		[]string{
			"Preheat oven to 375°F (190°C)",
			"Cream butter and sugars together",
			"Beat in eggs and vanilla",
			"Mix in flour, baking soda, and salt",
			"Stir in chocolate chips",
			"Drop spoonfuls on baking sheet",
			"Bake for 9-11 minutes until golden brown",
			"Cool on baking sheet for 5 minutes",
		},
		15, 11, 24, "Dessert")
	r.AddTag("baking")
	r.AddTag("sweet")
	r.AddTag("family-friendly")
	r.SetRating(4)
	return r
}

func greekSalad() *domain.Recipe {
	r := domain.NewRecipe("Greek Salad",
		map[string]string{
			"tomatoes":    "4 large, chopped",
			"cucumber":    "1 large, sliced",
			"red onion":   "1/2 medium, sliced",
			"feta cheese": "200g cubed",
			"olives":      "1/2 cup kalamata",
			"olive oil":   "1/4 cup",
			"lemon juice": "2 tbsp",
			"oregano":     "1 tsp dried",
			"salt":        "to taste",
			"pepper":      "to taste",
		},
		[]string{
			"Chop tomatoes and place in large bowl",
			"Add sliced cucumber and red onion",
			"Add feta cheese cubes and olives",
			"Whisk together olive oil, lemon juice, and oregano",
			"Pour dressing over salad",
			"Season with salt and pepper",
			"Toss gently and serve immediately",
		},
		15, 0, 4, "Salad")
	r.AddTag("healthy")
	r.AddTag("vegetarian")
	r.AddTag("mediterranean")
	r.SetRating(4)
	return r
}
