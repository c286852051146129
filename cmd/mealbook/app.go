package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/mealbook/internal/config"
	"github.com/hammamikhairi/mealbook/internal/display"
	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
	"github.com/hammamikhairi/mealbook/internal/recipe"
)

// cliApp is the interactive prompt loop.
type cliApp struct {
	store   *recipe.Store
	parser  domain.CommandParser
	printer *display.Printer
	in      *bufio.Scanner
	cfg     *config.Config
	log     *logger.Logger
	last    []domain.Recipe // last listing shown, for <n> references
}

// readLine prompts with label and returns the trimmed answer.
// ok is false once input is exhausted.
func (a *cliApp) readLine(label string) (string, bool) {
	a.printer.Ask(label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *cliApp) offerSamples(ctx context.Context) {
	answer, ok := a.readLine("No recipes yet. Add the sample recipes? (y/n): ")
	if !ok {
		return
	}
	if strings.HasPrefix(strings.ToLower(answer), "y") {
		a.seed(ctx)
	}
}

func (a *cliApp) seed(ctx context.Context) {
	if err := a.store.SeedSamples(ctx); err != nil {
		a.printer.Error("Could not save sample recipes: %v", err)
		return
	}
	a.printer.Info("Added %d sample recipes.", len(recipe.Samples()))
}

func (a *cliApp) run(ctx context.Context) {
	for {
		a.printer.Prompt()
		if !a.in.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parse: %v", err)
			continue
		}
		a.log.Debug("command: %s %q", cmd.Type, cmd.Args)

		if cmd.Type == domain.CommandQuit {
			a.printer.Info("Goodbye!")
			return
		}
		a.handleCommand(ctx, cmd)
	}
}

func (a *cliApp) handleCommand(ctx context.Context, cmd *domain.Command) {
	switch cmd.Type {
	case domain.CommandList:
		a.list(a.store.Recipes())
	case domain.CommandShow:
		if r, ok := a.pick(cmd.Arg(0)); ok {
			a.printer.Recipe(r)
		}
	case domain.CommandAdd:
		a.addRecipe(ctx)
	case domain.CommandSearch:
		q := cmd.Arg(0)
		if q == "" {
			a.printer.Hint("Usage: search <text>")
			return
		}
		a.list(a.store.Search(q))
	case domain.CommandCategory:
		c := cmd.Arg(0)
		if c == "" {
			a.printer.Hint("Usage: category <name>")
			return
		}
		a.list(a.store.FilterByCategory(c))
	case domain.CommandQuick:
		minutes, err := strconv.Atoi(cmd.Arg(0))
		if err != nil {
			a.printer.Hint("Usage: quick <minutes>")
			return
		}
		a.list(a.store.FilterByMaxTime(minutes))
	case domain.CommandTop:
		limit := a.cfg.Query.TopRatedLimit
		if s := cmd.Arg(0); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				a.printer.Hint("Usage: top [n]")
				return
			}
			limit = n
		}
		a.list(a.store.TopRated(limit))
	case domain.CommandRate:
		a.rate(ctx, cmd)
	case domain.CommandTag:
		a.tag(ctx, cmd)
	case domain.CommandPlan:
		a.plan(ctx, cmd)
	case domain.CommandDay:
		a.day(cmd)
	case domain.CommandShop:
		a.shop(cmd)
	case domain.CommandStats:
		a.printer.Stats(a.store.Stats())
	case domain.CommandHelp:
		a.showHelp()
	default:
		a.printer.Hint("Unknown command %q. Type 'help' for commands.", cmd.Raw)
	}
}

// list prints recipes and remembers them for numbered references.
func (a *cliApp) list(recipes []domain.Recipe) {
	a.last = recipes
	a.printer.RecipeList(recipes)
}

// pick resolves a 1-based position in the last listing. Before anything
// was listed, the full collection is used.
func (a *cliApp) pick(arg string) (domain.Recipe, bool) {
	if arg == "" {
		a.printer.Hint("Give the recipe number from the last listing.")
		return domain.Recipe{}, false
	}
	source := a.last
	if source == nil {
		source = a.store.Recipes()
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(source) {
		a.printer.Error("No recipe number %s in the last listing.", arg)
		return domain.Recipe{}, false
	}
	return source[n-1], true
}

func (a *cliApp) rate(ctx context.Context, cmd *domain.Command) {
	r, ok := a.pick(cmd.Arg(0))
	if !ok {
		return
	}
	value, err := strconv.Atoi(cmd.Arg(1))
	if err != nil {
		a.printer.Hint("Usage: rate <n> <1-5>")
		return
	}
	if err := a.store.UpdateRating(ctx, r.ID, value); err != nil {
		a.reportMutation(err)
		return
	}
	if value < domain.MinRating || value > domain.MaxRating {
		a.printer.Hint("Ratings go from %d to %d; %s keeps %s.", domain.MinRating, domain.MaxRating, r.Name, display.Stars(r.Rating))
		return
	}
	a.refresh(r.ID)
	a.printer.Info("Rated %s %s", r.Name, display.Stars(value))
}

func (a *cliApp) tag(ctx context.Context, cmd *domain.Command) {
	r, ok := a.pick(cmd.Arg(0))
	if !ok {
		return
	}
	tag := cmd.Arg(1)
	if tag == "" {
		a.printer.Hint("Usage: tag <n> <tag>")
		return
	}
	if err := a.store.AddTag(ctx, r.ID, tag); err != nil {
		a.reportMutation(err)
		return
	}
	a.refresh(r.ID)
	a.printer.Info("Tagged %s with %q.", r.Name, tag)
}

func (a *cliApp) plan(ctx context.Context, cmd *domain.Command) {
	if len(cmd.Args) < 3 {
		a.printer.Hint("Usage: plan <YYYY-MM-DD> <slot> <n>")
		return
	}
	date, err := domain.ParseDate(cmd.Arg(0))
	if err != nil {
		a.printer.Error("%v", err)
		return
	}
	slot := cmd.Arg(1)
	r, ok := a.pick(cmd.Arg(2))
	if !ok {
		return
	}
	if err := a.store.PlanMeal(ctx, date, slot, r.ID); err != nil {
		a.reportMutation(err)
		return
	}
	a.printer.Info("%s %s: %s", domain.DateKey(date), domain.NormalizeSlot(slot), r.Name)
}

func (a *cliApp) day(cmd *domain.Command) {
	date, ok := a.dateArg(cmd.Arg(0))
	if !ok {
		return
	}
	a.printer.DayPlan(date, a.store.MealPlan(), a.nameOf)
}

func (a *cliApp) shop(cmd *domain.Command) {
	start, ok := a.dateArg(cmd.Arg(0))
	if !ok {
		return
	}
	days := a.cfg.Planner.ShoppingDays
	if s := cmd.Arg(1); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			a.printer.Hint("Usage: shop <YYYY-MM-DD> [days]")
			return
		}
		days = n
	}
	a.printer.ShoppingList(start, days, a.store.ShoppingList(start, days))
}

// dateArg parses s, defaulting to today when empty.
func (a *cliApp) dateArg(s string) (time.Time, bool) {
	if s == "" || strings.EqualFold(s, "today") {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	date, err := domain.ParseDate(s)
	if err != nil {
		a.printer.Error("%v", err)
		return time.Time{}, false
	}
	return date, true
}

func (a *cliApp) nameOf(id string) (string, bool) {
	r, err := a.store.Get(context.Background(), id)
	if err != nil {
		return "", false
	}
	return r.Name, true
}

// refresh replaces the cached copy of id in the last listing.
func (a *cliApp) refresh(id string) {
	r, err := a.store.Get(context.Background(), id)
	if err != nil {
		return
	}
	for i := range a.last {
		if a.last[i].ID == id {
			a.last[i] = r
		}
	}
}

func (a *cliApp) reportMutation(err error) {
	if recipe.IsNotFound(err) {
		a.printer.Error("That recipe no longer exists.")
		return
	}
	a.printer.Error("Change kept for this session but not saved: %v", err)
}

// addRecipe walks the user through entering a new recipe.
func (a *cliApp) addRecipe(ctx context.Context) {
	a.printer.Title("New recipe")

	name, ok := a.readLine("Name: ")
	if !ok || name == "" {
		a.printer.Hint("Cancelled.")
		return
	}
	category, ok := a.readLine(fmt.Sprintf("Category [%s]: ", domain.DefaultCategory))
	if !ok {
		return
	}
	prep, ok := a.readInt("Prep time (minutes): ")
	if !ok {
		return
	}
	cook, ok := a.readInt("Cook time (minutes): ")
	if !ok {
		return
	}
	servings, ok := a.readInt("Servings: ")
	if !ok {
		return
	}

	a.printer.Hint("Ingredients as 'name: amount', 'done' to finish.")
	ingredients := make(map[string]string)
	for {
		line, ok := a.readLine("  ingredient: ")
		if !ok || strings.EqualFold(line, "done") {
			break
		}
		if line == "" {
			continue
		}
		item, amount, _ := strings.Cut(line, ":")
		ingredients[strings.TrimSpace(item)] = strings.TrimSpace(amount)
	}

	a.printer.Hint("Instructions one step per line, 'done' to finish.")
	var steps []string
	for {
		line, ok := a.readLine(fmt.Sprintf("  step %d: ", len(steps)+1))
		if !ok || strings.EqualFold(line, "done") {
			break
		}
		if line != "" {
			steps = append(steps, line)
		}
	}

	r := domain.NewRecipe(name, ingredients, steps, prep, cook, servings, category)
	if tags, ok := a.readLine("Tags (comma separated, optional): "); ok {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				r.AddTag(t)
			}
		}
	}

	if err := a.store.AddRecipe(ctx, r); err != nil {
		a.reportMutation(err)
		return
	}
	a.printer.Info("Added %s.", r.Name)
}

// readInt keeps asking until a whole number (or nothing, meaning 0) is entered.
func (a *cliApp) readInt(label string) (int, bool) {
	for {
		s, ok := a.readLine(label)
		if !ok {
			return 0, false
		}
		if s == "" {
			return 0, true
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, true
		}
		a.printer.Error("Please enter a whole number.")
	}
}

func (a *cliApp) showHelp() {
	a.printer.Title("Commands")
	help := [][2]string{
		{"list", "all recipes"},
		{"show <n>", "full recipe from the last listing"},
		{"add", "enter a new recipe"},
		{"search <text>", "match name, ingredients or tags"},
		{"category <name>", "recipes in a category"},
		{"quick <minutes>", "recipes ready within the time"},
		{"top [n]", fmt.Sprintf("best rated (default %d)", a.cfg.Query.TopRatedLimit)},
		{"rate <n> <1-5>", "rate a recipe"},
		{"tag <n> <tag>", "tag a recipe"},
		{"plan <date> <slot> <n>", "put a recipe on the meal plan"},
		{"day [date]", "meals planned for a day"},
		{"shop [date] [days]", fmt.Sprintf("shopping list (default %d days)", a.cfg.Planner.ShoppingDays)},
		{"stats", "collection statistics"},
		{"help", "this list"},
		{"quit", "exit"},
	}
	for _, h := range help {
		a.printer.Info("%-24s %s", h[0], h[1])
	}
	a.printer.Hint("Dates are YYYY-MM-DD.")
}
