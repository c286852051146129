// Package display renders recipes, meal plans, shopping lists and
// statistics for the terminal using lipgloss styles.
package display

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/planner"
)

type styles struct {
	banner    lipgloss.Style
	title     lipgloss.Style
	name      lipgloss.Style
	primary   lipgloss.Style
	secondary lipgloss.Style
	star      lipgloss.Style
	urgent    lipgloss.Style
	prompt    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner:    r.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		title:     r.NewStyle().Foreground(lipgloss.Color("#bbf7d0")).Bold(true),
		name:      r.NewStyle().Foreground(lipgloss.Color("#bae6fd")),
		primary:   r.NewStyle().Foreground(lipgloss.Color("#d4d4d8")),
		secondary: r.NewStyle().Foreground(lipgloss.Color("#71717a")),
		star:      r.NewStyle().Foreground(lipgloss.Color("#fde68a")),
		urgent:    r.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
		prompt:    r.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
	}
}

// Printer writes styled output. Colors are dropped when disabled or when
// out is not a terminal.
type Printer struct {
	out    io.Writer
	color  bool
	styles styles
}

// New creates a printer writing to out (os.Stdout if nil).
func New(out io.Writer, color bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{
		out:    out,
		color:  color,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

func (p *Printer) paint(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) line(s lipgloss.Style, text string) {
	fmt.Fprintln(p.out, p.paint(s, text))
}

// Banner prints the startup banner.
func (p *Printer) Banner() {
	fmt.Fprint(p.out, p.RenderBanner())
}

// Title prints a section header.
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.out)
	p.line(p.styles.title, text)
	p.line(p.styles.secondary, strings.Repeat("-", len(text)))
}

// Info prints a plain message.
func (p *Printer) Info(format string, a ...any) {
	p.line(p.styles.primary, "  "+fmt.Sprintf(format, a...))
}

// Hint prints dimmed secondary text.
func (p *Printer) Hint(format string, a ...any) {
	p.line(p.styles.secondary, "  "+fmt.Sprintf(format, a...))
}

// Error prints an error or warning.
func (p *Printer) Error(format string, a ...any) {
	p.line(p.styles.urgent, "  "+fmt.Sprintf(format, a...))
}

// Prompt prints the input prompt without a newline.
func (p *Printer) Prompt() {
	fmt.Fprint(p.out, p.paint(p.styles.prompt, "mealbook")+p.paint(p.styles.secondary, "> "))
}

// Ask prints a question label without a newline.
func (p *Printer) Ask(label string) {
	fmt.Fprint(p.out, p.paint(p.styles.primary, "  "+label))
}

// Stars renders a 0-5 rating. Unrated recipes read "unrated".
func Stars(rating int) string {
	if rating <= 0 {
		return "unrated"
	}
	if rating > domain.MaxRating {
		rating = domain.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", domain.MaxRating-rating)
}

// RecipeList prints a numbered one-line summary per recipe.
func (p *Printer) RecipeList(recipes []domain.Recipe) {
	if len(recipes) == 0 {
		p.Hint("No recipes found.")
		return
	}
	for i, r := range recipes {
		fmt.Fprintf(p.out, "  %2d. %s %s\n", i+1,
			p.paint(p.styles.name, r.Name),
			p.paint(p.styles.secondary, fmt.Sprintf("(%s, %d min, %s)", r.Category, r.TotalTime(), Stars(r.Rating))))
	}
}

// Recipe prints the full recipe.
func (p *Printer) Recipe(r domain.Recipe) {
	p.Title(r.Name)
	p.Info("Category: %s", r.Category)
	p.Info("Prep: %d min | Cook: %d min | Total: %d min", r.PrepTime, r.CookTime, r.TotalTime())
	p.Info("Servings: %d", r.Servings)
	fmt.Fprintf(p.out, "  Rating: %s\n", p.paint(p.styles.star, Stars(r.Rating)))
	if len(r.Tags) > 0 {
		p.Info("Tags: %s", strings.Join(r.Tags, ", "))
	}

	fmt.Fprintln(p.out)
	p.line(p.styles.title, "  Ingredients")
	names := make([]string, 0, len(r.Ingredients))
	for name := range r.Ingredients {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.Info("- %s: %s", name, r.Ingredients[name])
	}

	fmt.Fprintln(p.out)
	p.line(p.styles.title, "  Instructions")
	for i, step := range r.Instructions {
		p.Info("%d. %s", i+1, step)
	}
	p.Hint("Added %s", r.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// DayPlan prints the planned meals of one day. nameOf resolves recipe IDs;
// it returns false for recipes that no longer exist.
func (p *Printer) DayPlan(date time.Time, plan domain.MealPlan, nameOf func(id string) (string, bool)) {
	p.Title("Meals for " + domain.DateKey(date))
	slots := plan.Slots(date)
	if len(slots) == 0 {
		p.Hint("Nothing planned.")
		return
	}
	meals := plan.MealsForDate(date)
	for _, slot := range slots {
		name, ok := nameOf(meals[slot])
		if !ok {
			name = "(missing recipe " + meals[slot] + ")"
		}
		fmt.Fprintf(p.out, "  %-10s %s\n", p.paint(p.styles.secondary, slot), p.paint(p.styles.name, name))
	}
}

// ShoppingList prints the aggregated list for the window [start, start+days).
func (p *Printer) ShoppingList(start time.Time, days int, list map[string][]string) {
	end := start.AddDate(0, 0, days-1)
	p.Title(fmt.Sprintf("Shopping list (%s to %s)", domain.DateKey(start), domain.DateKey(end)))
	if len(list) == 0 {
		p.Hint("No meals planned for this period.")
		return
	}
	for _, ingredient := range planner.SortedIngredients(list) {
		fmt.Fprintf(p.out, "  %s\n", p.paint(p.styles.name, ingredient))
		for _, amount := range list[ingredient] {
			p.Hint("  - %s", amount)
		}
	}
}

// Stats prints a statistics report.
func (p *Printer) Stats(report domain.StatsReport) {
	p.Title("Recipe statistics")
	switch s := report.(type) {
	case domain.EmptyStats:
		p.Hint("%s", s.Message)
	case domain.Statistics:
		p.Info("Total recipes: %d", s.TotalRecipes)
		p.Info("Average cooking time: %.1f minutes", s.AverageCookingTime)
		p.Info("Average rating: %.1f/5 (%d rated)", s.AverageRating, s.RatedRecipes)
		p.Info("Categories:")
		cats := make([]string, 0, len(s.Categories))
		for c := range s.Categories {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			p.Info("  %s: %d", c, s.Categories[c])
		}
	}
}
