// Package recipe holds the authoritative recipe collection and meal plan.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
	"github.com/hammamikhairi/mealbook/internal/planner"
	"github.com/hammamikhairi/mealbook/internal/query"
)

// Store owns the in-memory recipes and meal plan and writes the full
// snapshot through its gateway after every mutation. Reads hand out copies.
type Store struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	order   []string // recipe IDs in insertion order
	plan    domain.MealPlan
	gateway domain.SnapshotGateway
	log     *logger.Logger
	loadErr error
}

// NewStore creates a store and loads the current snapshot from gateway.
// A failed load is logged as a warning and leaves the store empty; the
// failure is available from LoadWarning.
func NewStore(ctx context.Context, gateway domain.SnapshotGateway, log *logger.Logger) *Store {
	s := &Store{
		recipes: make(map[string]*domain.Recipe),
		plan:    domain.NewMealPlan(),
		gateway: gateway,
		log:     log,
	}

	snap, err := gateway.Load(ctx)
	if err != nil {
		s.loadErr = err
		log.Warn("could not load saved data, starting empty: %v", err)
		return s
	}
	for i := range snap.Recipes {
		r := snap.Recipes[i].Clone()
		s.put(&r)
	}
	s.plan = snap.MealPlan.Clone()
	log.Debug("store ready: %d recipes, %d planned meals", len(s.order), s.plan.Len())
	return s
}

// LoadWarning returns the error from the initial load, if any.
func (s *Store) LoadWarning() error {
	return s.loadErr
}

// put inserts or replaces r, keeping the original position on replace.
// Callers hold the write lock.
func (s *Store) put(r *domain.Recipe) {
	if _, ok := s.recipes[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.recipes[r.ID] = r
}

// snapshotLocked copies the current state. Callers hold a lock.
func (s *Store) snapshotLocked() *domain.Snapshot {
	snap := &domain.Snapshot{
		Recipes:  make([]domain.Recipe, 0, len(s.order)),
		MealPlan: s.plan.Clone(),
	}
	for _, id := range s.order {
		snap.Recipes = append(snap.Recipes, s.recipes[id].Clone())
	}
	return snap
}

// persistLocked saves the full snapshot. The in-memory state is kept
// whether or not the save succeeds. Callers hold the write lock.
func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.gateway.Save(ctx, s.snapshotLocked()); err != nil {
		s.log.Error("saving snapshot: %v", err)
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// AddRecipe stores r (keyed by its ID) and saves.
func (s *Store) AddRecipe(ctx context.Context, r *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := r.Clone()
	s.put(&c)
	s.log.Info("recipe added: %s (%s)", c.Name, c.ID)
	return s.persistLocked(ctx)
}

// UpdateRating applies value to the recipe's rating and saves. Values
// outside 1-5 leave the rating unchanged without error.
func (s *Store) UpdateRating(ctx context.Context, id string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	if r.SetRating(value) {
		s.log.Info("recipe rated: %s = %d", r.Name, value)
	} else {
		s.log.Debug("rating %d ignored for %s", value, r.Name)
	}
	return s.persistLocked(ctx)
}

// AddTag tags the recipe and saves. Tags already present are not duplicated.
func (s *Store) AddTag(ctx context.Context, id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	r.AddTag(tag)
	s.log.Debug("recipe %s tags: %v", r.Name, r.Tags)
	return s.persistLocked(ctx)
}

// PlanMeal assigns recipeID to slot on date and saves. The ID is not
// checked against the collection.
func (s *Store) PlanMeal(ctx context.Context, date time.Time, slot, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plan.AddMeal(date, slot, recipeID)
	s.log.Info("meal planned: %s %s -> %s", domain.DateKey(date), domain.NormalizeSlot(slot), recipeID)
	return s.persistLocked(ctx)
}

// Get returns a copy of the recipe with id.
func (s *Store) Get(ctx context.Context, id string) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return domain.Recipe{}, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	return r.Clone(), nil
}

// Recipes returns copies of every recipe in insertion order.
func (s *Store) Recipes() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked().Recipes
}

// MealPlan returns a copy of the meal plan.
func (s *Store) MealPlan() domain.MealPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Clone()
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Search returns recipes whose name, ingredient names or tags contain q.
func (s *Store) Search(q string) []domain.Recipe {
	s.log.Debug("searching recipes for: %s", q)
	return query.Search(s.Recipes(), q)
}

// FilterByCategory returns recipes in category (case-insensitive).
func (s *Store) FilterByCategory(category string) []domain.Recipe {
	return query.FilterByCategory(s.Recipes(), category)
}

// FilterByMaxTime returns recipes whose total time is at most maxMinutes.
func (s *Store) FilterByMaxTime(maxMinutes int) []domain.Recipe {
	return query.FilterByMaxTime(s.Recipes(), maxMinutes)
}

// TopRated returns up to limit rated recipes, best first.
func (s *Store) TopRated(limit int) []domain.Recipe {
	return query.TopRated(s.Recipes(), limit)
}

// ShoppingList aggregates ingredients for meals planned over days dates
// starting at start.
func (s *Store) ShoppingList(start time.Time, days int) map[string][]string {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()
	return planner.ShoppingList(snap.Recipes, snap.MealPlan, start, days)
}

// Stats summarizes the collection.
func (s *Store) Stats() domain.StatsReport {
	return planner.Stats(s.Recipes())
}

// IsNotFound reports whether err means a recipe does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
