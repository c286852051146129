package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
)

// fakeSnapshot builds a randomized but reproducible snapshot.
func fakeSnapshot(seed int64, recipes int) *domain.Snapshot {
	faker := gofakeit.New(seed)
	snap := domain.EmptySnapshot()

	for i := 0; i < recipes; i++ {
		ingredients := make(map[string]string)
		for j := 0; j < faker.Number(1, 6); j++ {
			ingredients[faker.Vegetable()] = fmt.Sprintf("%d %s", faker.Number(1, 500),
				faker.RandomString([]string{"g", "cups", "tbsp", "large"}))
		}
		var steps []string
		for j := 0; j < faker.Number(1, 5); j++ {
			steps = append(steps, faker.Sentence(6))
		}
		r := domain.NewRecipe(faker.Dinner(), ingredients, steps,
			faker.Number(0, 60), faker.Number(0, 120), faker.Number(1, 8),
			faker.RandomString([]string{"Main Course", "Dessert", "Salad", "Breakfast"}))
		r.CreatedAt = faker.Date().UTC()
		r.SetRating(faker.Number(0, 5))
		for j := 0; j < faker.Number(0, 3); j++ {
			r.AddTag(faker.Adjective())
		}
		snap.Recipes = append(snap.Recipes, *r)
	}

	for i := 0; i < recipes; i++ {
		day := faker.DateRange(time.Now().AddDate(0, -1, 0), time.Now().AddDate(0, 1, 0))
		slot := faker.RandomString([]string{"breakfast", "lunch", "dinner"})
		snap.MealPlan.AddMeal(day, slot, snap.Recipes[i].ID)
	}
	snap.MealPlan.AddMeal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "dinner", "dangling-id")
	return snap
}

func gateways(t *testing.T) map[string]domain.SnapshotGateway {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	db, err := NewSQLite(filepath.Join(dir, "book.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]domain.SnapshotGateway{
		"json":   NewJSONFile(filepath.Join(dir, "book.json"), log),
		"yaml":   NewYAMLFile(filepath.Join(dir, "book.yaml"), log),
		"sqlite": db,
		"memory": NewMemoryGateway(log),
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			want := fakeSnapshot(42, 6)
			require.NoError(t, gw.Save(ctx, want))

			got, err := gw.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got.Recipes, len(want.Recipes))
			for i := range want.Recipes {
				assert.Equal(t, want.Recipes[i], got.Recipes[i], "recipe %d", i)
				assert.Equal(t, want.Recipes[i].TotalTime(), got.Recipes[i].TotalTime())
			}
			assert.Equal(t, want.MealPlan, got.MealPlan)
		})
	}
}

func TestRoundTripOverwrites(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Save(ctx, fakeSnapshot(1, 5)))
			second := fakeSnapshot(2, 2)
			require.NoError(t, gw.Save(ctx, second))

			got, err := gw.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, second, got)
		})
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			snap, err := gw.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, snap.Recipes)
			assert.Zero(t, snap.MealPlan.Len())
		})
	}
}

func TestSaveDoesNotMutateInput(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			snap := fakeSnapshot(7, 3)
			before := snap.Clone()
			require.NoError(t, gw.Save(ctx, snap))
			assert.Equal(t, before, snap)
		})
	}
}

func TestLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		open    func(string) domain.SnapshotGateway
	}{
		{"json garbage", "a.json", "{not json", func(p string) domain.SnapshotGateway { return NewJSONFile(p, log) }},
		{"json empty", "b.json", "  \n", func(p string) domain.SnapshotGateway { return NewJSONFile(p, log) }},
		{"json bad timestamp", "c.json", `{"recipes":[{"id":"x","name":"n","created_date":"yesterday"}]}`,
			func(p string) domain.SnapshotGateway { return NewJSONFile(p, log) }},
		{"yaml garbage", "d.yaml", "recipes: [unclosed", func(p string) domain.SnapshotGateway { return NewYAMLFile(p, log) }},
		{"sqlite garbage", "e.db", "this is not a database file at all, not even close.....",
			func(p string) domain.SnapshotGateway {
				db, err := NewSQLite(p, log)
				require.NoError(t, err)
				t.Cleanup(func() { db.Close() })
				return db
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := tt.open(path).Load(ctx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrCorruptSnapshot), "got %v", err)
		})
	}
}

func TestLoadDefaultsOptionalFields(t *testing.T) {
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "old.json")

	legacy := `{
  "recipes": [
    {
      "id": "r1",
      "name": "Greek Salad",
      "ingredients": {"feta cheese": "200g cubed"},
      "instructions": ["Chop", "Toss"],
      "prep_time": 15,
      "cook_time": 0,
      "servings": 4,
      "category": "Salad",
      "created_date": "2024-05-01T12:30:00.123456"
    }
  ],
  "meal_plan": {"meals": {"2024-05-02": {"lunch": "r1"}}}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	snap, err := NewJSONFile(path, log).Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Recipes, 1)

	r := snap.Recipes[0]
	assert.Equal(t, 0, r.Rating)
	assert.Equal(t, []string{}, r.Tags)
	assert.Equal(t, 15, r.TotalTime())
	assert.Equal(t, 2024, r.CreatedAt.In(time.Local).Year())
	assert.Equal(t, 123456000, r.CreatedAt.Nanosecond())
	assert.Equal(t, map[string]string{"lunch": "r1"}, snap.MealPlan.Meals["2024-05-02"])
}

func TestSaveUnwritable(t *testing.T) {
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	// A regular file where the parent directory should be.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	gw := NewJSONFile(filepath.Join(blocker, "book.json"), log)
	err := gw.Save(ctx, fakeSnapshot(3, 1))
	require.Error(t, err)
}

func TestMemoryGatewayCountsAndFails(t *testing.T) {
	ctx := context.Background()
	gw := NewMemoryGateway(logger.New(logger.LevelOff, nil))

	assert.Nil(t, gw.Last())
	require.NoError(t, gw.Save(ctx, fakeSnapshot(1, 1)))
	require.NoError(t, gw.Save(ctx, fakeSnapshot(2, 2)))
	assert.Equal(t, 2, gw.Saves())
	assert.Len(t, gw.Last().Recipes, 2)

	boom := errors.New("disk full")
	gw.FailSave(boom)
	assert.ErrorIs(t, gw.Save(ctx, fakeSnapshot(3, 3)), boom)
	assert.Equal(t, 2, gw.Saves())

	gw.FailLoad(domain.ErrCorruptSnapshot)
	_, err := gw.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}

func TestOpen(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	tests := []struct {
		backend string
		file    string
		want    any
		wantErr error
	}{
		{"", "book.json", &FileStore{}, nil},
		{"", "book.yml", &FileStore{}, nil},
		{"", "book.sqlite", &SQLiteStore{}, nil},
		{"", "book.txt", &FileStore{}, nil},
		{"memory", "ignored", &MemoryGateway{}, nil},
		{"YAML", "book.data", &FileStore{}, nil},
		{"postgres", "book.json", nil, domain.ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.backend+"/"+tt.file, func(t *testing.T) {
			gw, err := Open(tt.backend, filepath.Join(dir, tt.file), log)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, gw)
			if c, ok := gw.(*SQLiteStore); ok {
				c.Close()
			}
		})
	}
}

func TestDetectBackend(t *testing.T) {
	assert.Equal(t, BackendYAML, DetectBackend("x/recipes.YAML"))
	assert.Equal(t, BackendSQLite, DetectBackend("recipes.db"))
	assert.Equal(t, BackendJSON, DetectBackend("recipes_data.json"))
	assert.Equal(t, BackendJSON, DetectBackend("recipes"))
}

func TestJSONRejectsInvalidUTF8(t *testing.T) {
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "book.json")
	gw := NewJSONFile(path, log)

	good := fakeSnapshot(5, 2)
	require.NoError(t, gw.Save(ctx, good))

	tests := []struct {
		name   string
		mutate func(*domain.Snapshot)
	}{
		{"name", func(s *domain.Snapshot) { s.Recipes[0].Name = "caf\xe9" }},
		{"ingredient", func(s *domain.Snapshot) { s.Recipes[0].Ingredients["cr\xe8me"] = "1 cup" }},
		{"tag", func(s *domain.Snapshot) { s.Recipes[1].Tags = append(s.Recipes[1].Tags, "\xff") }},
		{"meal", func(s *domain.Snapshot) { s.MealPlan.AddMeal(time.Now(), "dinner", "id\xff") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := good.Clone()
			tt.mutate(bad)
			err := gw.Save(ctx, bad)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not valid UTF-8")

			got, err := gw.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, good, got)
		})
	}
}

func TestYAMLAndSQLiteKeepRawBytes(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways(t) {
		if name == "json" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			snap := fakeSnapshot(9, 1)
			snap.Recipes[0].Name = "caf\xe9"
			require.NoError(t, gw.Save(ctx, snap))

			got, err := gw.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "caf\xe9", got.Recipes[0].Name)
		})
	}
}

func TestSQLiteRetriesFailedInit(t *testing.T) {
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	// A regular file where the database directory should be.
	blocker := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	db, err := NewSQLite(filepath.Join(blocker, "book.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Load(ctx)
	require.ErrorIs(t, err, domain.ErrCorruptSnapshot)
	require.Error(t, db.Save(ctx, fakeSnapshot(1, 1)))

	require.NoError(t, os.Remove(blocker))
	want := fakeSnapshot(2, 2)
	require.NoError(t, db.Save(ctx, want))

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
