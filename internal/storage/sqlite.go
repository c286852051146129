package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotGateway = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS recipes (
	id           TEXT PRIMARY KEY,
	position     INTEGER NOT NULL,
	name         TEXT NOT NULL,
	ingredients  TEXT NOT NULL DEFAULT '{}',
	instructions TEXT NOT NULL DEFAULT '[]',
	prep_time    INTEGER NOT NULL,
	cook_time    INTEGER NOT NULL,
	servings     INTEGER NOT NULL,
	category     TEXT NOT NULL,
	created_date TEXT NOT NULL,
	rating       INTEGER NOT NULL DEFAULT 0,
	tags         TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS meals (
	date      TEXT NOT NULL,
	slot      TEXT NOT NULL,
	recipe_id TEXT NOT NULL,
	PRIMARY KEY (date, slot)
);`

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// SQLiteStore keeps the snapshot in an SQLite database. Meal plan recipe IDs
// are plain columns, not foreign keys: dangling references are allowed.
type SQLiteStore struct {
	path string
	db   *sql.DB
	log  *logger.Logger

	initMu sync.Mutex
	ready  bool
}

// NewSQLite prepares a gateway for the database at path. The file is not
// touched until the first Load or Save.
func NewSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	return &SQLiteStore{path: path, db: db, log: log}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// init applies pragmas and creates the schema. A failed attempt is retried
// on the next call.
func (s *SQLiteStore) init(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.ready {
		return nil
	}
	if s.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(s.path), err)
		}
	}
	for _, p := range sqlitePragmas {
		if _, err := s.db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	s.ready = true
	s.log.Debug("sqlite ready at %s", s.path)
	return nil
}

// Load reads every recipe in insertion order and the whole meal plan.
// A fresh database yields an empty snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := s.init(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}

	snap := domain.EmptySnapshot()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, ingredients, instructions, prep_time, cook_time,
		       servings, category, created_date, rating, tags
		FROM recipes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recipes: %v", domain.ErrCorruptSnapshot, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rd                              recipeDoc
			ingredients, instructions, tags string
		)
		if err := rows.Scan(&rd.ID, &rd.Name, &ingredients, &instructions,
			&rd.PrepTime, &rd.CookTime, &rd.Servings, &rd.Category,
			&rd.CreatedDate, &rd.Rating, &tags); err != nil {
			return nil, fmt.Errorf("%w: scanning recipe: %v", domain.ErrCorruptSnapshot, err)
		}
		if err := unmarshalColumns(&rd, ingredients, instructions, tags); err != nil {
			return nil, err
		}
		r, err := rd.recipe()
		if err != nil {
			return nil, err
		}
		snap.Recipes = append(snap.Recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading recipes: %v", domain.ErrCorruptSnapshot, err)
	}

	mealRows, err := s.db.QueryContext(ctx, `SELECT date, slot, recipe_id FROM meals`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying meals: %v", domain.ErrCorruptSnapshot, err)
	}
	defer mealRows.Close()

	for mealRows.Next() {
		var date, slot, id string
		if err := mealRows.Scan(&date, &slot, &id); err != nil {
			return nil, fmt.Errorf("%w: scanning meal: %v", domain.ErrCorruptSnapshot, err)
		}
		day, ok := snap.MealPlan.Meals[date]
		if !ok {
			day = make(map[string]string)
			snap.MealPlan.Meals[date] = day
		}
		day[slot] = id
	}
	if err := mealRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading meals: %v", domain.ErrCorruptSnapshot, err)
	}

	s.log.Info("loaded %d recipes from %s", len(snap.Recipes), s.path)
	return snap, nil
}

func unmarshalColumns(rd *recipeDoc, ingredients, instructions, tags string) error {
	if err := json.Unmarshal([]byte(ingredients), &rd.Ingredients); err != nil {
		return fmt.Errorf("%w: recipe %s ingredients: %v", domain.ErrCorruptSnapshot, rd.ID, err)
	}
	if err := json.Unmarshal([]byte(instructions), &rd.Instructions); err != nil {
		return fmt.Errorf("%w: recipe %s instructions: %v", domain.ErrCorruptSnapshot, rd.ID, err)
	}
	if err := json.Unmarshal([]byte(tags), &rd.Tags); err != nil {
		return fmt.Errorf("%w: recipe %s tags: %v", domain.ErrCorruptSnapshot, rd.ID, err)
	}
	return nil
}

// Save replaces every row in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	if err := s.init(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM meals`); err != nil {
		return fmt.Errorf("clearing meals: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("clearing recipes: %w", err)
	}

	doc := toDoc(snapshot)
	for i, rd := range doc.Recipes {
		ingredients, err := json.Marshal(rd.Ingredients)
		if err != nil {
			return fmt.Errorf("encoding recipe %s ingredients: %w", rd.ID, err)
		}
		instructions, err := json.Marshal(rd.Instructions)
		if err != nil {
			return fmt.Errorf("encoding recipe %s instructions: %w", rd.ID, err)
		}
		tags, err := json.Marshal(rd.Tags)
		if err != nil {
			return fmt.Errorf("encoding recipe %s tags: %w", rd.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (id, position, name, ingredients, instructions,
				prep_time, cook_time, servings, category, created_date, rating, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rd.ID, i, rd.Name, string(ingredients), string(instructions),
			rd.PrepTime, rd.CookTime, rd.Servings, rd.Category, rd.CreatedDate,
			rd.Rating, string(tags)); err != nil {
			return fmt.Errorf("inserting recipe %s: %w", rd.ID, err)
		}
	}

	for date, day := range doc.MealPlan.Meals {
		for slot, id := range day {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO meals (date, slot, recipe_id) VALUES (?, ?, ?)`,
				date, slot, id); err != nil {
				return fmt.Errorf("inserting meal %s/%s: %w", date, slot, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Debug("saved %d recipes to %s", len(doc.Recipes), s.path)
	return nil
}
