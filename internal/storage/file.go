package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotGateway = (*FileStore)(nil)

// codec turns a snapshot document into bytes and back.
type codec struct {
	name      string
	marshal   func(snapshotDoc) ([]byte, error)
	unmarshal func([]byte, *snapshotDoc) error
}

var jsonCodec = codec{
	name: "json",
	marshal: func(doc snapshotDoc) ([]byte, error) {
		// encoding/json would silently replace invalid bytes with U+FFFD.
		if err := checkUTF8(doc); err != nil {
			return nil, err
		}
		return json.MarshalIndent(doc, "", "  ")
	},
	unmarshal: func(data []byte, doc *snapshotDoc) error {
		return json.Unmarshal(data, doc)
	},
}

var yamlCodec = codec{
	name: "yaml",
	marshal: func(doc snapshotDoc) ([]byte, error) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
	unmarshal: func(data []byte, doc *snapshotDoc) error {
		return yaml.Unmarshal(data, doc)
	},
}

// checkUTF8 reports the first string in doc that is not valid UTF-8.
func checkUTF8(doc snapshotDoc) error {
	bad := func(field, value string) error {
		return fmt.Errorf("%s %q is not valid UTF-8", field, value)
	}
	for _, r := range doc.Recipes {
		for field, v := range map[string]string{"id": r.ID, "name": r.Name, "category": r.Category} {
			if !utf8.ValidString(v) {
				return bad("recipe "+field, v)
			}
		}
		for k, v := range r.Ingredients {
			if !utf8.ValidString(k) || !utf8.ValidString(v) {
				return bad("ingredient", k+": "+v)
			}
		}
		for _, v := range r.Instructions {
			if !utf8.ValidString(v) {
				return bad("instruction", v)
			}
		}
		for _, v := range r.Tags {
			if !utf8.ValidString(v) {
				return bad("tag", v)
			}
		}
	}
	for date, day := range doc.MealPlan.Meals {
		for slot, id := range day {
			if !utf8.ValidString(date) || !utf8.ValidString(slot) || !utf8.ValidString(id) {
				return bad("meal", date+"/"+slot+"/"+id)
			}
		}
	}
	return nil
}

// FileStore keeps the whole snapshot in a single JSON or YAML document.
type FileStore struct {
	path  string
	codec codec
	log   *logger.Logger
}

// NewJSONFile creates a gateway backed by a JSON document at path.
func NewJSONFile(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, codec: jsonCodec, log: log}
}

// NewYAMLFile creates a gateway backed by a YAML document at path.
func NewYAMLFile(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, codec: yamlCodec, log: log}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Load reads the snapshot. A missing file yields an empty snapshot.
func (f *FileStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Debug("no data file at %s, starting empty", f.path)
		return domain.EmptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrCorruptSnapshot, f.path)
	}

	var doc snapshotDoc
	if err := f.codec.unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding %s %s: %v", domain.ErrCorruptSnapshot, f.codec.name, f.path, err)
	}
	snap, err := fromDoc(doc)
	if err != nil {
		return nil, err
	}
	f.log.Info("loaded %d recipes from %s", len(snap.Recipes), f.path)
	return snap, nil
}

// Save overwrites the file with the full snapshot.
func (f *FileStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := f.codec.marshal(toDoc(snapshot))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.codec.name, err)
	}
	if err := writeFileAtomic(f.path, data); err != nil {
		return err
	}
	f.log.Debug("saved %d recipes to %s", len(snapshot.Recipes), f.path)
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path, so readers never observe a half-written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
