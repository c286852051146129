package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DetectBackend infers a backend from the file extension. Unknown
// extensions default to JSON.
func DetectBackend(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return BackendYAML
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	default:
		return BackendJSON
	}
}

// Open creates the gateway for backend at path. An empty backend is
// inferred from path. The SQLite gateway must be closed by the caller.
func Open(backend, path string, log *logger.Logger) (domain.SnapshotGateway, error) {
	if backend == "" {
		backend = DetectBackend(path)
	}
	log.Debug("opening %s storage at %s", backend, path)

	switch strings.ToLower(backend) {
	case BackendJSON:
		return NewJSONFile(path, log), nil
	case BackendYAML, "yml":
		return NewYAMLFile(path, log), nil
	case BackendSQLite:
		db, err := NewSQLite(path, log)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendMemory:
		return NewMemoryGateway(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, backend)
	}
}
