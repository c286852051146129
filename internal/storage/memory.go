package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/mealbook/internal/domain"
	"github.com/hammamikhairi/mealbook/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotGateway = (*MemoryGateway)(nil)

// MemoryGateway keeps the last saved snapshot in memory. Safe for concurrent access.
type MemoryGateway struct {
	mu       sync.RWMutex
	snapshot *domain.Snapshot
	saves    int
	loadErr  error
	saveErr  error
	log      *logger.Logger
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway(log *logger.Logger) *MemoryGateway {
	return &MemoryGateway{log: log}
}

// Load returns a copy of the last saved snapshot, or an empty one.
func (m *MemoryGateway) Load(ctx context.Context) (*domain.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.snapshot == nil {
		return domain.EmptySnapshot(), nil
	}
	m.log.Debug("loading in-memory snapshot (%d recipes)", len(m.snapshot.Recipes))
	return m.snapshot.Clone(), nil
}

// Save stores a copy of snapshot. Overwrites whatever was there.
func (m *MemoryGateway) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshot = snapshot.Clone()
	m.saves++
	m.log.Debug("saved in-memory snapshot #%d (%d recipes)", m.saves, len(snapshot.Recipes))
	return nil
}

// Saves returns how many snapshots were saved successfully.
func (m *MemoryGateway) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Last returns a copy of the last saved snapshot, or nil.
func (m *MemoryGateway) Last() *domain.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.Clone()
}

// FailLoad makes subsequent loads return err. Pass nil to clear.
func (m *MemoryGateway) FailLoad(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSave makes subsequent saves return err. Pass nil to clear.
func (m *MemoryGateway) FailSave(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
