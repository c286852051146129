package domain

import "context"

// SnapshotGateway loads and saves the whole collection as one snapshot.
// Implementations can be a JSON or YAML file, SQLite, or in-memory.
//
// Load returns an empty snapshot and no error when the backing store does
// not exist yet. Unreadable content is reported with an error wrapping
// ErrCorruptSnapshot. Save overwrites the backing store and must not
// modify the snapshot it is given. Strings must be valid UTF-8; the JSON
// file gateway refuses to save anything else rather than alter it.
type SnapshotGateway interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// CommandParser converts a typed line into a structured command.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}
