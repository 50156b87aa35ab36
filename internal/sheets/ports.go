// Package sheets defines the ports the mirror worker drives: upserts and
// deletes against the spreadsheet, plus a full read for the public invoice.
package sheets

import (
	"context"

	"verkskra/internal/mirror"
)

// RecordWriter upserts mirrored records into their sheets.
type RecordWriter interface {
	UpsertProject(ctx context.Context, r mirror.ProjectRecord) error
	UpsertWorkEntry(ctx context.Context, r mirror.WorkEntryRecord) error
	UpsertMaterial(ctx context.Context, r mirror.MaterialRecord) error
}

// RecordDeleter removes mirrored records by id.
type RecordDeleter interface {
	DeleteProject(ctx context.Context, id string) error
	DeleteWorkEntry(ctx context.Context, id string) error
	DeleteMaterial(ctx context.Context, id string) error
}

// AllDataReader reads the full spreadsheet snapshot.
type AllDataReader interface {
	ReadAll(ctx context.Context) (*mirror.AllData, error)
}
