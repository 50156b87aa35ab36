package mirror

import (
	"context"

	"verkskra/internal/core"
)

// Noop is the mirror used when syncing is disabled: every write reports
// success without doing anything, so callers need no special casing.
type Noop struct{}

var _ Port = Noop{}

func (Noop) GetAll(context.Context) (*AllData, error) {
	return nil, ErrDisabled
}

func (Noop) SaveProject(context.Context, core.Project) error   { return nil }
func (Noop) UpdateProject(context.Context, core.Project) error { return nil }

func (Noop) SaveWorkEntry(context.Context, string, core.WorkEntry) error {
	return nil
}

func (Noop) SaveMaterial(context.Context, string, core.MaterialEntry) error {
	return nil
}

func (Noop) DeleteProject(context.Context, string) error   { return nil }
func (Noop) DeleteWorkEntry(context.Context, string) error { return nil }
func (Noop) DeleteMaterial(context.Context, string) error  { return nil }
