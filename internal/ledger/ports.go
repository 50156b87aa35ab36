package ledger

import (
	"context"

	"verkskra/internal/core"
)

// PersistencePort abstracts the local storage backing the ledger: the whole
// project collection is read once at startup and rewritten after mutations,
// last-writer-wins.
type PersistencePort interface {
	Load(ctx context.Context) ([]core.Project, error)
	Save(ctx context.Context, projects []core.Project) error
}
