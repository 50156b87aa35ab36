// Package mirror defines the outbound port for the optional remote
// spreadsheet mirror, plus its implementations: a no-op for local-only
// operation, a direct Apps Script web-app client, and an AMQP publisher that
// defers the mirroring to the worker.
package mirror

import (
	"context"
	"errors"

	"verkskra/internal/core"
)

// Wire actions understood by the remote collaborator.
const (
	ActionGetAll          = "getAll"
	ActionSaveProject     = "saveProject"
	ActionUpdateProject   = "updateProject"
	ActionSaveWorkEntry   = "saveWorkEntry"
	ActionSaveMaterial    = "saveMaterial"
	ActionDeleteProject   = "deleteProject"
	ActionDeleteWorkEntry = "deleteWorkEntry"
	ActionDeleteMaterial  = "deleteMaterial"
)

var (
	// ErrDisabled is returned by read operations when mirroring is off.
	ErrDisabled = errors.New("remote mirror is disabled")

	// ErrUnsupported is returned by operations an implementation cannot
	// serve (the queue publisher cannot read).
	ErrUnsupported = errors.New("operation not supported by this mirror")
)

// ProjectRecord is the flat wire shape of a project: the nested entry
// collections travel as separate records keyed by projectId.
type ProjectRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Client     string  `json:"client"`
	Address    string  `json:"address"`
	HourlyRate float64 `json:"hourlyRate"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

// WorkEntryRecord is a work entry tagged with its owning project.
type WorkEntryRecord struct {
	core.WorkEntry
	ProjectID string `json:"projectId"`
}

// MaterialRecord is a material entry tagged with its owning project.
type MaterialRecord struct {
	core.MaterialEntry
	ProjectID string `json:"projectId"`
}

// AllData is the remote collaborator's full snapshot, used by the public
// invoice view.
type AllData struct {
	Projects    []ProjectRecord   `json:"projects"`
	WorkEntries []WorkEntryRecord `json:"workEntries"`
	Materials   []MaterialRecord  `json:"materials"`
}

// Port mirrors ledger mutations to the remote collaborator. Implementations
// are best-effort: the ledger never depends on the outcome, and a failure is
// logged and dropped rather than retried.
type Port interface {
	GetAll(ctx context.Context) (*AllData, error)
	SaveProject(ctx context.Context, p core.Project) error
	UpdateProject(ctx context.Context, p core.Project) error
	SaveWorkEntry(ctx context.Context, projectID string, e core.WorkEntry) error
	SaveMaterial(ctx context.Context, projectID string, m core.MaterialEntry) error
	DeleteProject(ctx context.Context, id string) error
	DeleteWorkEntry(ctx context.Context, id string) error
	DeleteMaterial(ctx context.Context, id string) error
}

// RecordFromProject flattens a project for the wire.
func RecordFromProject(p core.Project) ProjectRecord {
	return ProjectRecord{
		ID:         p.ID,
		Name:       p.Name,
		Client:     p.Client,
		Address:    p.Address,
		HourlyRate: p.HourlyRate,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}
