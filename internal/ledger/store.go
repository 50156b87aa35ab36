// Package ledger holds the authoritative in-memory project collection and
// applies every mutation: validate, mutate, persist locally, then mirror
// remotely best-effort.
package ledger

import (
	"context"
	"errors"
	"sync"

	"verkskra/internal/core"
	"verkskra/internal/importer"
	"verkskra/internal/log"
	"verkskra/internal/mirror"
)

// ErrProjectNotFound is returned when a project id does not exist in the
// collection. Unknown entry ids inside an existing project are a silent
// no-op instead, matching the forgiving update semantics of the views.
var ErrProjectNotFound = errors.New("project not found")

// ProjectPatch carries the mutable project fields for an update.
type ProjectPatch struct {
	Name       string
	Client     string
	Address    string
	HourlyRate float64
}

// Store owns the project collection for the process lifetime. All methods
// are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	projects []core.Project

	persist PersistencePort
	mirror  mirror.Port
	logger  *log.Logger
}

func NewStore(persist PersistencePort, m mirror.Port, logger *log.Logger) *Store {
	return &Store{
		persist: persist,
		mirror:  m,
		logger:  logger.WithComponent(log.ComponentLedger),
	}
}

// Load reads the persisted collection. A load failure leaves the ledger
// empty rather than failing startup; the user keeps working and the next
// successful save rewrites the state.
func (s *Store) Load(ctx context.Context) error {
	projects, err := s.persist.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Could not load persisted projects, starting empty",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		projects = nil
	}

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Ledger loaded",
		log.FieldOperation, log.OpLoad, log.FieldCount, len(projects))
	return nil
}

// Projects returns a copy of the full collection in storage order.
func (s *Store) Projects() []core.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (core.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Project{}, ErrProjectNotFound
}

// AddProject validates the draft and appends a new active project with a
// fresh id, a creation timestamp and empty entry collections.
func (s *Store) AddProject(ctx context.Context, name, client, address string, hourlyRate float64) (core.Project, error) {
	if err := core.ValidateDraft(name, client, hourlyRate); err != nil {
		return core.Project{}, err
	}

	project := core.Project{
		ID:         core.GenerateID(),
		Name:       name,
		Client:     client,
		Address:    address,
		HourlyRate: hourlyRate,
		Status:     core.StatusActive,
		CreatedAt:  core.NowISO(),
	}

	s.mu.Lock()
	s.projects = append(s.projects, project)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Project created",
		log.FieldOperation, log.OpCreate, log.FieldProjectID, project.ID)

	s.mirror.SaveProject(ctx, project)
	return project, nil
}

// UpdateProject replaces the mutable fields of the matching project.
func (s *Store) UpdateProject(ctx context.Context, id string, patch ProjectPatch) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}
	p := &s.projects[idx]
	p.Name = patch.Name
	p.Client = patch.Client
	p.Address = patch.Address
	p.HourlyRate = patch.HourlyRate
	updated := *p
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Project updated",
		log.FieldOperation, log.OpUpdate, log.FieldProjectID, id)

	s.mirror.UpdateProject(ctx, updated)
	return nil
}

// DeleteProject removes the project and all its entries. The mirror is told
// about each entry individually because the remote side stores them in
// separate sheets.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}
	removed := s.projects[idx]
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Project deleted",
		log.FieldOperation, log.OpDelete, log.FieldProjectID, id)

	for _, e := range removed.WorkEntries {
		s.mirror.DeleteWorkEntry(ctx, e.ID)
	}
	for _, m := range removed.Materials {
		s.mirror.DeleteMaterial(ctx, m.ID)
	}
	s.mirror.DeleteProject(ctx, id)
	return nil
}

// AddWorkEntry inserts a blank work entry dated today at the head of the
// project's collection, so the newest session is edited first.
func (s *Store) AddWorkEntry(ctx context.Context, projectID string) (core.WorkEntry, error) {
	entry := core.WorkEntry{
		ID:   core.GenerateID(),
		Date: core.TodayDate(),
	}

	s.mu.Lock()
	idx := s.indexLocked(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return core.WorkEntry{}, ErrProjectNotFound
	}
	p := &s.projects[idx]
	p.WorkEntries = append([]core.WorkEntry{entry}, p.WorkEntries...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Work entry added",
		log.FieldOperation, log.OpCreate, log.FieldProjectID, projectID, log.FieldEntryID, entry.ID)

	s.mirror.SaveWorkEntry(ctx, projectID, entry)
	return entry, nil
}

// UpdateWorkEntry sets one field on a work entry. Changing a time bound
// recomputes the derived hours; an unknown entry id changes nothing.
func (s *Store) UpdateWorkEntry(ctx context.Context, projectID, entryID string, field WorkField, value string) error {
	s.mu.Lock()
	idx := s.indexLocked(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}

	p := &s.projects[idx]
	var updated *core.WorkEntry
	for i := range p.WorkEntries {
		if p.WorkEntries[i].ID != entryID {
			continue
		}
		e := &p.WorkEntries[i]
		switch field {
		case WorkFieldDate:
			e.Date = value
		case WorkFieldStartTime:
			e.StartTime = value
			e.Hours = core.CalculateHours(e.StartTime, e.EndTime)
		case WorkFieldEndTime:
			e.EndTime = value
			e.Hours = core.CalculateHours(e.StartTime, e.EndTime)
		case WorkFieldNotes:
			e.Notes = value
		}
		updated = e
		break
	}
	if updated == nil {
		s.mu.Unlock()
		return nil
	}
	entry := *updated
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.mirror.SaveWorkEntry(ctx, projectID, entry)
	return nil
}

// DeleteWorkEntry removes a work entry; unknown ids are a no-op.
func (s *Store) DeleteWorkEntry(ctx context.Context, projectID, entryID string) error {
	s.mu.Lock()
	idx := s.indexLocked(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}

	p := &s.projects[idx]
	removed := false
	for i := range p.WorkEntries {
		if p.WorkEntries[i].ID == entryID {
			p.WorkEntries = append(p.WorkEntries[:i], p.WorkEntries[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.mu.Unlock()
		return nil
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Work entry deleted",
		log.FieldOperation, log.OpDelete, log.FieldProjectID, projectID, log.FieldEntryID, entryID)

	s.mirror.DeleteWorkEntry(ctx, entryID)
	return nil
}

// AddMaterial inserts a blank material line dated today at the head of the
// project's collection.
func (s *Store) AddMaterial(ctx context.Context, projectID string) (core.MaterialEntry, error) {
	entry := core.MaterialEntry{
		ID:   core.GenerateID(),
		Date: core.TodayDate(),
	}

	s.mu.Lock()
	idx := s.indexLocked(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return core.MaterialEntry{}, ErrProjectNotFound
	}
	p := &s.projects[idx]
	p.Materials = append([]core.MaterialEntry{entry}, p.Materials...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Material added",
		log.FieldOperation, log.OpCreate, log.FieldProjectID, projectID, log.FieldEntryID, entry.ID)

	s.mirror.SaveMaterial(ctx, projectID, entry)
	return entry, nil
}

// UpdateMaterial sets one field on a material entry. Amount input is coerced
// leniently, ending up 0 when it does not parse.
func (s *Store) UpdateMaterial(ctx context.Context, projectID, entryID string, field MaterialField, value string) error {
	s.mu.Lock()
	idx := s.indexLocked(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}

	p := &s.projects[idx]
	var updated *core.MaterialEntry
	for i := range p.Materials {
		if p.Materials[i].ID != entryID {
			continue
		}
		m := &p.Materials[i]
		switch field {
		case MaterialFieldDate:
			m.Date = value
		case MaterialFieldName:
			m.Name = value
		case MaterialFieldQuantity:
			m.Quantity = value
		case MaterialFieldAmount:
			m.Amount = core.ParseAmount(value)
		}
		updated = m
		break
	}
	if updated == nil {
		s.mu.Unlock()
		return nil
	}
	entry := *updated
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.mirror.SaveMaterial(ctx, projectID, entry)
	return nil
}

// DeleteMaterial removes a material entry; unknown ids are a no-op.
func (s *Store) DeleteMaterial(ctx context.Context, projectID, entryID string) error {
	s.mu.Lock()
	idx := s.indexLocked(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}

	p := &s.projects[idx]
	removed := false
	for i := range p.Materials {
		if p.Materials[i].ID == entryID {
			p.Materials = append(p.Materials[:i], p.Materials[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.mu.Unlock()
		return nil
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Material deleted",
		log.FieldOperation, log.OpDelete, log.FieldProjectID, projectID, log.FieldEntryID, entryID)

	s.mirror.DeleteMaterial(ctx, entryID)
	return nil
}

// ImportPayload appends every entry from a parsed import document to the
// project in one atomic update with a single persist, then mirrors the
// records one by one.
func (s *Store) ImportPayload(ctx context.Context, projectID string, payload importer.Payload) error {
	s.mu.Lock()
	idx := s.indexLocked(projectID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}
	p := &s.projects[idx]
	p.Materials = append(p.Materials, payload.Materials...)
	p.WorkEntries = append(p.WorkEntries, payload.Work...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Import applied",
		log.FieldOperation, log.OpImport, log.FieldProjectID, projectID,
		log.FieldCount, len(payload.Materials)+len(payload.Work))

	for _, m := range payload.Materials {
		s.mirror.SaveMaterial(ctx, projectID, m)
	}
	for _, e := range payload.Work {
		s.mirror.SaveWorkEntry(ctx, projectID, e)
	}
	return nil
}

// indexLocked returns the index of the project with the given id, or -1.
// Caller must hold the lock.
func (s *Store) indexLocked(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full collection through the persistence port.
// An empty collection is not written, so a fresh session never clobbers
// state that simply has not been loaded. Failures are logged and swallowed;
// the in-memory state stays authoritative. Caller must hold the lock.
func (s *Store) persistLocked(ctx context.Context) {
	if len(s.projects) == 0 {
		return
	}
	snapshot := make([]core.Project, len(s.projects))
	copy(snapshot, s.projects)
	if err := s.persist.Save(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "Could not persist projects",
			log.FieldOperation, log.OpSave, log.FieldError, err)
	}
}
