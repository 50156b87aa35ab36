package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"verkskra/internal/amqp"
	"verkskra/internal/core"
	"verkskra/internal/log"
)

// Publisher is the slice of the AMQP client the queue mirror needs.
type Publisher interface {
	PublishMirror(ctx context.Context, msg *amqp.MirrorMessage) error
}

// Queue mirrors mutations by publishing them to the mirror queue; the worker
// replays them against the spreadsheet. Reads are not available in this mode,
// so the public invoice view degrades to its error state.
type Queue struct {
	pub    Publisher
	logger *log.Logger
}

var _ Port = (*Queue)(nil)

func NewQueue(pub Publisher, logger *log.Logger) *Queue {
	return &Queue{pub: pub, logger: logger.WithComponent(log.ComponentMirror)}
}

func (q *Queue) publish(ctx context.Context, action, entityID, projectID string, record any) error {
	var payload []byte
	if record != nil {
		var err error
		payload, err = json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", action, err)
		}
	}
	if err := q.pub.PublishMirror(ctx, amqp.NewMirrorMessage(action, entityID, projectID, payload)); err != nil {
		q.logger.WarnContext(ctx, "Mirror publish failed", log.FieldAction, action, log.FieldError, err)
		return err
	}
	return nil
}

func (q *Queue) GetAll(context.Context) (*AllData, error) {
	return nil, ErrUnsupported
}

func (q *Queue) SaveProject(ctx context.Context, p core.Project) error {
	return q.publish(ctx, ActionSaveProject, p.ID, p.ID, RecordFromProject(p))
}

func (q *Queue) UpdateProject(ctx context.Context, p core.Project) error {
	return q.publish(ctx, ActionUpdateProject, p.ID, p.ID, RecordFromProject(p))
}

func (q *Queue) SaveWorkEntry(ctx context.Context, projectID string, e core.WorkEntry) error {
	return q.publish(ctx, ActionSaveWorkEntry, e.ID, projectID, WorkEntryRecord{WorkEntry: e, ProjectID: projectID})
}

func (q *Queue) SaveMaterial(ctx context.Context, projectID string, m core.MaterialEntry) error {
	return q.publish(ctx, ActionSaveMaterial, m.ID, projectID, MaterialRecord{MaterialEntry: m, ProjectID: projectID})
}

func (q *Queue) DeleteProject(ctx context.Context, id string) error {
	return q.publish(ctx, ActionDeleteProject, id, id, nil)
}

func (q *Queue) DeleteWorkEntry(ctx context.Context, id string) error {
	return q.publish(ctx, ActionDeleteWorkEntry, id, "", nil)
}

func (q *Queue) DeleteMaterial(ctx context.Context, id string) error {
	return q.publish(ctx, ActionDeleteMaterial, id, "", nil)
}
