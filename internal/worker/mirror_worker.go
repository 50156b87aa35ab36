// Package worker replays queued mirror messages against the spreadsheet.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"verkskra/internal/amqp"
	"verkskra/internal/log"
	"verkskra/internal/mirror"
	"verkskra/internal/sheets"
)

// MirrorWorker applies one queued mutation at a time to the spreadsheet.
type MirrorWorker struct {
	writer  sheets.RecordWriter
	deleter sheets.RecordDeleter
	logger  *log.Logger
}

func NewMirrorWorker(writer sheets.RecordWriter, deleter sheets.RecordDeleter, logger *log.Logger) *MirrorWorker {
	return &MirrorWorker{
		writer:  writer,
		deleter: deleter,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// HandleMessage dispatches a mirror message to the matching spreadsheet
// operation. Unknown actions fail so they surface in the worker logs.
func (w *MirrorWorker) HandleMessage(msg *amqp.MirrorMessage) error {
	ctx := context.Background()

	w.logger.InfoContext(ctx, "Handling mirror message",
		log.FieldAction, msg.Action, log.FieldEntryID, msg.EntityID)

	switch msg.Action {
	case mirror.ActionSaveProject, mirror.ActionUpdateProject:
		var record mirror.ProjectRecord
		if err := json.Unmarshal(msg.Payload, &record); err != nil {
			return fmt.Errorf("decode project record: %w", err)
		}
		return w.writer.UpsertProject(ctx, record)

	case mirror.ActionSaveWorkEntry:
		var record mirror.WorkEntryRecord
		if err := json.Unmarshal(msg.Payload, &record); err != nil {
			return fmt.Errorf("decode work entry record: %w", err)
		}
		return w.writer.UpsertWorkEntry(ctx, record)

	case mirror.ActionSaveMaterial:
		var record mirror.MaterialRecord
		if err := json.Unmarshal(msg.Payload, &record); err != nil {
			return fmt.Errorf("decode material record: %w", err)
		}
		return w.writer.UpsertMaterial(ctx, record)

	case mirror.ActionDeleteProject:
		return w.deleter.DeleteProject(ctx, msg.EntityID)

	case mirror.ActionDeleteWorkEntry:
		return w.deleter.DeleteWorkEntry(ctx, msg.EntityID)

	case mirror.ActionDeleteMaterial:
		return w.deleter.DeleteMaterial(ctx, msg.EntityID)

	default:
		return fmt.Errorf("unknown mirror action: %s", msg.Action)
	}
}
