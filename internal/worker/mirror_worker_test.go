package worker

import (
	"context"
	"encoding/json"
	"testing"

	"verkskra/internal/amqp"
	"verkskra/internal/core"
	"verkskra/internal/log"
	"verkskra/internal/mirror"
)

type fakeSheet struct {
	projects  map[string]mirror.ProjectRecord
	work      map[string]mirror.WorkEntryRecord
	materials map[string]mirror.MaterialRecord
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{
		projects:  map[string]mirror.ProjectRecord{},
		work:      map[string]mirror.WorkEntryRecord{},
		materials: map[string]mirror.MaterialRecord{},
	}
}

func (f *fakeSheet) UpsertProject(_ context.Context, r mirror.ProjectRecord) error {
	f.projects[r.ID] = r
	return nil
}

func (f *fakeSheet) UpsertWorkEntry(_ context.Context, r mirror.WorkEntryRecord) error {
	f.work[r.ID] = r
	return nil
}

func (f *fakeSheet) UpsertMaterial(_ context.Context, r mirror.MaterialRecord) error {
	f.materials[r.ID] = r
	return nil
}

func (f *fakeSheet) DeleteProject(_ context.Context, id string) error {
	delete(f.projects, id)
	return nil
}

func (f *fakeSheet) DeleteWorkEntry(_ context.Context, id string) error {
	delete(f.work, id)
	return nil
}

func (f *fakeSheet) DeleteMaterial(_ context.Context, id string) error {
	delete(f.materials, id)
	return nil
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHandleMessageSaveAndDelete(t *testing.T) {
	sheet := newFakeSheet()
	w := NewMirrorWorker(sheet, sheet, log.New(log.DefaultConfig()))

	record := mirror.WorkEntryRecord{
		WorkEntry: core.WorkEntry{ID: "w1", Date: "2024-01-15", Hours: 8},
		ProjectID: "p1",
	}
	msg := amqp.NewMirrorMessage(mirror.ActionSaveWorkEntry, "w1", "p1", mustMarshal(t, record))
	if err := w.HandleMessage(msg); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if got := sheet.work["w1"]; got.ProjectID != "p1" || got.Hours != 8 {
		t.Errorf("unexpected upserted record: %+v", got)
	}

	msg = amqp.NewMirrorMessage(mirror.ActionDeleteWorkEntry, "w1", "", nil)
	if err := w.HandleMessage(msg); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if _, ok := sheet.work["w1"]; ok {
		t.Error("expected work entry removed")
	}
}

func TestHandleMessageProjectUpdateUpserts(t *testing.T) {
	sheet := newFakeSheet()
	w := NewMirrorWorker(sheet, sheet, log.New(log.DefaultConfig()))

	record := mirror.ProjectRecord{ID: "p1", Name: "Verk", HourlyRate: 12000}
	for _, action := range []string{mirror.ActionSaveProject, mirror.ActionUpdateProject} {
		msg := amqp.NewMirrorMessage(action, "p1", "p1", mustMarshal(t, record))
		if err := w.HandleMessage(msg); err != nil {
			t.Fatalf("HandleMessage(%s) failed: %v", action, err)
		}
	}
	if len(sheet.projects) != 1 {
		t.Errorf("expected single upserted project, got %d", len(sheet.projects))
	}
}

func TestHandleMessageErrors(t *testing.T) {
	sheet := newFakeSheet()
	w := NewMirrorWorker(sheet, sheet, log.New(log.DefaultConfig()))

	msg := amqp.NewMirrorMessage("compact", "x", "", nil)
	if err := w.HandleMessage(msg); err == nil {
		t.Error("expected error for unknown action")
	}

	msg = amqp.NewMirrorMessage(mirror.ActionSaveMaterial, "m1", "p1", []byte("not json"))
	if err := w.HandleMessage(msg); err == nil {
		t.Error("expected error for malformed payload")
	}
}
