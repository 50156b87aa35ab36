package importer

import (
	"errors"
	"testing"

	"verkskra/internal/core"
)

func TestParseIcelandicKeys(t *testing.T) {
	raw := []byte(`{
		"efni": [{"dags": "2024-01-10", "heiti": "Flísar", "magn": "10 m2", "verd": 50000}],
		"vinna": [{"dags": "2024-01-15", "stundir": 8}]
	}`)

	payload, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(payload.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(payload.Materials))
	}
	m := payload.Materials[0]
	if m.ID == "" {
		t.Error("expected generated material id")
	}
	if m.Name != "Flísar" || m.Quantity != "10 m2" || m.Amount != 50000 {
		t.Errorf("unexpected material: %+v", m)
	}
	if m.Date != "2024-01-10" {
		t.Errorf("expected date 2024-01-10, got %s", m.Date)
	}

	if len(payload.Work) != 1 {
		t.Fatalf("expected 1 work entry, got %d", len(payload.Work))
	}
	w := payload.Work[0]
	if w.Date != "2024-01-15" {
		t.Errorf("expected date 2024-01-15, got %s", w.Date)
	}
	if w.Hours != 8 {
		t.Errorf("expected explicit hours 8, got %v", w.Hours)
	}
	if w.StartTime != "08:00" || w.EndTime != "16:00" {
		t.Errorf("expected default times, got %s-%s", w.StartTime, w.EndTime)
	}
}

func TestParseEnglishAlternates(t *testing.T) {
	raw := []byte(`{
		"materials": [{"date": "2024-02-01", "name": "Paint", "quantity": "4 l", "amount": "1.200,50"}],
		"work-sessions": [{"date": "2024-02-02", "start": "09:00", "end": "17:30", "notes": "Painting"}]
	}`)

	payload, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(payload.Materials) != 1 || len(payload.Work) != 1 {
		t.Fatalf("expected 1 material and 1 work entry, got %d/%d", len(payload.Materials), len(payload.Work))
	}
	if payload.Materials[0].Amount != 1200.50 {
		t.Errorf("expected parsed string amount 1200.50, got %v", payload.Materials[0].Amount)
	}
	w := payload.Work[0]
	if w.Hours != 8.5 {
		t.Errorf("expected computed hours 8.5, got %v", w.Hours)
	}
	if w.Notes != "Painting" {
		t.Errorf("expected notes, got %q", w.Notes)
	}
}

func TestParseIcelandicKeyWins(t *testing.T) {
	raw := []byte(`{"efni": [{"heiti": "Rör", "name": "Pipe", "verd": 100}]}`)

	payload, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if payload.Materials[0].Name != "Rör" {
		t.Errorf("expected Icelandic key to win, got %q", payload.Materials[0].Name)
	}
}

func TestParseDefaultsMissingFields(t *testing.T) {
	raw := []byte(`{"vinna": [{}], "efni": [{}]}`)

	payload, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	w := payload.Work[0]
	if w.Date != core.TodayDate() {
		t.Errorf("expected today's date, got %s", w.Date)
	}
	if w.StartTime != "08:00" || w.EndTime != "16:00" {
		t.Errorf("expected 08:00-16:00 defaults, got %s-%s", w.StartTime, w.EndTime)
	}
	if w.Hours != 8 {
		t.Errorf("expected 8 hours from default times, got %v", w.Hours)
	}

	m := payload.Materials[0]
	if m.Name != "" || m.Quantity != "" || m.Amount != 0 {
		t.Errorf("expected empty material defaults, got %+v", m)
	}
	if m.Date != core.TodayDate() {
		t.Errorf("expected today's date, got %s", m.Date)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed JSON", `{"efni": [`},
		{"array document", `[1, 2, 3]`},
		{"non-array section", `{"vinna": {"dags": "2024-01-01"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestParseEmptyObject(t *testing.T) {
	payload, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !payload.Empty() {
		t.Errorf("expected empty payload, got %+v", payload)
	}
}
