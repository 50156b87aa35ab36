package core

import "testing"

func TestSummarize(t *testing.T) {
	p := Project{
		HourlyRate: 4500,
		WorkEntries: []WorkEntry{
			{Hours: 8.5},
			{Hours: 3.25},
		},
		Materials: []MaterialEntry{
			{Amount: 50000},
			{Amount: 1250},
		},
	}
	s := Summarize(p)
	if s.TotalHours != 11.75 {
		t.Errorf("TotalHours = %v, want 11.75", s.TotalHours)
	}
	if s.TotalMaterials != 51250 {
		t.Errorf("TotalMaterials = %v, want 51250", s.TotalMaterials)
	}
	if s.LaborCost != s.TotalHours*p.HourlyRate {
		t.Errorf("LaborCost = %v, want %v", s.LaborCost, s.TotalHours*p.HourlyRate)
	}
	if s.TotalCost != s.LaborCost+s.TotalMaterials {
		t.Errorf("TotalCost = %v, want %v", s.TotalCost, s.LaborCost+s.TotalMaterials)
	}
}

func TestSummarizeEmptyProject(t *testing.T) {
	s := Summarize(Project{HourlyRate: 4500})
	if s.TotalHours != 0 || s.TotalMaterials != 0 || s.LaborCost != 0 || s.TotalCost != 0 {
		t.Errorf("empty project summary should be all zero, got %+v", s)
	}
}

func TestSortByDateStable(t *testing.T) {
	entries := []WorkEntry{
		{ID: "c", Date: "2024-02-01"},
		{ID: "a", Date: "2024-01-15"},
		{ID: "b", Date: "2024-01-15"},
	}
	sorted := SortByDate(entries)
	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if sorted[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, sorted[i].ID, id)
		}
	}
	// Input must be untouched.
	if entries[0].ID != "c" {
		t.Error("SortByDate mutated its input")
	}
}

func TestGroupByDateNewestFirst(t *testing.T) {
	entries := []MaterialEntry{
		{ID: "m1", Date: "2024-01-15"},
		{ID: "m2", Date: "2024-02-01"},
		{ID: "m3", Date: "2024-01-15"},
	}
	groups := GroupByDate(entries)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Date != "2024-02-01" || groups[1].Date != "2024-01-15" {
		t.Errorf("groups out of order: %s, %s", groups[0].Date, groups[1].Date)
	}
	if len(groups[1].Items) != 2 || groups[1].Items[0].ID != "m1" || groups[1].Items[1].ID != "m3" {
		t.Errorf("bucket did not preserve insertion order: %+v", groups[1].Items)
	}
}

func TestGroupByDateDefaultsToToday(t *testing.T) {
	groups := GroupByDate([]WorkEntry{{ID: "w1"}})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Date != TodayDate() {
		t.Errorf("undated entry bucketed under %q, want today", groups[0].Date)
	}
}

func TestGroupWorkHours(t *testing.T) {
	entries := []WorkEntry{
		{Date: "2024-02-01", Hours: 3},
		{Date: "2024-01-15", Hours: 2},
		{Date: "2024-02-01", Hours: 5},
	}
	lines := GroupWorkHours(entries)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	// Invoice lines run oldest first.
	if lines[0].Date != "2024-01-15" || lines[0].Hours != 2 {
		t.Errorf("line 0 = %+v", lines[0])
	}
	if lines[1].Date != "2024-02-01" || lines[1].Hours != 8 {
		t.Errorf("line 1 = %+v, want 2024-02-01 with 8 hours", lines[1])
	}
}
