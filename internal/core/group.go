package core

import "sort"

// Dated is satisfied by both entry kinds so sorting and grouping work over
// either collection.
type Dated interface {
	EntryDate() string
}

func (e WorkEntry) EntryDate() string     { return e.Date }
func (m MaterialEntry) EntryDate() string { return m.Date }

// DateGroup is one bucket of entries sharing a calendar date, preserving the
// insertion order of its members.
type DateGroup[E Dated] struct {
	Date  string
	Items []E
}

// DayHours is one invoice line: a calendar date and the summed hours worked
// on it.
type DayHours struct {
	Date  string
	Hours float64
}

// SortByDate returns a copy sorted ascending by calendar date. The sort is
// stable: entries sharing a date keep their relative order. ISO date strings
// compare lexicographically, so no parsing is needed.
func SortByDate[E Dated](items []E) []E {
	out := make([]E, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EntryDate() < out[j].EntryDate()
	})
	return out
}

// GroupByDate partitions entries into per-date buckets, ordered newest date
// first. This is the ordering of the project detail screens; the invoice uses
// GroupWorkHours, which runs oldest first. An entry without a date counts as
// today.
func GroupByDate[E Dated](items []E) []DateGroup[E] {
	today := TodayDate()
	byDate := make(map[string]int)
	var groups []DateGroup[E]
	for _, item := range items {
		date := item.EntryDate()
		if date == "" {
			date = today
		}
		idx, ok := byDate[date]
		if !ok {
			idx = len(groups)
			byDate[date] = idx
			groups = append(groups, DateGroup[E]{Date: date})
		}
		groups[idx].Items = append(groups[idx].Items, item)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}

// GroupWorkHours collapses work entries into one summed-hours line per date,
// ordered oldest date first. Used only for invoice rendering.
func GroupWorkHours(entries []WorkEntry) []DayHours {
	today := TodayDate()
	byDate := make(map[string]int)
	var lines []DayHours
	for _, e := range entries {
		date := e.Date
		if date == "" {
			date = today
		}
		idx, ok := byDate[date]
		if !ok {
			idx = len(lines)
			byDate[date] = idx
			lines = append(lines, DayHours{Date: date})
		}
		lines[idx].Hours += e.Hours
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date < lines[j].Date
	})
	return lines
}
