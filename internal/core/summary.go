package core

// Summary holds the derived totals for a project. It is computed on demand
// and never stored.
type Summary struct {
	TotalHours     float64
	TotalMaterials float64
	LaborCost      float64
	TotalCost      float64
}

// Summarize computes the derived totals: labor cost is total hours times the
// hourly rate, total cost is labor plus materials.
func Summarize(p Project) Summary {
	var s Summary
	for _, e := range p.WorkEntries {
		s.TotalHours += e.Hours
	}
	for _, m := range p.Materials {
		s.TotalMaterials += m.Amount
	}
	s.LaborCost = s.TotalHours * p.HourlyRate
	s.TotalCost = s.LaborCost + s.TotalMaterials
	return s
}
