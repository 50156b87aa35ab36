package http

import (
	"html/template"

	"verkskra/internal/core"
	"verkskra/internal/mirror"
)

// templateFuncs exposes the core formatting helpers to the templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatCurrency": core.FormatCurrency,
		"formatDate":     core.FormatDate,
		"formatTime":     core.FormatTime,
		"formatHours":    core.FormatHours,
	}
}

// projectCard is one row of the project list.
type projectCard struct {
	Project core.Project
	Summary core.Summary
}

type indexView struct {
	Projects []projectCard
}

// projectView is the detail screen: entries grouped by date, newest first.
type projectView struct {
	Project        core.Project
	Summary        core.Summary
	WorkGroups     []core.DateGroup[core.WorkEntry]
	MaterialGroups []core.DateGroup[core.MaterialEntry]
	ImportError    string
	ImportCount    int
}

// invoiceView is the printable invoice: work collapsed to day totals,
// materials in date order.
type invoiceView struct {
	Project   core.Project
	Summary   core.Summary
	DayHours  []core.DayHours
	Materials []core.MaterialEntry
	Today     string
}

// publicInvoiceView renders a shared invoice from the remote snapshot.
type publicInvoiceView struct {
	Found   bool
	Message string
	Invoice invoiceView
}

func newIndexView(projects []core.Project) indexView {
	view := indexView{Projects: make([]projectCard, 0, len(projects))}
	// Newest projects first
	for i := len(projects) - 1; i >= 0; i-- {
		view.Projects = append(view.Projects, projectCard{
			Project: projects[i],
			Summary: core.Summarize(projects[i]),
		})
	}
	return view
}

func newProjectView(p core.Project) projectView {
	return projectView{
		Project:        p,
		Summary:        core.Summarize(p),
		WorkGroups:     core.GroupByDate(p.WorkEntries),
		MaterialGroups: core.GroupByDate(p.Materials),
	}
}

func newInvoiceView(p core.Project) invoiceView {
	return invoiceView{
		Project:   p,
		Summary:   core.Summarize(p),
		DayHours:  core.GroupWorkHours(p.WorkEntries),
		Materials: core.SortByDate(p.Materials),
		Today:     core.TodayDate(),
	}
}

// projectFromSnapshot reassembles one project from the remote collaborator's
// flat records.
func projectFromSnapshot(data *mirror.AllData, projectID string) (core.Project, bool) {
	var project core.Project
	found := false
	for _, r := range data.Projects {
		if r.ID == projectID {
			project = core.Project{
				ID:         r.ID,
				Name:       r.Name,
				Client:     r.Client,
				Address:    r.Address,
				HourlyRate: r.HourlyRate,
				Status:     r.Status,
				CreatedAt:  r.CreatedAt,
			}
			found = true
			break
		}
	}
	if !found {
		return core.Project{}, false
	}

	for _, r := range data.WorkEntries {
		if r.ProjectID == projectID {
			project.WorkEntries = append(project.WorkEntries, r.WorkEntry)
		}
	}
	for _, r := range data.Materials {
		if r.ProjectID == projectID {
			project.Materials = append(project.Materials, r.MaterialEntry)
		}
	}
	return project, true
}
