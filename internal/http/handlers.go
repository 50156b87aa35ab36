package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"verkskra/internal/core"
	"verkskra/internal/importer"
	"verkskra/internal/ledger"
)

const maxImportSize = 1 << 20 // 1 MiB is plenty for an export document

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleIndex renders the project list, or the shared read-only invoice when
// the v query parameter selects a project.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if projectID := strings.TrimSpace(r.URL.Query().Get("v")); projectID != "" {
		s.handlePublicInvoice(w, r, projectID)
		return
	}

	s.render(w, r, "index.html", newIndexView(s.store.Projects()))
}

// handlePublicInvoice serves the shareable invoice from the remote
// collaborator's snapshot. The local ledger is deliberately not consulted:
// the link must show what the recipient's copy of the data says.
func (s *Server) handlePublicInvoice(w http.ResponseWriter, r *http.Request, projectID string) {
	data, ok := s.snapshotCache.Get("all")
	if !ok {
		snapshot, err := s.mirror.GetAll(r.Context())
		if err != nil {
			slog.WarnContext(r.Context(), "Remote snapshot unavailable", "error", err)
			s.render(w, r, "public_invoice.html", publicInvoiceView{
				Message: "Ekki tókst að sækja gögn. Reyndu aftur síðar.",
			})
			return
		}
		s.snapshotCache.Set("all", snapshot)
		data = snapshot
	}

	project, found := projectFromSnapshot(data, projectID)
	if !found {
		s.render(w, r, "public_invoice.html", publicInvoiceView{
			Message: "Verkefni fannst ekki.",
		})
		return
	}

	s.render(w, r, "public_invoice.html", publicInvoiceView{
		Found:   true,
		Invoice: newInvoiceView(project),
	})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		http.Error(w, "Ógild beiðni", http.StatusBadRequest)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	client := sanitizeInput(r.Form.Get("client"))
	address := sanitizeInput(r.Form.Get("address"))
	rate := core.ParseAmount(r.Form.Get("hourlyRate"))

	project, err := s.store.AddProject(r.Context(), name, client, address, rate)
	if err != nil {
		if errors.Is(err, core.ErrEmptyDraft) || errors.Is(err, core.ErrNegativeRate) {
			http.Error(w, "Sláðu inn heiti eða verkkaupa og gilt tímagjald", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Ekki tókst að stofna verkefni", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/projects/"+project.ID, http.StatusSeeOther)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.store.Project(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	s.render(w, r, "project.html", newProjectView(project))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ógild beiðni", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	patch := ledger.ProjectPatch{
		Name:       sanitizeInput(r.Form.Get("name")),
		Client:     sanitizeInput(r.Form.Get("client")),
		Address:    sanitizeInput(r.Form.Get("address")),
		HourlyRate: core.ParseAmount(r.Form.Get("hourlyRate")),
	}

	if err := s.store.UpdateProject(r.Context(), id, patch); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleImport applies a pasted JSON export to the project. Parse failures
// surface as one message on the detail screen and nothing is applied.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	project, err := s.store.Project(id)
	if err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ógild beiðni", http.StatusBadRequest)
		return
	}

	payload, err := importer.Parse([]byte(r.Form.Get("payload")))
	if err != nil {
		view := newProjectView(project)
		view.ImportError = "Villa í JSON sniði"
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "project.html", view)
		return
	}

	if err := s.store.ImportPayload(r.Context(), id, payload); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}

	project, _ = s.store.Project(id)
	view := newProjectView(project)
	view.ImportCount = len(payload.Materials) + len(payload.Work)
	s.render(w, r, "project.html", view)
}

func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request) {
	project, err := s.store.Project(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	s.render(w, r, "invoice.html", newInvoiceView(project))
}

func (s *Server) handleAddWorkEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.AddWorkEntry(r.Context(), id); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

func (s *Server) handleUpdateWorkEntry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ógild beiðni", http.StatusBadRequest)
		return
	}

	field, ok := ledger.ParseWorkField(r.Form.Get("field"))
	if !ok {
		http.Error(w, "Óþekktur reitur", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	value := sanitizeInput(r.Form.Get("value"))
	if err := s.store.UpdateWorkEntry(r.Context(), id, r.PathValue("entryID"), field, value); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

func (s *Server) handleDeleteWorkEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteWorkEntry(r.Context(), id, r.PathValue("entryID")); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

func (s *Server) handleAddMaterial(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.AddMaterial(r.Context(), id); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

func (s *Server) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ógild beiðni", http.StatusBadRequest)
		return
	}

	field, ok := ledger.ParseMaterialField(r.Form.Get("field"))
	if !ok {
		http.Error(w, "Óþekktur reitur", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	value := sanitizeInput(r.Form.Get("value"))
	if err := s.store.UpdateMaterial(r.Context(), id, r.PathValue("entryID"), field, value); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

func (s *Server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteMaterial(r.Context(), id, r.PathValue("entryID")); err != nil {
		http.Error(w, "Verkefni fannst ekki", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/projects/"+id, http.StatusSeeOther)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

