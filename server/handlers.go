package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/stepboard/models"
)

type entriesResponse struct {
	Entries []models.DisplayEntry `json:"entries"`
	Alert   models.Alert          `json:"alert"`
	Current string                `json:"current"`
	Canvas  models.Canvas         `json:"canvas"`
}

// HTTP handlers
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := indexData{
		Entries: s.vm.Entries(),
		Alert:   s.vm.Alert(),
		Current: s.vm.Current(),
	}
	for _, field := range models.SortFields {
		data.Sorts = append(data.Sorts, sortButton{
			Field: field,
			Label: sortLabels[field],
			Next:  s.vm.NextDirection(field).String(),
		})
	}
	canvas := s.vm.Canvas()
	s.mu.Unlock()

	chart, err := renderChart(generateCanvasChart(canvas))
	if err != nil {
		logrus.Errorf("index: %v", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	data.Chart = template.HTML(chart)

	templ.Handler(indexPage(data)).ServeHTTP(w, r)
}

var sortLabels = map[models.SortField]string{
	models.SortByName:    "Name",
	models.SortByAverage: "Average",
	models.SortByMax:     "Max",
	models.SortByMin:     "Min",
}

func (s *Server) sortHandler(w http.ResponseWriter, r *http.Request) {
	field := models.SortField(chi.URLParam(r, "field"))

	s.mu.Lock()
	err := s.vm.Sort(field)
	s.mu.Unlock()

	if errors.Is(err, models.ErrUnknownField) {
		s.metrics.command("sort_unknown", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.metrics.command("sort_"+string(field), err)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) saveHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	var err error
	if user := r.FormValue("user"); user != "" {
		err = s.vm.Select(user)
	}
	if err == nil {
		err = s.vm.SaveSelected()
	}
	s.mu.Unlock()

	s.metrics.command("save", err)
	if errors.Is(err, models.ErrUnknownUser) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	// a failed save is shown through the alert banner
	if err != nil {
		logrus.Warnf("save: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// drawHandler replaces the multi-selection with the submitted users and draws.
func (s *Server) drawHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.vm.ClearSelected()
	for _, user := range r.Form["user"] {
		if err := s.vm.SetSelected(user, true); err != nil {
			logrus.Warnf("draw: %v", err)
		}
	}
	s.vm.Draw()
	s.mu.Unlock()

	s.metrics.command("draw", nil)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) entriesHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := entriesResponse{
		Entries: s.vm.Entries(),
		Alert:   s.vm.Alert(),
		Current: s.vm.Current(),
		Canvas:  s.vm.Canvas(),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.Errorf("entries: %v", err)
	}
}
