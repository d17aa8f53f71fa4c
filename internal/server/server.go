// Package server exposes the planner over HTTP for the web client.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"weekly-meal-planner/internal/app"
	"weekly-meal-planner/internal/grid"
	"weekly-meal-planner/internal/plan"
)

// Server routes the planner API.
type Server struct {
	svc            *app.Service
	allowedOrigins []string
}

// New creates a Server around the application service.
func New(svc *app.Service, allowedOrigins []string) *Server {
	return &Server{svc: svc, allowedOrigins: allowedOrigins}
}

// Handler builds the routed handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/data", s.handleGetData).Methods("GET")
	r.HandleFunc("/api/plan/{day}/{categoryId}", s.handleSaveMeal).Methods("PUT")
	r.HandleFunc("/api/plan/copy", s.handleCopy).Methods("POST")
	r.HandleFunc("/api/plan/copy/touch", s.handleTouchCopy).Methods("POST")
	r.HandleFunc("/api/categories", s.handleAddCategory).Methods("POST")
	r.HandleFunc("/api/categories/{id}", s.handleRenameCategory).Methods("PUT")
	r.HandleFunc("/api/categories/{id}", s.handleRemoveCategory).Methods("DELETE")
	r.HandleFunc("/api/shopping-list", s.handleShoppingList).Methods("GET")
	r.HandleFunc("/api/export/pdf", s.handleExportPDF).Methods("GET")
	r.HandleFunc("/api/suggestions", s.handleSuggestions).Methods("POST")
	r.HandleFunc("/api/import", s.handleImport).Methods("POST")
	r.HandleFunc("/api/clear", s.handleClear).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(loggingMiddleware(r))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		log.Printf("%s %s - %d (%v)", r.Method, r.URL.Path, wrapper.statusCode, time.Since(start))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Data())
}

func (s *Server) handleSaveMeal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "day must be a number between 0 and 6")
		return
	}

	var entry plan.MealEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid meal entry: %v", err))
		return
	}

	if err := s.svc.SaveMeal(day, vars["categoryId"], entry); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Data())
}

// handleCopy resolves a mouse drag-and-drop. The client resolved the drop
// cell itself; the server re-validates that the source can be picked up.
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	var req grid.CopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid copy request: %v", err))
		return
	}

	sourceDay, sourceCat, err := plan.ParseKey(req.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid source key: %v", err))
		return
	}
	if _, _, err := plan.ParseKey(req.Target); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid target key: %v", err))
		return
	}

	entry, _ := s.svc.Meal(sourceDay, sourceCat)
	var drag grid.PointerDrag
	if !drag.Start(req.Source, entry) {
		writeJSON(w, http.StatusOK, copyResponse{Applied: false, Data: s.svc.Data()})
		return
	}
	emitted, ok := drag.Drop(req.Target)
	applied := ok && s.svc.CopyMeal(emitted)
	writeJSON(w, http.StatusOK, copyResponse{Applied: applied, Data: s.svc.Data()})
}

type copyResponse struct {
	Applied bool         `json:"applied"`
	Data    plan.AppData `json:"data"`
}

type touchCopyRequest struct {
	Source  string           `json:"source"`
	Regions grid.CellRegions `json:"regions"`
	Moves   []grid.Point     `json:"moves"`
	Release grid.Point       `json:"release"`
}

// handleTouchCopy replays a long-press drag: the client sends the source
// cell, the grid geometry, the finger path and the release point, and the
// gesture is resolved here.
func (s *Server) handleTouchCopy(w http.ResponseWriter, r *http.Request) {
	var req touchCopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid touch copy request: %v", err))
		return
	}

	sourceDay, sourceCat, err := plan.ParseKey(req.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid source key: %v", err))
		return
	}

	entry, _ := s.svc.Meal(sourceDay, sourceCat)
	drag := grid.NewTouchDrag(req.Regions)
	if !drag.Start(req.Source, entry) {
		writeJSON(w, http.StatusOK, copyResponse{Applied: false, Data: s.svc.Data()})
		return
	}
	for _, p := range req.Moves {
		drag.Move(p)
	}
	emitted, ok := drag.End(req.Release)
	if ok {
		// Region keys come from the client; a target that is not a valid
		// cell key must never reach the plan.
		if _, _, err := plan.ParseKey(emitted.Target); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid target key: %v", err))
			return
		}
	}
	applied := ok && s.svc.CopyMeal(emitted)
	writeJSON(w, http.StatusOK, copyResponse{Applied: applied, Data: s.svc.Data()})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	cat := s.svc.AddCategory()
	writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid rename request: %v", err))
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name must not be empty")
		return
	}
	if err := s.svc.RenameCategory(mux.Vars(r)["id"], body.Name); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Data())
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveCategory(mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Data())
}

func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	list := s.svc.ShoppingList()
	if list == nil {
		list = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.ExportPDF()
	if err != nil {
		log.Printf("Failed to export PDF: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to generate document")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="plano-semanal.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Printf("Failed to write PDF response: %v", err)
	}
}

type suggestionsResponse struct {
	Enabled     bool              `json:"enabled"`
	Suggestions []plan.Ingredient `json:"suggestions"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DishName string `json:"dishName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid suggestion request: %v", err))
		return
	}

	resp := suggestionsResponse{Enabled: s.svc.SuggestionsEnabled(), Suggestions: []plan.Ingredient{}}
	if suggestions := s.svc.SuggestIngredients(r.Context(), body.DishName); suggestions != nil {
		resp.Suggestions = suggestions
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid import request: %v", err))
		return
	}
	if body.URL == "" {
		writeError(w, http.StatusBadRequest, "url must not be empty")
		return
	}

	entry, err := s.svc.ImportRecipe(r.Context(), body.URL)
	if err != nil {
		log.Printf("Failed to import recipe from %s: %v", body.URL, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearAll()
	writeJSON(w, http.StatusOK, s.svc.Data())
}
