// Package app holds the planner's in-memory state and coordinates the
// other components around it.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"weekly-meal-planner/internal/grid"
	"weekly-meal-planner/internal/importer"
	"weekly-meal-planner/internal/pdf"
	"weekly-meal-planner/internal/plan"
	"weekly-meal-planner/internal/shopping"
	"weekly-meal-planner/internal/store"
	"weekly-meal-planner/internal/suggest"
)

// Service owns the authoritative copy of the weekly plan. Every mutation
// goes through it so the persisted state never lags what clients see.
type Service struct {
	mu       sync.Mutex
	data     plan.AppData
	store    *store.Store
	suggest  *suggest.Service
	importer *importer.Importer
}

// NewService loads the persisted state and wires the optional AI-backed
// helpers. suggestSvc and imp may be nil when no LLM backend is configured.
func NewService(st *store.Store, suggestSvc *suggest.Service, imp *importer.Importer) *Service {
	return &Service{
		data:     st.Load(),
		store:    st,
		suggest:  suggestSvc,
		importer: imp,
	}
}

// Data returns a deep copy of the current state.
func (s *Service) Data() plan.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// SaveMeal stores an entry in the given cell. The entry is stored as-is:
// an empty dish name renders as an empty cell but remains a stored entry,
// and its ingredients still count toward the shopping list.
func (s *Service) SaveMeal(dayIndex int, categoryID string, entry plan.MealEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.CategoryByID(categoryID); !ok {
		return fmt.Errorf("unknown category %q", categoryID)
	}
	if dayIndex < 0 || dayIndex >= len(plan.DaysOfWeek) {
		return fmt.Errorf("day index %d out of range", dayIndex)
	}

	s.data.Plan[plan.Key(dayIndex, categoryID)] = entry
	s.persist()
	return nil
}

// Meal returns the entry in the given cell, if any.
func (s *Service) Meal(dayIndex int, categoryID string) (plan.MealEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.data.Plan[plan.Key(dayIndex, categoryID)]
	return entry, ok
}

// CopyMeal applies a drag-copy request and reports whether the target
// cell changed.
func (s *Service) CopyMeal(req grid.CopyRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := grid.New(s.data.Plan)
	if !g.Apply(req) {
		return false
	}
	s.persist()
	return true
}

// AddCategory appends a new column and returns it.
func (s *Service) AddCategory() plan.MealCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := s.data.AddCategory()
	s.persist()
	return cat
}

// RenameCategory changes a column's display name.
func (s *Service) RenameCategory(categoryID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.data.RenameCategory(categoryID, name) {
		return fmt.Errorf("unknown category %q", categoryID)
	}
	s.persist()
	return nil
}

// RemoveCategory drops a column and every meal stored under it. The last
// remaining column cannot be removed.
func (s *Service) RemoveCategory(categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.data.RemoveCategory(categoryID) {
		return fmt.Errorf("cannot remove category %q", categoryID)
	}
	s.persist()
	return nil
}

// ShoppingList aggregates every ingredient in the current plan.
func (s *Service) ShoppingList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return shopping.Aggregate(s.data.Plan)
}

// ExportPDF renders the current plan and shopping list as a document.
func (s *Service) ExportPDF() ([]byte, error) {
	s.mu.Lock()
	data := s.data.Clone()
	list := shopping.Aggregate(s.data.Plan)
	s.mu.Unlock()
	return pdf.Generate(data, list)
}

// ClearAll resets the planner to its default state.
func (s *Service) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = s.store.Clear()
}

// SuggestIngredients asks the configured LLM for an ingredient list. It
// returns nil when suggestions are unavailable.
func (s *Service) SuggestIngredients(ctx context.Context, dishName string) []plan.Ingredient {
	if s.suggest == nil {
		return nil
	}
	return s.suggest.SuggestIngredients(ctx, dishName)
}

// SuggestionsEnabled reports whether an LLM backend is configured.
func (s *Service) SuggestionsEnabled() bool {
	return s.suggest != nil && s.suggest.Enabled()
}

// ImportRecipe extracts a meal entry from a recipe page.
func (s *Service) ImportRecipe(ctx context.Context, url string) (plan.MealEntry, error) {
	if s.importer == nil {
		return plan.MealEntry{}, fmt.Errorf("recipe import is not configured")
	}
	return s.importer.ImportURL(ctx, url)
}

// persist writes the current state through the store. Callers hold the
// lock. Persistence failures are logged, never surfaced: the in-memory
// state stays authoritative for the session.
func (s *Service) persist() {
	if err := s.store.Save(s.data); err != nil {
		log.Printf("Warning: failed to persist planner state: %v", err)
	}
}
