package handlers

import (
	"EvidenceKeeper/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CaseHandler — регистрация дел и выборки.
type CaseHandler struct {
	CaseService *service.CaseService
	Logger      *zap.SugaredLogger
}

func NewCaseHandler(caseService *service.CaseService, logger *zap.SugaredLogger) *CaseHandler {
	return &CaseHandler{CaseService: caseService, Logger: logger}
}

// Create регистрирует дело вместе с вещдоками
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.RegisterCaseInput
	if !decodeJSON(w, r, h.Logger, "CreateCase", &req) {
		return
	}
	c, err := h.CaseService.Register(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, h.Logger, "CreateCase", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Case registered", "case": c})
}

func (h *CaseHandler) MyCases(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	rows, err := h.CaseService.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "MyCases", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cases": rows})
}

// Specific ищет дело по id или номеру FIR
func (h *CaseHandler) Specific(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	c, err := h.CaseService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "SpecificCase", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"case": c})
}

func (h *CaseHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	rows, err := h.CaseService.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.Logger, "SearchCases", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cases": rows})
}

func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.UpdateCaseInput
	if !decodeJSON(w, r, h.Logger, "UpdateCase", &req) {
		return
	}
	c, err := h.CaseService.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.Logger, "UpdateCase", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Case updated", "case": c})
}

func (h *CaseHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	stats, err := h.CaseService.DashboardStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "DashboardStats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *CaseHandler) AnalyticsStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	stats, err := h.CaseService.AnalyticsStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.Logger, "AnalyticsStats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
