package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetHandler struct {
	budgetService BudgetService
	usageService  UsageService
}

func NewBudgetHandler(budgetService BudgetService, usageService UsageService) *BudgetHandler {
	return &BudgetHandler{budgetService, usageService}
}

func (h *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budgets, err := h.budgetService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(budgets); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Set(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting budget")
	w.Header().Set("Content-Type", "application/json")

	var budget Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stored, err := h.budgetService.Set(r.Context(), budget)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(stored); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var budget Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	budget.ID = mux.Vars(r)["id"]

	updated, err := h.budgetService.Update(r.Context(), budget)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.budgetService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BudgetHandler) Usage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, month, ok := h.period(w, r)
	if !ok {
		return
	}

	views, err := h.usageService.Usage(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := struct {
		Usage []UsageView `json:"usage"`
		Stats UsageStats  `json:"stats"`
	}{
		Usage: views,
		Stats: ComputeStats(views),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, month, ok := h.period(w, r)
	if !ok {
		return
	}

	alerts, err := h.usageService.Alerts(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(alerts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, month, ok := h.period(w, r)
	if !ok {
		return
	}

	created, err := h.budgetService.CopyLastMonthBudgets(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categoryID := r.URL.Query().Get("categoryId")
	if categoryID == "" {
		http.Error(w, "categoryId is required", http.StatusBadRequest)
		return
	}

	suggestion, err := h.usageService.Suggestions(r.Context(), categoryID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if suggestion == nil {
		// No trailing spend data; absence is not an error.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := json.NewEncoder(w).Encode(suggestion); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BudgetHandler) History(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categoryID := r.URL.Query().Get("categoryId")
	if categoryID == "" {
		http.Error(w, "categoryId is required", http.StatusBadRequest)
		return
	}

	history, err := h.budgetService.History(r.Context(), categoryID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(history); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// period reads the year/month query parameters, defaulting to the current
// period when absent. Writes the error response itself on bad input.
func (h *BudgetHandler) period(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	yearParam := r.URL.Query().Get("year")
	monthParam := r.URL.Query().Get("month")

	if yearParam == "" && monthParam == "" {
		year, month := h.usageService.CurrentPeriod()
		return year, month, true
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return 0, 0, false
	}
	month := 0
	if monthParam != "" {
		month, err = strconv.Atoi(monthParam)
		if err != nil || month < 1 || month > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return 0, 0, false
		}
	}
	return year, month, true
}
