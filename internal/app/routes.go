package app

import (
	"github.com/fintrack/fintrack/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Categories
	r.HandleFunc("/api/categories", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/categories", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/categories/options", deps.CategoryHandler.Options).Methods("GET")
	r.HandleFunc("/api/categories/reset", deps.CategoryHandler.Reset).Methods("POST")
	r.HandleFunc("/api/categories/{id}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/categories/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Transactions
	r.HandleFunc("/api/transactions", deps.TransactionHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.Add).Methods("POST")
	r.HandleFunc("/api/transactions/summary", deps.TransactionHandler.Summary).Methods("GET")
	r.HandleFunc("/api/transactions/recent", deps.TransactionHandler.Recent).Methods("GET")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budgets", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budgets", deps.BudgetHandler.Set).Methods("POST")
	r.HandleFunc("/api/budgets/usage", deps.BudgetHandler.Usage).Methods("GET")
	r.HandleFunc("/api/budgets/alerts", deps.BudgetHandler.Alerts).Methods("GET")
	r.HandleFunc("/api/budgets/rollover", deps.BudgetHandler.Rollover).Methods("POST")
	r.HandleFunc("/api/budgets/suggestions", deps.BudgetHandler.Suggestions).Methods("GET")
	r.HandleFunc("/api/budgets/history", deps.BudgetHandler.History).Methods("GET")
	r.HandleFunc("/api/budgets/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budgets/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Export / import
	r.HandleFunc("/api/export/bundle", deps.ExportHandler.Bundle).Methods("GET")
	r.HandleFunc("/api/export/{collection}", deps.ExportHandler.Export).Methods("GET")
	r.HandleFunc("/api/import", deps.ExportHandler.Import).Methods("POST")
	r.HandleFunc("/api/import/validate", deps.ExportHandler.Validate).Methods("POST")
}
