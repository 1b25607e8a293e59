package app

import (
	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/storage"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/export"
	"github.com/fintrack/fintrack/pkg/transaction"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	CategoryRepo    category.CategoryRepo
	CategoryService *category.CategoryServiceImpl
	CategoryHandler *category.CategoryHandler

	TransactionRepo    transaction.TransactionRepo
	TransactionService *transaction.TransactionServiceImpl
	TransactionHandler *transaction.TransactionHandler

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	UsageService  *budget.UsageServiceImpl
	BudgetHandler *budget.BudgetHandler

	ExportService *export.ExportServiceImpl
	ImportService *export.ImportServiceImpl
	ExportHandler *export.ExportHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store storage.Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.CategoryRepo = category.NewCategoryRepo(store)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo, deps.Bus)
	deps.CategoryHandler = category.NewCategoryHandler(deps.CategoryService)

	deps.TransactionRepo = transaction.NewTransactionRepo(store)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.Bus)
	deps.TransactionHandler = transaction.NewTransactionHandler(deps.TransactionService)

	deps.BudgetRepo = budget.NewBudgetRepo(store)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.Bus, cfg.Budget.DefaultAlertThreshold)
	deps.UsageService = budget.NewUsageService(deps.BudgetRepo, deps.TransactionService, deps.CategoryService)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService, deps.UsageService)

	deps.ExportService = export.NewExportService(deps.TransactionRepo, deps.CategoryRepo, deps.BudgetRepo)
	deps.ImportService = export.NewImportService(deps.TransactionRepo, deps.CategoryRepo, deps.BudgetRepo, deps.Bus)
	deps.ExportHandler = export.NewExportHandler(deps.ExportService, deps.ImportService)

	registerAlertLogger(deps.Bus, deps.UsageService)

	return deps
}
