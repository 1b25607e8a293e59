package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/transaction"
)

type Collection string

const (
	CollectionTransactions Collection = "transactions"
	CollectionCategories   Collection = "categories"
	CollectionBudgets      Collection = "budgets"
)

func (c Collection) IsValid() bool {
	return c == CollectionTransactions || c == CollectionCategories || c == CollectionBudgets
}

var ErrUnknownCollection = errors.New("unknown collection")

// BundleVersion is written into the exportInfo envelope and checked nowhere;
// it exists so future format changes can be told apart.
const BundleVersion = "1.0.0"

type bundleInfo struct {
	ExportDate  time.Time `json:"exportDate"`
	Version     string    `json:"version"`
	Description string    `json:"description"`
}

// Bundle is the combined snapshot of all three collections, wrapped in an
// exportInfo envelope. It is also the shape accepted by JSON import.
type Bundle struct {
	ExportInfo   *bundleInfo               `json:"exportInfo,omitempty"`
	Transactions []transaction.Transaction `json:"transactions"`
	Categories   []category.Category       `json:"categories"`
	Budgets      []budget.Budget           `json:"budgets"`
}

// ExportService renders the stored collections as downloadable CSV or JSON.
type ExportService interface {
	CSV(ctx context.Context, collection Collection) ([]byte, error)
	JSON(ctx context.Context, collection Collection, pretty bool) ([]byte, error)
	// BundleJSON exports all collections in one pretty-printed document.
	BundleJSON(ctx context.Context) ([]byte, error)
}

type ExportServiceImpl struct {
	transactionRepo transaction.TransactionRepo
	categoryRepo    category.CategoryRepo
	budgetRepo      budget.BudgetRepo
	clock           utils.Clock
}

func NewExportService(
	transactionRepo transaction.TransactionRepo,
	categoryRepo category.CategoryRepo,
	budgetRepo budget.BudgetRepo,
) *ExportServiceImpl {
	return &ExportServiceImpl{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		clock:           &utils.SystemClock{},
	}
}

func (s *ExportServiceImpl) CSV(ctx context.Context, collection Collection) ([]byte, error) {
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	switch collection {
	case CollectionTransactions:
		transactions, err := s.transactionRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return transactionsCSV(transactions, names), nil
	case CollectionCategories:
		categories, err := s.categoryRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return categoriesCSV(categories), nil
	case CollectionBudgets:
		budgets, err := s.budgetRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return budgetsCSV(budgets, names), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
}

func (s *ExportServiceImpl) JSON(ctx context.Context, collection Collection, pretty bool) ([]byte, error) {
	var data any
	var err error

	switch collection {
	case CollectionTransactions:
		data, err = s.transactionRepo.GetAll(ctx)
	case CollectionCategories:
		data, err = s.categoryRepo.GetAll(ctx)
	case CollectionBudgets:
		data, err = s.budgetRepo.GetAll(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if err != nil {
		return nil, err
	}

	if pretty {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

func (s *ExportServiceImpl) BundleJSON(ctx context.Context) ([]byte, error) {
	transactions, err := s.transactionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	bundle := Bundle{
		ExportInfo: &bundleInfo{
			ExportDate:  s.clock.Now(),
			Version:     BundleVersion,
			Description: "full personal finance data export",
		},
		Transactions: transactions,
		Categories:   categories,
		Budgets:      budgets,
	}
	return json.MarshalIndent(bundle, "", "  ")
}

func (s *ExportServiceImpl) categoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

var transactionHeader = []string{"Date", "Type", "Category", "Amount", "Description", "Tags", "Created At"}

func transactionsCSV(transactions []transaction.Transaction, names map[string]string) []byte {
	var b strings.Builder
	writeCSVRow(&b, transactionHeader)
	for _, t := range transactions {
		writeCSVRow(&b, []string{
			t.Date.Format(time.RFC3339),
			typeLabel(t.Type == transaction.TypeIncome),
			resolveName(names, t.Category),
			t.Amount.String(),
			t.Description,
			strings.Join(t.Tags, ", "),
			t.CreatedAt.Format(time.RFC3339),
		})
	}
	return []byte(b.String())
}

var categoryHeader = []string{"Name", "Type", "Icon", "Color", "Description", "Default", "Created At"}

func categoriesCSV(categories []category.Category) []byte {
	var b strings.Builder
	writeCSVRow(&b, categoryHeader)
	for _, c := range categories {
		isDefault := "no"
		if c.IsDefault {
			isDefault = "yes"
		}
		writeCSVRow(&b, []string{
			c.Name,
			typeLabel(c.Type == category.TypeIncome),
			c.Icon,
			c.Color,
			c.Description,
			isDefault,
			c.CreatedAt.Format(time.RFC3339),
		})
	}
	return []byte(b.String())
}

var budgetHeader = []string{"Category", "Amount", "Period", "Year", "Month", "Alert Threshold", "Created At"}

func budgetsCSV(budgets []budget.Budget, names map[string]string) []byte {
	var b strings.Builder
	writeCSVRow(&b, budgetHeader)
	for _, bb := range budgets {
		month := ""
		if bb.Month != nil {
			month = strconv.Itoa(*bb.Month)
		}
		period := "Yearly"
		if bb.Period == budget.PeriodMonthly {
			period = "Monthly"
		}
		writeCSVRow(&b, []string{
			resolveName(names, bb.Category),
			bb.Amount.String(),
			period,
			strconv.Itoa(bb.Year),
			month,
			fmt.Sprintf("%d%%", bb.AlertThreshold),
			bb.CreatedAt.Format(time.RFC3339),
		})
	}
	return []byte(b.String())
}

// writeCSVRow quotes every field unconditionally, doubling embedded quotes.
// encoding/csv only quotes fields that need it, so rows are assembled by hand
// to keep the output format stable.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func typeLabel(income bool) string {
	if income {
		return "Income"
	}
	return "Expense"
}

func resolveName(names map[string]string, categoryID string) string {
	if name, ok := names[categoryID]; ok {
		return name
	}
	return categoryID
}
