package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ErrUnsupportedFormat is returned before anything is parsed or merged.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// ErrInvalidImport wraps parse failures of otherwise supported formats.
var ErrInvalidImport = errors.New("invalid import data")

// ImportResult reports what a completed import replaced.
type ImportResult struct {
	Transactions int      `json:"transactions"`
	Categories   int      `json:"categories"`
	Budgets      int      `json:"budgets"`
	Warnings     []string `json:"warnings"`
}

// ImportService merges uploaded files into the stored collections. Parsing
// always completes before any collection is touched, so a malformed file
// never partially applies.
type ImportService interface {
	// Import dispatches on the file extension: .json replaces every
	// collection present in the bundle, .csv replaces the transaction
	// ledger. Anything else fails with ErrUnsupportedFormat.
	Import(ctx context.Context, filename string, content []byte) (*ImportResult, error)
	// Validate inspects a JSON bundle without merging it.
	Validate(content []byte) *ValidationResult
}

type ImportServiceImpl struct {
	transactionRepo transaction.TransactionRepo
	categoryRepo    category.CategoryRepo
	budgetRepo      budget.BudgetRepo
	bus             *event_bus.EventBus
	clock           utils.Clock
}

func NewImportService(
	transactionRepo transaction.TransactionRepo,
	categoryRepo category.CategoryRepo,
	budgetRepo budget.BudgetRepo,
	bus *event_bus.EventBus,
) *ImportServiceImpl {
	return &ImportServiceImpl{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		bus:             bus,
		clock:           &utils.SystemClock{},
	}
}

func (s *ImportServiceImpl) Import(ctx context.Context, filename string, content []byte) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return s.importJSON(ctx, content)
	case ".csv":
		return s.importCSV(ctx, content)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
}

func (s *ImportServiceImpl) importJSON(ctx context.Context, content []byte) (*ImportResult, error) {
	bundle, err := parseBundle(content)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Warnings: validateBundle(bundle)}

	if bundle.Categories != nil {
		if err := s.categoryRepo.SaveAll(ctx, bundle.Categories); err != nil {
			return nil, fmt.Errorf("failed to store categories: %w", err)
		}
		result.Categories = len(bundle.Categories)
	}
	if bundle.Transactions != nil {
		if err := s.transactionRepo.SaveAll(ctx, bundle.Transactions); err != nil {
			return nil, fmt.Errorf("failed to store transactions: %w", err)
		}
		result.Transactions = len(bundle.Transactions)
	}
	if bundle.Budgets != nil {
		if err := s.budgetRepo.SaveAll(ctx, bundle.Budgets); err != nil {
			return nil, fmt.Errorf("failed to store budgets: %w", err)
		}
		result.Budgets = len(bundle.Budgets)
	}

	s.publishImported(ctx, result)
	return result, nil
}

func (s *ImportServiceImpl) importCSV(ctx context.Context, content []byte) (*ImportResult, error) {
	header, rows, err := parseCSV(content)
	if err != nil {
		return nil, err
	}
	if len(header) != len(transactionHeader) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", ErrInvalidImport, len(transactionHeader), len(header))
	}

	idsByName, err := s.categoryIDs(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	transactions := make([]transaction.Transaction, 0, len(rows))
	var warnings []string
	for i, row := range rows {
		t, warning := transactionFromRow(row, idsByName, now)
		if warning != "" {
			warnings = append(warnings, fmt.Sprintf("row %d: %s", i+1, warning))
			continue
		}
		transactions = append(transactions, t)
	}

	if err := s.transactionRepo.SaveAll(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to store transactions: %w", err)
	}

	result := &ImportResult{Transactions: len(transactions), Warnings: warnings}
	s.publishImported(ctx, result)
	return result, nil
}

func (s *ImportServiceImpl) Validate(content []byte) *ValidationResult {
	result := &ValidationResult{Valid: true}

	bundle, err := parseBundle(content)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Warnings = validateBundle(bundle)
	return result
}

// parseBundle requires a JSON object at the top level. Collections absent
// from the document stay nil so the import can tell "missing" from "empty".
func parseBundle(content []byte) (Bundle, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(content, &probe); err != nil {
		return Bundle{}, fmt.Errorf("%w: not a JSON object: %v", ErrInvalidImport, err)
	}

	var bundle Bundle
	if err := json.Unmarshal(content, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return bundle, nil
}

// transactionFromRow maps one CSV row, laid out like the export header, back
// to a transaction. Category names are resolved to ids where the registry
// knows them; unknown names are kept as-is.
func transactionFromRow(row []string, idsByName map[string]string, now time.Time) (transaction.Transaction, string) {
	date, err := parseDate(row[0])
	if err != nil {
		return transaction.Transaction{}, fmt.Sprintf("invalid date %q", row[0])
	}

	transactionType := transaction.TypeExpense
	if strings.EqualFold(row[1], "Income") {
		transactionType = transaction.TypeIncome
	}

	amount, err := decimal.NewFromString(row[3])
	if err != nil {
		return transaction.Transaction{}, fmt.Sprintf("invalid amount %q", row[3])
	}

	categoryID := row[2]
	if id, ok := idsByName[row[2]]; ok {
		categoryID = id
	}

	var tags []string
	if row[5] != "" {
		for _, tag := range strings.Split(row[5], ",") {
			tags = append(tags, strings.TrimSpace(tag))
		}
	}

	createdAt := now
	if parsed, err := parseDate(row[6]); err == nil {
		createdAt = parsed
	}

	return transaction.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        transactionType,
		Category:    categoryID,
		Amount:      amount,
		Description: row[4],
		Tags:        tags,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}, ""
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func (s *ImportServiceImpl) categoryIDs(ctx context.Context) (map[string]string, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(categories))
	for _, c := range categories {
		ids[c.Name] = c.ID
	}
	return ids, nil
}

func (s *ImportServiceImpl) publishImported(ctx context.Context, result *ImportResult) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.DataImported, *result)); err != nil {
		log.Warnf("failed to publish import event: %v", err)
	}
	log.Infof("imported %d transaction(s), %d categorie(s), %d budget(s)",
		result.Transactions, result.Categories, result.Budgets)
}
