package event_bus

// Mutation events published by the services. Derived views (budget usage,
// alerts) are never cached, so subscribers only use these as a signal to
// recompute on the next read or to react immediately (e.g. alert logging).
const (
	TransactionCreated EventType = "transaction.created"
	TransactionUpdated EventType = "transaction.updated"
	TransactionDeleted EventType = "transaction.deleted"

	CategoryCreated EventType = "category.created"
	CategoryUpdated EventType = "category.updated"
	CategoryDeleted EventType = "category.deleted"

	BudgetSet     EventType = "budget.set"
	BudgetUpdated EventType = "budget.updated"
	BudgetDeleted EventType = "budget.deleted"

	DataImported EventType = "data.imported"
)
