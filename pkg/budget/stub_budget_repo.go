package budget

import "context"

type StubBudgetRepo struct {
	budgets []Budget
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{budgets: []Budget{}}
}

func (s *StubBudgetRepo) GetAll(ctx context.Context) ([]Budget, error) {
	out := make([]Budget, len(s.budgets))
	copy(out, s.budgets)
	return out, nil
}

func (s *StubBudgetRepo) SaveAll(ctx context.Context, budgets []Budget) error {
	s.budgets = make([]Budget, len(budgets))
	copy(s.budgets, budgets)
	return nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.budgets = []Budget{}
}
