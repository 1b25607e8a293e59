package transaction

import "context"

type StubTransactionRepo struct {
	transactions []Transaction
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{transactions: []Transaction{}}
}

func (s *StubTransactionRepo) GetAll(ctx context.Context) ([]Transaction, error) {
	out := make([]Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

func (s *StubTransactionRepo) SaveAll(ctx context.Context, transactions []Transaction) error {
	s.transactions = make([]Transaction, len(transactions))
	copy(s.transactions, transactions)
	return nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.transactions = []Transaction{}
}
