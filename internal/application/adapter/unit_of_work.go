// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Repositories groups the repositories bound to one database handle.
type Repositories struct {
	Products     ProductRepository
	Institutions InstitutionRepository
	Transactions TransactionRepository
	Statements   StatementRepository
	Services     ServiceRepository
	Bills        BillRepository
	Rates        ExchangeRateRepository
	Categories   CategoryRepository
}

// UnitOfWork runs ledger operations atomically.
type UnitOfWork interface {
	// Do runs fn inside one database transaction. Every write made through repos
	// commits together or not at all. Conflicting units may be re-run, so fn must
	// not have side effects outside repos.
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	// Repositories returns repositories outside any transaction, for reads.
	Repositories() Repositories
}
