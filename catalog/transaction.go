package catalog

import "context"

//go:generate go run github.com/matryer/moq@latest -out mocks/transaction.go -pkg mocks . Transaction

// Transaction is a pending table creation or replacement. Nothing a
// transaction stages is visible in the catalog until Commit succeeds.
type Transaction interface {
	// Table returns the staged table state. Before commit it reflects
	// what the catalog would contain if the transaction committed now.
	Table() *Table

	// SetProperties merges the given properties into the staged table
	// state.
	SetProperties(props map[string]string) error

	// Commit applies the staged state to the catalog. Committing a
	// create fails with an ErrCodeAlreadyExists error if the
	// identifier was taken since the transaction started.
	Commit(ctx context.Context) error
}

// WithCommitCallback wraps a transaction so the given callbacks run
// after Commit succeeds, in registration order. A failed commit never
// runs them. Every other operation delegates to the wrapped
// transaction unchanged.
//
// The wrapper composes: wrapping an already wrapped transaction
// appends another layer whose callbacks run after the inner ones.
func WithCommitCallback(txn Transaction, callbacks ...func()) Transaction {
	return &commitCallbackTransaction{txn: txn, callbacks: callbacks}
}

type commitCallbackTransaction struct {
	txn       Transaction
	callbacks []func()
}

func (t *commitCallbackTransaction) Table() *Table {
	return t.txn.Table()
}

func (t *commitCallbackTransaction) SetProperties(props map[string]string) error {
	return t.txn.SetProperties(props)
}

func (t *commitCallbackTransaction) Commit(ctx context.Context) error {
	if err := t.txn.Commit(ctx); err != nil {
		return err
	}
	for _, callback := range t.callbacks {
		callback()
	}
	return nil
}
