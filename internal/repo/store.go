package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles every repo bound to a single db handle. Services hold a
// pool-backed Store for plain reads and writes; multi-entity operations that
// must commit together (pivot confirmation, ledger recompute) run against a
// transaction-backed Store via TxManager.WithinTx.
type Store struct {
	Trips       TripRepo
	Activities  ActivityRepo
	BudgetItems BudgetItemRepo
	Moods       MoodReadingRepo
	PivotLogs   PivotLogRepo
	Preferences PreferencesRepo
	Chat        ChatMessageRepo
	Discoveries DiscoveryRepo
}

// NewStore constructs a Store whose repos all share the provided db handle.
func NewStore(db db) Store {
	return Store{
		Trips:       NewTripRepo(db),
		Activities:  NewActivityRepo(db),
		BudgetItems: NewBudgetItemRepo(db),
		Moods:       NewMoodReadingRepo(db),
		PivotLogs:   NewPivotLogRepo(db),
		Preferences: NewPreferencesRepo(db),
		Chat:        NewChatMessageRepo(db),
		Discoveries: NewDiscoveryRepo(db),
	}
}

// NewPoolStore constructs the production Store over a pgx pool.
func NewPoolStore(pool *pgxpool.Pool) Store {
	return NewStore(pool)
}

// TxManager runs a function against a Store bound to one transaction.
// If fn returns an error the transaction is rolled back and no partial
// writes are observable; otherwise it commits.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager constructs a TxManager over the given pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx begins a transaction, hands fn a Store bound to it, and commits
// when fn succeeds. Rollback on a done transaction is a no-op, so the
// deferred rollback is safe after commit.
func (m *TxManager) WithinTx(ctx context.Context, fn func(Store) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxManager.WithinTx: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(NewStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxManager.WithinTx: commit: %w", err)
	}
	return nil
}
