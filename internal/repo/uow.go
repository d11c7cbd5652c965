package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repos bundles the repositories that share one unit of work.
type Repos struct {
	Trips        TripRepo
	Destinations DestinationRepo
	Links        LinkRepo
}

// NewRepos builds the Postgres repositories over a single connection,
// pool, or transaction.
func NewRepos(db db) Repos {
	return Repos{
		Trips:        NewTripRepo(db),
		Destinations: NewDestinationRepo(db),
		Links:        NewLinkRepo(db),
	}
}

// UnitOfWork scopes one service operation's load/check/mutate sequence.
// Do commits when fn returns nil and discards every write otherwise.
// The Repos passed to fn must not escape it.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx. A pgx.Tx
// begins a savepoint, so a unit of work can run inside a test transaction.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgUnitOfWork runs each Do in its own Postgres transaction.
type pgUnitOfWork struct {
	db beginner
}

// NewUnitOfWork constructs a Postgres-backed UnitOfWork.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewUnitOfWork(db beginner) UnitOfWork {
	return &pgUnitOfWork{db: db}
}

func (u *pgUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.UnitOfWork.Do: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.UnitOfWork.Do: commit: %w", err)
	}
	return nil
}
