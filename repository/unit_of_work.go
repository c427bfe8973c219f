package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wordleclub/database"
	"wordleclub/events"
	"wordleclub/service"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	groupRepo        service.GroupRepository
	submissionRepo   service.SubmissionRepository
	summaryRepo      service.SummaryRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.groupRepo = newGroupRepositoryWithTx(tx)
	u.submissionRepo = newSubmissionRepositoryWithTx(tx)
	u.summaryRepo = newSummaryRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	// Events only reach subscribers once the data they describe is durable
	return u.transactionalBus.Flush(u.ctx)
}

// Rollback aborts the transaction and discards pending events.
// Calling it after Commit is a no-op so it can sit in a defer.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) GroupRepository() service.GroupRepository {
	return u.groupRepo
}

func (u *unitOfWork) SubmissionRepository() service.SubmissionRepository {
	return u.submissionRepo
}

func (u *unitOfWork) SummaryRepository() service.SummaryRepository {
	return u.summaryRepo
}

func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
