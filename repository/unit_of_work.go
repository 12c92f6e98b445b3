package repository

import (
	"context"
	"errors"
	"fmt"

	"logia/database"
	"logia/events"
	"logia/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	brotherRepo      service.BrotherRepository
	meetingRepo      service.MeetingRepository
	attendanceRepo   service.AttendanceRepository
	positionRepo     service.PositionRepository
	templeRepo       service.TempleRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
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

	u.brotherRepo = newBrotherRepositoryWithTx(tx)
	u.meetingRepo = newMeetingRepositoryWithTx(tx)
	u.attendanceRepo = newAttendanceRepositoryWithTx(tx)
	u.positionRepo = newPositionRepositoryWithTx(tx)
	u.templeRepo = newTempleRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes the pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards the pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// BrotherRepository returns the brother repository for this unit of work
func (u *unitOfWork) BrotherRepository() service.BrotherRepository {
	if u.brotherRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.brotherRepo
}

// MeetingRepository returns the meeting repository for this unit of work
func (u *unitOfWork) MeetingRepository() service.MeetingRepository {
	if u.meetingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.meetingRepo
}

// AttendanceRepository returns the attendance repository for this unit of work
func (u *unitOfWork) AttendanceRepository() service.AttendanceRepository {
	if u.attendanceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.attendanceRepo
}

// PositionRepository returns the position repository for this unit of work
func (u *unitOfWork) PositionRepository() service.PositionRepository {
	if u.positionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.positionRepo
}

// TempleRepository returns the temple repository for this unit of work
func (u *unitOfWork) TempleRepository() service.TempleRepository {
	if u.templeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.templeRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
