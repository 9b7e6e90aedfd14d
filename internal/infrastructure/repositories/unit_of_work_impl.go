package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	domainRepos "qcars.backend/internal/domain/repositories"
)

type contextKey string

const (
	txKey contextKey = "tx_db"
)

// UnitOfWorkImpl implements UnitOfWork using GORM
type UnitOfWorkImpl struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// accountStoreLockKey identifies the advisory lock serializing writes that
// must observe a consistent account count.
const accountStoreLockKey int64 = 0x71636172 // "qcar"

// Do executes the given function within a transaction scope. Repositories in
// this package pick the transaction up from the context.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.run(ctx, false, fn)
}

// DoSerialized runs the function in a transaction that holds a store-wide
// advisory lock until commit. Under READ COMMITTED two plain transactions
// each see only their own uncommitted insert, so both could count one account
// and both would bootstrap-promote; the lock forces the second transaction to
// wait and count the first one's committed row. On SQLite the single-writer
// lock already serializes writers, so no extra lock is taken.
func (u *UnitOfWorkImpl) DoSerialized(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.run(ctx, true, fn)
}

func (u *UnitOfWorkImpl) run(ctx context.Context, serialized bool, fn func(ctx context.Context) error) error {
	tx := GetDB(ctx, u.db).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if serialized && tx.Dialector.Name() == "postgres" {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", accountStoreLockKey).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to acquire store lock: %w", err)
		}
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetDB extracts the transaction DB from context if present, otherwise
// returns the fallback connection.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
