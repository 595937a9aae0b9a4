package database

import (
	"context"
	"fmt"

	"invite-auth/shared/interfaces"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure TransactionHelper implements TxManager
var _ interfaces.TxManager = (*TransactionHelper)(nil)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TransactionHelper runs functions inside a pgx transaction.
type TransactionHelper struct {
	db     TxBeginner
	logger *zap.Logger
}

// NewTransactionHelper creates a new TransactionHelper.
func NewTransactionHelper(db TxBeginner, logger *zap.Logger) *TransactionHelper {
	return &TransactionHelper{
		db:     db,
		logger: logger.Named("TxHelper"),
	}
}

// WithTransaction executes fn in a transaction, rolling back on error or panic.
func (h *TransactionHelper) WithTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx interfaces.DBTX) error,
) error {
	tx, err := h.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				h.logger.Error("Failed to rollback transaction after panic",
					zap.Error(rollbackErr),
					zap.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			h.logger.Error("Failed to rollback transaction",
				zap.Error(rollbackErr),
				zap.NamedError("original_error", err))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
