package tx_repo

import (
	"cases_backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "ledger_transactions"
	colKey       = "idempotency_key"
	colOwnerID   = "owner_id"
	colAmount    = "amount"
	colKind      = "kind"
	colReason    = "reason"
	colCreatedAt = "created_at"

	uniqueViolation = "23505"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewLedgerTxRepository(dbc *pgxpool.Pool) repository.LedgerTxRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Insert - records a money movement under its idempotency key. A key
// that was already used maps to repository.ErrDuplicateTransaction so
// callers can treat the retry as a no-op success.
func (r *repo) Insert(ctx context.Context, key string, ownerID int64, amount int64, kind, reason string) error {
	query := sq.Insert(table).
		Columns(colKey, colOwnerID, colAmount, colKind, colReason, colCreatedAt).
		Values(key, ownerID, amount, kind, reason, time.Now().UTC()).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateTransaction
		}
		return fmt.Errorf("insert ledger transaction: %w", err)
	}

	return nil
}
