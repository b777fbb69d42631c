package user_repo

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/repository"
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table      = "users"
	colID      = "id"
	colBalance = "balance"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetBalance - returns the user's balance in minor units.
func (r *repo) GetBalance(ctx context.Context, id int64) (int64, error) {
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.ErrNotFound
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// UpdateBalance - sets the user's balance to the given amount.
func (r *repo) UpdateBalance(ctx context.Context, id int64, amount int64) error {
	query := sq.Update(table).
		Set(colBalance, amount).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
