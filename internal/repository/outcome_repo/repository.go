package outcome_repo

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"cases_backend/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "outcomes"
	colRoundID   = "round_id"
	colOwnerID   = "owner_id"
	colBet       = "bet"
	colPayout    = "payout"
	colPayload   = "payload"
	colSignature = "signature"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewOutcomeRepository(dbc *pgxpool.Pool) repository.OutcomeRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Append - inserts the outcome record. One per round, enforced by the
// primary key on round_id.
func (r *repo) Append(ctx context.Context, rec *model.OutcomeRecord) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal outcome payload: %w", err)
	}

	query := sq.Insert(table).
		Columns(colRoundID, colOwnerID, colBet, colPayout, colPayload, colSignature, colCreatedAt).
		Values(rec.RoundID, rec.OwnerID, rec.Bet, rec.Payout, payload, rec.Signature, rec.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}

	return nil
}

func (r *repo) Get(ctx context.Context, roundID string) (*model.OutcomeRecord, error) {
	query := sq.Select(colRoundID, colOwnerID, colBet, colPayout, colPayload, colSignature, colCreatedAt).
		From(table).
		Where(sq.Eq{colRoundID: roundID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rec model.OutcomeRecord
	var payload []byte
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&rec.RoundID, &rec.OwnerID, &rec.Bet, &rec.Payout, &payload, &rec.Signature, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scan outcome: %w", err)
	}

	if err := json.Unmarshal(payload, &rec.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal outcome payload: %w", err)
	}

	return &rec, nil
}
