package round_repo

import (
	"cases_backend/internal/apperr"
	"cases_backend/internal/model"
	"cases_backend/internal/repository"
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "rounds"
	colID            = "id"
	colOwnerID       = "owner_id"
	colBuyIn         = "buy_in"
	colTier          = "tier"
	colPersonality   = "personality"
	colCaseValues    = "case_values"
	colPlayerCase    = "player_case"
	colOpenedCases   = "opened_cases"
	colRoundIndex    = "round_index"
	colCasesToOpen   = "cases_to_open"
	colTotalRounds   = "total_rounds"
	colPhase         = "phase"
	colFinalStage    = "final_stage"
	colBankerOffer   = "banker_offer"
	colAcceptedOffer = "accepted_offer"
	colFinalValue    = "final_value"
	colBalanceBefore = "balance_before"
	colVersion       = "version"
	colCreatedAt     = "created_at"
	colCompletedAt   = "completed_at"

	// partial unique index on owner_id where phase <> 'completed'
	activeOwnerConstraint = "rounds_owner_active_idx"

	uniqueViolation = "23505"
)

var allColumns = []string{
	colID, colOwnerID, colBuyIn, colTier, colPersonality,
	colCaseValues, colPlayerCase, colOpenedCases,
	colRoundIndex, colCasesToOpen, colTotalRounds,
	colPhase, colFinalStage,
	colBankerOffer, colAcceptedOffer, colFinalValue,
	colBalanceBefore, colVersion, colCreatedAt, colCompletedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRoundRepository(dbc *pgxpool.Pool) repository.RoundRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Get - returns the round by id, apperr.ErrNotFound when absent.
func (r *repo) Get(ctx context.Context, id string) (*model.Round, error) {
	query := sq.Select(allColumns...).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	row := r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...)
	return scanRound(row)
}

// Create - inserts a new round at version 1. A second active round for
// the same owner trips the partial unique index and maps to
// apperr.ErrActiveGameExists.
func (r *repo) Create(ctx context.Context, round *model.Round) error {
	round.Version = 1

	query := sq.Insert(table).
		Columns(allColumns...).
		Values(
			round.ID, round.OwnerID, round.BuyIn, round.Tier, round.Personality,
			round.CaseValues, round.PlayerCase, toInt64s(round.OpenedCases),
			round.RoundIndex, round.CasesToOpen, round.TotalRounds,
			round.Phase, round.FinalStage,
			round.BankerOffer, round.AcceptedOffer, round.FinalValue,
			round.BalanceBefore, round.Version, round.CreatedAt, round.CompletedAt,
		).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == activeOwnerConstraint {
			return apperr.ErrActiveGameExists
		}
		return fmt.Errorf("insert round: %w", err)
	}

	return nil
}

// Update - compare-and-set on the version column. On success the
// in-memory version is bumped to match the row.
func (r *repo) Update(ctx context.Context, round *model.Round) error {
	query := sq.Update(table).
		Set(colOpenedCases, toInt64s(round.OpenedCases)).
		Set(colRoundIndex, round.RoundIndex).
		Set(colCasesToOpen, round.CasesToOpen).
		Set(colPhase, round.Phase).
		Set(colFinalStage, round.FinalStage).
		Set(colBankerOffer, round.BankerOffer).
		Set(colAcceptedOffer, round.AcceptedOffer).
		Set(colFinalValue, round.FinalValue).
		Set(colCompletedAt, round.CompletedAt).
		Set(colVersion, round.Version+1).
		Where(sq.Eq{colID: round.ID, colVersion: round.Version}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update round: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrVersionConflict
	}

	round.Version++
	return nil
}

// FindActiveForOwner - returns the owner's single non-completed round.
func (r *repo) FindActiveForOwner(ctx context.Context, ownerID int64) (*model.Round, error) {
	query := sq.Select(allColumns...).
		From(table).
		Where(sq.Eq{colOwnerID: ownerID}).
		Where(sq.NotEq{colPhase: model.PhaseCompleted}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	row := r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...)
	return scanRound(row)
}

// Cleanup - evicts the oldest completed rounds past the retention cap.
func (r *repo) Cleanup(ctx context.Context, maxCompleted int) (int, error) {
	query := sq.Delete(table).
		Where(sq.Expr(
			colID+" IN (SELECT "+colID+" FROM "+table+
				" WHERE "+colPhase+" = ? ORDER BY "+colCreatedAt+" DESC OFFSET ?)",
			model.PhaseCompleted, maxCompleted,
		)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("cleanup rounds: %w", err)
	}

	return int(res.RowsAffected()), nil
}

func scanRound(row pgx.Row) (*model.Round, error) {
	var round model.Round
	var opened []int64

	err := row.Scan(
		&round.ID, &round.OwnerID, &round.BuyIn, &round.Tier, &round.Personality,
		&round.CaseValues, &round.PlayerCase, &opened,
		&round.RoundIndex, &round.CasesToOpen, &round.TotalRounds,
		&round.Phase, &round.FinalStage,
		&round.BankerOffer, &round.AcceptedOffer, &round.FinalValue,
		&round.BalanceBefore, &round.Version, &round.CreatedAt, &round.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scan round: %w", err)
	}

	round.OpenedCases = toInts(opened)
	return &round, nil
}

func toInt64s(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}

func toInts(in []int64) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
