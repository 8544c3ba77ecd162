// Package postgres provides PostgreSQL implementations of the domain
// repositories. Balance and goal-total mutations are issued as guarded
// single-statement updates so concurrent requests cannot lose each other's
// writes.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/investbuddy/circles-api/internal/domain/profile"
	"github.com/investbuddy/circles-api/internal/domain/shared"
	"github.com/investbuddy/circles-api/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

const profileColumns = "id, username, full_name, email, friend_code, balance_chequing_cents, balance_savings_cents, created_at, updated_at"

// ProfileRepository implements the profile.Repository interface for PostgreSQL
type ProfileRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(logger *slog.Logger, db *persistence.PostgresDB) profile.Repository {
	return &ProfileRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to the given transaction so profile
// operations can participate in multi-step atomic writes.
func (r *ProfileRepository) WithTx(tx pgx.Tx) profile.Repository {
	return &ProfileRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.FullName,
		&p.Email,
		&p.FriendCode,
		&p.BalanceChequing,
		&p.BalanceSavings,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a profile by its ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1
	`

	p, err := scanProfile(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound{ProfileID: id}
		}
		r.logger.Error("Failed to get profile", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// List retrieves up to limit profiles ordered by creation time
func (r *ProfileRepository) List(ctx context.Context, limit int) ([]*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY created_at
		LIMIT $1
	`

	rows, err := r.querier.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list profiles", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// First returns an arbitrary existing profile, or ErrProfileNotFound when the
// profiles table is empty. Only the development fallback uses this.
func (r *ProfileRepository) First(ctx context.Context) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY created_at
		LIMIT 1
	`

	p, err := scanProfile(r.querier.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound{}
		}
		r.logger.Error("Failed to get fallback profile", "error", err)
		return nil, fmt.Errorf("failed to get fallback profile: %w", err)
	}

	return p, nil
}

// DebitBalance atomically subtracts amount cents from the named balance. The
// statement's WHERE guard keeps the balance non-negative; zero rows affected
// means the balance was below amount at execution time, which is reported as
// ErrInsufficientFunds carrying the balance observed afterwards.
func (r *ProfileRepository) DebitBalance(ctx context.Context, id uuid.UUID, account shared.AccountKind, amount int64) error {
	if !account.Valid() {
		return profile.ErrInvalidAccount
	}
	if amount <= 0 {
		return profile.ErrInvalidAmount
	}

	column := "balance_chequing_cents"
	if account == shared.AccountSavings {
		column = "balance_savings_cents"
	}

	query := fmt.Sprintf(`
		UPDATE profiles
		SET %s = %s - $1, updated_at = NOW()
		WHERE id = $2 AND %s >= $1
	`, column, column, column)

	result, err := r.querier.Exec(ctx, query, amount, id)
	if err != nil {
		r.logger.Error("Failed to debit balance", "id", id.String(), "account", string(account), "error", err)
		return fmt.Errorf("failed to debit balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing profile from an underfunded one.
		p, lookupErr := r.GetByID(ctx, id)
		if lookupErr != nil {
			return lookupErr
		}
		return profile.ErrInsufficientFunds{Account: account, Available: p.Balance(account)}
	}

	return nil
}
