package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/domain/shared"
)

var goalColumnNames = []string{"id", "circle_id", "created_by", "title", "description", "target_amount_cents", "current_amount_cents", "portfolio", "contribution_per_period_cents", "contribution_frequency", "withdrawal_account", "status", "target_date", "created_at", "updated_at"}

func goalRow(g *goal.Goal) *pgxmock.Rows {
	return pgxmock.NewRows(goalColumnNames).
		AddRow(g.ID, g.CircleID, g.CreatedBy, g.Title, g.Description, g.TargetCents, g.CurrentCents, g.Portfolio, g.ContributionCents, g.ContributionFrequency, g.WithdrawalAccount, g.Status, g.TargetDate, g.CreatedAt, g.UpdatedAt)
}

func testGoal() *goal.Goal {
	now := time.Now()
	return &goal.Goal{
		ID:                    uuid.New(),
		CircleID:              uuid.New(),
		CreatedBy:             uuid.New(),
		Title:                 "House fund",
		TargetCents:           5000000,
		CurrentCents:          120000,
		Portfolio:             "balanced",
		ContributionCents:     50000,
		ContributionFrequency: "monthly",
		WithdrawalAccount:     shared.AccountChequing,
		Status:                goal.StatusActive,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func TestGoalRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &GoalRepository{querier: mock, logger: logger}
	g := testGoal()

	query := `
		INSERT INTO goals \(id, circle_id, created_by, title, description, target_amount_cents, current_amount_cents, portfolio, contribution_per_period_cents, contribution_frequency, withdrawal_account, status, target_date, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, \$10, \$11, \$12, \$13, \$14, \$15\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(g.ID, g.CircleID, g.CreatedBy, g.Title, g.Description, g.TargetCents, g.CurrentCents, g.Portfolio, g.ContributionCents, g.ContributionFrequency, g.WithdrawalAccount, g.Status, g.TargetDate, g.CreatedAt, g.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, g)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(g.ID, g.CircleID, g.CreatedBy, g.Title, g.Description, g.TargetCents, g.CurrentCents, g.Portfolio, g.ContributionCents, g.ContributionFrequency, g.WithdrawalAccount, g.Status, g.TargetDate, g.CreatedAt, g.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, g)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create goal")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGoalRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &GoalRepository{querier: mock, logger: logger}
	g := testGoal()

	query := `
		SELECT id, circle_id, created_by, title, description, target_amount_cents, current_amount_cents, portfolio, contribution_per_period_cents, contribution_frequency, withdrawal_account, status, target_date, created_at, updated_at
		FROM goals
		WHERE id = \$1
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(g.ID).WillReturnRows(goalRow(g))

		got, err := repo.GetByID(ctx, g.ID)
		assert.NoError(t, err)
		assert.Equal(t, g, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(g.ID).WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetByID(ctx, g.ID)
		assert.Error(t, err)
		assert.Nil(t, got)
		var notFoundErr goal.ErrGoalNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, g.ID, notFoundErr.GoalID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGoalRepository_List(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &GoalRepository{querier: mock, logger: logger}

	query := `
		SELECT id, circle_id, created_by, title, description, target_amount_cents, current_amount_cents, portfolio, contribution_per_period_cents, contribution_frequency, withdrawal_account, status, target_date, created_at, updated_at
		FROM goals
		ORDER BY created_at DESC
		LIMIT \$1 OFFSET \$2
	`

	t.Run("success", func(t *testing.T) {
		first := testGoal()
		second := testGoal()
		rows := pgxmock.NewRows(goalColumnNames).
			AddRow(first.ID, first.CircleID, first.CreatedBy, first.Title, first.Description, first.TargetCents, first.CurrentCents, first.Portfolio, first.ContributionCents, first.ContributionFrequency, first.WithdrawalAccount, first.Status, first.TargetDate, first.CreatedAt, first.UpdatedAt).
			AddRow(second.ID, second.CircleID, second.CreatedBy, second.Title, second.Description, second.TargetCents, second.CurrentCents, second.Portfolio, second.ContributionCents, second.ContributionFrequency, second.WithdrawalAccount, second.Status, second.TargetDate, second.CreatedAt, second.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(20, 0).WillReturnRows(rows)

		goals, err := repo.List(ctx, 20, 0)
		assert.NoError(t, err)
		assert.Len(t, goals, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(20, 0).WillReturnError(errors.New("db error"))

		goals, err := repo.List(ctx, 20, 0)
		assert.Error(t, err)
		assert.Nil(t, goals)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGoalRepository_AddToTotal(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &GoalRepository{querier: mock, logger: logger}
	goalID := uuid.New()

	query := `
		UPDATE goals
		SET current_amount_cents = current_amount_cents \+ \$1, updated_at = NOW\(\)
		WHERE id = \$2
		RETURNING title, target_amount_cents, current_amount_cents
	`

	t.Run("returns state after increment", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"title", "target_amount_cents", "current_amount_cents"}).
			AddRow("House fund", int64(5000000), int64(170000))
		mock.ExpectQuery(query).WithArgs(int64(50000), goalID).WillReturnRows(rows)

		progress, err := repo.AddToTotal(ctx, goalID, 50000)
		assert.NoError(t, err)
		assert.Equal(t, &goal.Progress{Title: "House fund", TargetCents: 5000000, CurrentCents: 170000}, progress)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(50000), goalID).WillReturnError(pgx.ErrNoRows)

		progress, err := repo.AddToTotal(ctx, goalID, 50000)
		assert.Error(t, err)
		assert.Nil(t, progress)
		assert.ErrorIs(t, err, goal.ErrGoalNotFound{})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(50000), goalID).WillReturnError(errors.New("db error"))

		progress, err := repo.AddToTotal(ctx, goalID, 50000)
		assert.Error(t, err)
		assert.Nil(t, progress)
		assert.Contains(t, err.Error(), "failed to update goal total")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
