package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/investbuddy/circles-api/internal/domain/circle"
	"github.com/investbuddy/circles-api/internal/domain/contribution"
	"github.com/investbuddy/circles-api/internal/domain/goal"
	"github.com/investbuddy/circles-api/internal/domain/profile"
	"github.com/investbuddy/circles-api/internal/domain/shared"
	"github.com/investbuddy/circles-api/internal/domain/transaction"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fakeTxRunner runs the transactional function directly with a nil pgx.Tx.
// The mocked repositories return themselves from WithTx, so the steps run
// against the mocks in order.
type fakeTxRunner struct {
	err error // forced begin failure when set
}

func (f *fakeTxRunner) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context, limit int) ([]*profile.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) First(ctx context.Context) (*profile.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) DebitBalance(ctx context.Context, id uuid.UUID, account shared.AccountKind, amount int64) error {
	args := m.Called(ctx, id, account, amount)
	return args.Error(0)
}

func (m *MockProfileRepository) WithTx(tx pgx.Tx) profile.Repository {
	m.Called(tx)
	return m
}

type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*goal.Goal), args.Error(1)
}

func (m *MockGoalRepository) List(ctx context.Context, limit, offset int) ([]*goal.Goal, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*goal.Goal), args.Error(1)
}

func (m *MockGoalRepository) AddToTotal(ctx context.Context, id uuid.UUID, amount int64) (*goal.Progress, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*goal.Progress), args.Error(1)
}

func (m *MockGoalRepository) WithTx(tx pgx.Tx) goal.Repository {
	m.Called(tx)
	return m
}

type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Create(ctx context.Context, c *contribution.Contribution) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContributionRepository) GetByGoalID(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*contribution.Contribution, error) {
	args := m.Called(ctx, goalID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contribution.Contribution), args.Error(1)
}

func (m *MockContributionRepository) CountByGoalID(ctx context.Context, goalID uuid.UUID) (int64, error) {
	args := m.Called(ctx, goalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContributionRepository) WithTx(tx pgx.Tx) contribution.Repository {
	m.Called(tx)
	return m
}

type MockCircleRepository struct {
	mock.Mock
}

func (m *MockCircleRepository) Create(ctx context.Context, c *circle.Circle) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCircleRepository) GetByID(ctx context.Context, id uuid.UUID) (*circle.Circle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*circle.Circle), args.Error(1)
}

func (m *MockCircleRepository) AddMembers(ctx context.Context, members []*circle.Member) error {
	args := m.Called(ctx, members)
	return args.Error(0)
}

func (m *MockCircleRepository) WithTx(tx pgx.Tx) circle.Repository {
	m.Called(tx)
	return m
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, record *transaction.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*transaction.Record, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Record), args.Error(1)
}

func (m *MockTransactionRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, key string, event interface{}) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
