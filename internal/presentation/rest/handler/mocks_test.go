package handler

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"reward-server/internal/domain/ledger"
	"reward-server/internal/domain/member"
	"reward-server/internal/domain/notification"
	"reward-server/internal/domain/redemption"
	"reward-server/internal/domain/reward"
)

// MockMemberRepository モック会員リポジトリ
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id int64) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*member.Member, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveBalance(ctx context.Context, tx *sql.Tx, mb *member.Member) error {
	args := m.Called(ctx, tx, mb)
	return args.Error(0)
}

// MockRewardRepository モック景品リポジトリ
type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) FindByID(ctx context.Context, id int64) (*reward.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*reward.Reward, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) FindActive(ctx context.Context) ([]*reward.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) SaveStock(ctx context.Context, tx *sql.Tx, r *reward.Reward) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

// MockRedemptionRepository モック交換レコードリポジトリ
type MockRedemptionRepository struct {
	mock.Mock
}

func (m *MockRedemptionRepository) Create(ctx context.Context, tx *sql.Tx, r *redemption.Redemption) (int64, error) {
	args := m.Called(ctx, tx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRedemptionRepository) FindByID(ctx context.Context, id int64) (*redemption.Redemption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redemption.Redemption), args.Error(1)
}

func (m *MockRedemptionRepository) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*redemption.Redemption, error) {
	args := m.Called(ctx, memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*redemption.Redemption), args.Error(1)
}

func (m *MockRedemptionRepository) FindByStatus(ctx context.Context, status redemption.Status, limit, offset int) ([]*redemption.Redemption, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*redemption.Redemption), args.Error(1)
}

func (m *MockRedemptionRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, r *redemption.Redemption, from redemption.Status) error {
	args := m.Called(ctx, tx, r, from)
	return args.Error(0)
}

// MockLedgerRepository モック台帳リポジトリ
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Save(ctx context.Context, tx *sql.Tx, e *ledger.Entry) error {
	args := m.Called(ctx, tx, e)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

// MockTransactionManager モックトランザクションマネージャー
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	args := m.Called(ctx, fn)
	if fn != nil {
		return fn(nil)
	}
	return args.Error(0)
}

// MockNotifier モック通知送信
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
