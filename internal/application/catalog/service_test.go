package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"reward-server/internal/domain/member"
	"reward-server/internal/domain/privilege"
	"reward-server/internal/domain/reward"
	"reward-server/internal/domain/service"
	otelinfra "reward-server/internal/infrastructure/observability/otel"
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

func TestCatalogApplicationService_ListEligibility(t *testing.T) {
	tests := []struct {
		name       string
		req        *ListEligibilityRequest
		setupMocks func(*MockMemberRepository, *MockRewardRepository)
		wantError  error
		checkFunc  func(*testing.T, *ListEligibilityResponse)
	}{
		{
			name: "正常系: 景品ごとに交換可否が付与される",
			req:  &ListEligibilityRequest{MemberID: 42},
			setupMocks: func(mmr *MockMemberRepository, mrr *MockRewardRepository) {
				mb := member.MustNewMember(42, "testmember", 3000, "plus")
				rewards := []*reward.Reward{
					// 全条件を満たす
					reward.MustNewReward(1, "Tシャツ", "", 2500, 10, "plus", true),
					// 権限不足
					reward.MustNewReward(2, "限定バッジ", "", 500, 5, "partner", true),
					// 残高不足
					reward.MustNewReward(3, "マグカップ", "", 5000, 5, "", true),
					// 在庫切れ
					reward.MustNewReward(4, "ステッカー", "", 100, 0, "", true),
				}
				mmr.On("FindByID", mock.Anything, int64(42)).Return(mb, nil)
				mrr.On("FindActive", mock.Anything).Return(rewards, nil)
			},
			checkFunc: func(t *testing.T, resp *ListEligibilityResponse) {
				assert.Equal(t, int64(42), resp.MemberID)
				assert.Equal(t, "plus", resp.Privilege)
				assert.Equal(t, int64(3000), resp.Balance)
				require.Len(t, resp.Rewards, 4)

				assert.True(t, resp.Rewards[0].CanRedeem)
				assert.Equal(t, int64(1), resp.Rewards[0].MaxQuantity) // 3000 / 2500 = 1

				assert.False(t, resp.Rewards[1].HasPrivilege)
				assert.True(t, resp.Rewards[1].CanAfford)
				assert.False(t, resp.Rewards[1].CanRedeem)

				assert.False(t, resp.Rewards[2].CanAfford)
				assert.False(t, resp.Rewards[2].CanRedeem)
				assert.Equal(t, int64(0), resp.Rewards[2].MaxQuantity)

				assert.False(t, resp.Rewards[3].InStock)
				assert.False(t, resp.Rewards[3].CanRedeem)
			},
		},
		{
			name: "正常系: 公開中の景品が存在しない",
			req:  &ListEligibilityRequest{MemberID: 42},
			setupMocks: func(mmr *MockMemberRepository, mrr *MockRewardRepository) {
				mb := member.MustNewMember(42, "testmember", 3000, "user")
				mmr.On("FindByID", mock.Anything, int64(42)).Return(mb, nil)
				mrr.On("FindActive", mock.Anything).Return([]*reward.Reward{}, nil)
			},
			checkFunc: func(t *testing.T, resp *ListEligibilityResponse) {
				assert.Empty(t, resp.Rewards)
			},
		},
		{
			name: "正常系: 最大購入可能数はシステム上限で頭打ちになる",
			req:  &ListEligibilityRequest{MemberID: 42},
			setupMocks: func(mmr *MockMemberRepository, mrr *MockRewardRepository) {
				mb := member.MustNewMember(42, "testmember", 100000, "user")
				rewards := []*reward.Reward{
					reward.MustNewReward(1, "ステッカー", "", 100, 500, "", true),
				}
				mmr.On("FindByID", mock.Anything, int64(42)).Return(mb, nil)
				mrr.On("FindActive", mock.Anything).Return(rewards, nil)
			},
			checkFunc: func(t *testing.T, resp *ListEligibilityResponse) {
				require.Len(t, resp.Rewards, 1)
				assert.Equal(t, int64(reward.MaxRedeemQuantity), resp.Rewards[0].MaxQuantity)
			},
		},
		{
			name: "異常系: 会員が見つからない",
			req:  &ListEligibilityRequest{MemberID: 999},
			setupMocks: func(mmr *MockMemberRepository, mrr *MockRewardRepository) {
				mmr.On("FindByID", mock.Anything, int64(999)).Return(nil, member.ErrMemberNotFound)
			},
			wantError: member.ErrMemberNotFound,
		},
		{
			name: "異常系: 景品一覧取得でエラー",
			req:  &ListEligibilityRequest{MemberID: 42},
			setupMocks: func(mmr *MockMemberRepository, mrr *MockRewardRepository) {
				mb := member.MustNewMember(42, "testmember", 3000, "user")
				mmr.On("FindByID", mock.Anything, int64(42)).Return(mb, nil)
				mrr.On("FindActive", mock.Anything).Return(nil, assert.AnError)
			},
			wantError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMemberRepo := new(MockMemberRepository)
			mockRewardRepo := new(MockRewardRepository)

			tt.setupMocks(mockMemberRepo, mockRewardRepo)

			tracer := otel.Tracer("test")
			logger := otelinfra.NewLogger(tracer)
			metrics, err := otelinfra.NewMetrics("test")
			require.NoError(t, err)
			eligibilityService := service.NewEligibilityService(privilege.DefaultHierarchy())

			svc := NewCatalogApplicationService(
				mockMemberRepo,
				mockRewardRepo,
				eligibilityService,
				logger,
				metrics,
			)

			ctx := context.Background()
			got, err := svc.ListEligibility(ctx, tt.req)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, got)
			}
			mockMemberRepo.AssertExpectations(t)
			mockRewardRepo.AssertExpectations(t)
		})
	}
}
