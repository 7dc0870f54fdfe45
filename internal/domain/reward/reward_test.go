package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReward(t *testing.T) {
	tests := []struct {
		name              string
		id                int64
		rewardName        string
		unitCost          int64
		stock             int64
		requiredPrivilege string
		isActive          bool
		wantError         error
	}{
		{
			name:              "正常系: 景品を作成",
			id:                1,
			rewardName:        "Tシャツ",
			unitCost:          2500,
			stock:             10,
			requiredPrivilege: "plus",
			isActive:          true,
		},
		{
			name:       "正常系: 権限要求なしの景品を作成",
			id:         2,
			rewardName: "ステッカー",
			unitCost:   100,
			stock:      100,
			isActive:   true,
		},
		{
			name:       "正常系: 在庫0の景品を作成",
			id:         3,
			rewardName: "マグカップ",
			unitCost:   500,
			stock:      0,
			isActive:   true,
		},
		{
			name:      "異常系: IDが0",
			id:        0,
			unitCost:  100,
			stock:     1,
			wantError: ErrInvalidRewardID,
		},
		{
			name:      "異常系: 単価が0",
			id:        1,
			unitCost:  0,
			stock:     1,
			wantError: ErrInvalidUnitCost,
		},
		{
			name:      "異常系: 単価が負の値",
			id:        1,
			unitCost:  -100,
			stock:     1,
			wantError: ErrInvalidUnitCost,
		},
		{
			name:      "異常系: 在庫が負の値",
			id:        1,
			unitCost:  100,
			stock:     -1,
			wantError: ErrInvalidStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReward(tt.id, tt.rewardName, "", tt.unitCost, tt.stock, tt.requiredPrivilege, tt.isActive)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID())
			assert.Equal(t, tt.rewardName, got.Name())
			assert.Equal(t, tt.unitCost, got.UnitCost())
			assert.Equal(t, tt.stock, got.Stock())
			assert.Equal(t, tt.requiredPrivilege, got.RequiredPrivilege())
			assert.Equal(t, tt.isActive, got.IsActive())
		})
	}
}

func TestReward_DecrementStock(t *testing.T) {
	tests := []struct {
		name      string
		stock     int64
		quantity  int64
		wantStock int64
		wantError error
	}{
		{
			name:      "正常系: 在庫を減算",
			stock:     10,
			quantity:  2,
			wantStock: 8,
		},
		{
			name:      "正常系: 在庫全数を減算（在庫0になる）",
			stock:     3,
			quantity:  3,
			wantStock: 0,
		},
		{
			name:      "異常系: 在庫不足",
			stock:     1,
			quantity:  2,
			wantStock: 1,
			wantError: ErrOutOfStock,
		},
		{
			name:      "異常系: 在庫0からの減算",
			stock:     0,
			quantity:  1,
			wantStock: 0,
			wantError: ErrOutOfStock,
		},
		{
			name:      "異常系: 数量が0",
			stock:     10,
			quantity:  0,
			wantStock: 10,
			wantError: ErrInvalidQuantity,
		},
		{
			name:      "異常系: 数量が負の値",
			stock:     10,
			quantity:  -1,
			wantStock: 10,
			wantError: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MustNewReward(1, "test", "", 100, tt.stock, "", true)
			err := r.DecrementStock(tt.quantity)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}
			// 失敗した場合でも在庫は変更されない
			assert.Equal(t, tt.wantStock, r.Stock())
		})
	}
}

func TestReward_InStock(t *testing.T) {
	assert.True(t, MustNewReward(1, "test", "", 100, 1, "", true).InStock())
	assert.False(t, MustNewReward(1, "test", "", 100, 0, "", true).InStock())
}
