package redemption

import (
	"errors"
	"time"
)

var (
	// ErrInvalidMemberID 会員IDが無効
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrInvalidRewardID 景品IDが無効
	ErrInvalidRewardID = errors.New("invalid reward id")
	// ErrInvalidTotalCost 合計コストが無効
	ErrInvalidTotalCost = errors.New("invalid total cost")
)

// MaxNoteLength 備考・メモの最大文字数
const MaxNoteLength = 500

// Redemption 交換レコードエンティティ
// コミット時点の数量と合計コストを凍結して保持する。作成後に変更できるのは
// ステータス・タイムスタンプ・備考のみで、数量とコストは不変。
type Redemption struct {
	id            int64
	memberID      int64
	rewardID      int64
	quantity      int64
	totalCost     int64 // コミット時点で凍結された合計コスト
	shippingNotes string
	note          string // 遷移時に添えられる備考（受取確認時の会員メモなど）
	status        Status
	redeemedAt    time.Time
	shippedAt     *time.Time
	deliveredAt   *time.Time
}

// NewRedemption 交換コミット時点の新しいRedemptionエンティティを作成
// ステータスは検証待ちで始まり、IDは永続化時に採番される。
func NewRedemption(memberID, rewardID, quantity, totalCost int64, shippingNotes string, now time.Time) (*Redemption, error) {
	if memberID <= 0 {
		return nil, ErrInvalidMemberID
	}
	if rewardID <= 0 {
		return nil, ErrInvalidRewardID
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if totalCost <= 0 {
		return nil, ErrInvalidTotalCost
	}
	return &Redemption{
		memberID:      memberID,
		rewardID:      rewardID,
		quantity:      quantity,
		totalCost:     totalCost,
		shippingNotes: truncateNote(shippingNotes),
		status:        StatusPendingVerification,
		redeemedAt:    now,
	}, nil
}

// Reconstruct 永続化済みレコードからRedemptionエンティティを復元
func Reconstruct(
	id int64,
	memberID int64,
	rewardID int64,
	quantity int64,
	totalCost int64,
	shippingNotes string,
	note string,
	status Status,
	redeemedAt time.Time,
	shippedAt *time.Time,
	deliveredAt *time.Time,
) *Redemption {
	return &Redemption{
		id:            id,
		memberID:      memberID,
		rewardID:      rewardID,
		quantity:      quantity,
		totalCost:     totalCost,
		shippingNotes: shippingNotes,
		note:          note,
		status:        status,
		redeemedAt:    redeemedAt,
		shippedAt:     shippedAt,
		deliveredAt:   deliveredAt,
	}
}

// ID 交換レコードIDを返す
func (r *Redemption) ID() int64 {
	return r.id
}

// SetID 永続化時に採番されたIDを設定
func (r *Redemption) SetID(id int64) {
	r.id = id
}

// MemberID 所有会員のIDを返す
func (r *Redemption) MemberID() int64 {
	return r.memberID
}

// RewardID 景品IDを返す
func (r *Redemption) RewardID() int64 {
	return r.rewardID
}

// Quantity 数量を返す
func (r *Redemption) Quantity() int64 {
	return r.quantity
}

// TotalCost 凍結された合計コストを返す
func (r *Redemption) TotalCost() int64 {
	return r.totalCost
}

// ShippingNotes 配送先メモを返す
func (r *Redemption) ShippingNotes() string {
	return r.shippingNotes
}

// Note 遷移時の備考を返す
func (r *Redemption) Note() string {
	return r.note
}

// Status 現在のステータスを返す
func (r *Redemption) Status() Status {
	return r.status
}

// RedeemedAt 交換日時を返す
func (r *Redemption) RedeemedAt() time.Time {
	return r.redeemedAt
}

// ShippedAt 発送日時を返す（未発送の場合はnil）
func (r *Redemption) ShippedAt() *time.Time {
	return r.shippedAt
}

// DeliveredAt 受取確定日時を返す（未確定の場合はnil）
func (r *Redemption) DeliveredAt() *time.Time {
	return r.deliveredAt
}

// OwnedBy 指定した会員がこのレコードの所有者かどうかを返す
func (r *Redemption) OwnedBy(memberID int64) bool {
	return r.memberID == memberID
}

// Advance ステータスをtargetへ遷移させる
// 現在のステータスからの遷移が状態機械で許可されていない場合、または
// 操作者に遷移の権限がない場合はErrInvalidTransitionを返す。
// 受取確認（shipped -> delivered）は所有会員のみ、それ以外は管理者のみ。
func (r *Redemption) Advance(target Status, actor Actor, note string, now time.Time) error {
	if !target.Valid() {
		return ErrInvalidTransition
	}
	if !r.status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	if target == StatusDelivered {
		if actor.Role != ActorRoleMember || !r.OwnedBy(actor.MemberID) {
			return ErrInvalidTransition
		}
	} else {
		if actor.Role != ActorRoleAdmin {
			return ErrInvalidTransition
		}
	}

	r.status = target
	if note != "" {
		r.note = truncateNote(note)
	}

	switch target {
	case StatusShipped:
		r.shippedAt = &now
	case StatusDelivered, StatusRejected:
		r.deliveredAt = &now
	}

	return nil
}

// truncateNote 備考を最大長に切り詰める
func truncateNote(note string) string {
	runes := []rune(note)
	if len(runes) > MaxNoteLength {
		return string(runes[:MaxNoteLength])
	}
	return note
}
