package privilege

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyHierarchy 権限階層が空
	ErrEmptyHierarchy = errors.New("privilege hierarchy is empty")
	// ErrDuplicateLabel 権限ラベルが重複
	ErrDuplicateLabel = errors.New("duplicate privilege label")
)

const (
	// LabelUser 一般会員
	LabelUser = "user"
	// LabelPlus 有料会員
	LabelPlus = "plus"
	// LabelPartner パートナー
	LabelPartner = "partner"
	// LabelAdmin 管理者
	LabelAdmin = "admin"
)

// UnknownRank 未知のラベルに割り当てるランク（どの実要求にも支配されない）
const UnknownRank = 0

// Hierarchy 権限ラベルの全順序。ランクは1始まりで権限が強いほど大きい。
// 構築後は読み取り専用であり、ストレージには一切アクセスしない。
type Hierarchy struct {
	ranks map[string]int
}

// NewHierarchy 順序付きラベルリストからHierarchyを作成
// labels[0]がランク1、labels[1]がランク2、となる。
func NewHierarchy(labels []string) (*Hierarchy, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyHierarchy
	}

	ranks := make(map[string]int, len(labels))
	for i, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, ErrEmptyHierarchy
		}
		if _, ok := ranks[label]; ok {
			return nil, ErrDuplicateLabel
		}
		ranks[label] = i + 1
	}

	return &Hierarchy{ranks: ranks}, nil
}

// DefaultHierarchy 既定の権限階層（user < plus < partner < admin）を返す
func DefaultHierarchy() *Hierarchy {
	h, err := NewHierarchy([]string{LabelUser, LabelPlus, LabelPartner, LabelAdmin})
	if err != nil {
		panic(err)
	}
	return h
}

// Rank ラベルのランクを返す。未知のラベルはUnknownRank（0）。
func (h *Hierarchy) Rank(label string) int {
	if rank, ok := h.ranks[label]; ok {
		return rank
	}
	return UnknownRank
}

// Dominates callerのランクがrequiredのランク以上かどうかを返す
// requiredが空文字（要求なし）の場合はランク0扱いとなり、誰でも満たす。
func (h *Hierarchy) Dominates(caller, required string) bool {
	if required == "" {
		return true
	}
	return h.Rank(caller) >= h.Rank(required)
}

// Known ラベルが階層に定義されているかどうかを返す
func (h *Hierarchy) Known(label string) bool {
	_, ok := h.ranks[label]
	return ok
}

// Labels ランク昇順のラベル一覧を返す
func (h *Hierarchy) Labels() []string {
	labels := make([]string, len(h.ranks))
	for label, rank := range h.ranks {
		labels[rank-1] = label
	}
	return labels
}
