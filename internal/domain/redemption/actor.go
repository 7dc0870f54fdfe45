package redemption

import (
	"fmt"
)

// ActorRole 遷移を要求する操作者の役割
type ActorRole string

const (
	ActorRoleAdmin  ActorRole = "admin"  // 管理者
	ActorRoleMember ActorRole = "member" // 会員
)

// NewActorRole 新しいActorRoleを作成
func NewActorRole(s string) (ActorRole, error) {
	switch s {
	case "admin", "member":
		return ActorRole(s), nil
	default:
		return "", fmt.Errorf("invalid actor role: %s", s)
	}
}

// String 文字列表現を返す
func (r ActorRole) String() string {
	return string(r)
}

// Actor ステータス遷移の操作者
// MemberIDは役割がmemberの場合のみ意味を持つ。
type Actor struct {
	Role     ActorRole
	MemberID int64
}

// AdminActor 管理者のActorを返す
func AdminActor() Actor {
	return Actor{Role: ActorRoleAdmin}
}

// MemberActor 会員のActorを返す
func MemberActor(memberID int64) Actor {
	return Actor{Role: ActorRoleMember, MemberID: memberID}
}
