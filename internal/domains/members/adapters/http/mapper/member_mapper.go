package mapper

import (
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

// Member is the entity-shaped body used by the v1 endpoints.
type Member struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name" binding:"required"`
	Address *address.View `json:"address"`
}

// MemberDto is the v2 list element; it hides the identifier.
type MemberDto struct {
	Name    string        `json:"name"`
	Address *address.View `json:"address"`
}

// CreateMemberRequest is the v2 registration body.
type CreateMemberRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateMemberResponse carries the identifier of a new member.
type CreateMemberResponse struct {
	ID int64 `json:"id"`
}

// UpdateMemberRequest is the v2 rename body.
type UpdateMemberRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateMemberResponse echoes the renamed member.
type UpdateMemberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromDomainMember converts a member into the entity shape.
func FromDomainMember(member *memberdomain.Member) Member {
	if member == nil {
		return Member{}
	}
	return Member{
		ID:      member.ID,
		Name:    member.Name,
		Address: address.ToView(member.Address),
	}
}

// FromDomainMembers converts a list of members into the entity shape.
func FromDomainMembers(members []*memberdomain.Member) []Member {
	result := make([]Member, 0, len(members))
	for _, member := range members {
		result = append(result, FromDomainMember(member))
	}
	return result
}

// ToMemberDto hides the identifier.
func ToMemberDto(member *memberdomain.Member) MemberDto {
	return MemberDto{
		Name:    member.Name,
		Address: address.ToView(member.Address),
	}
}
