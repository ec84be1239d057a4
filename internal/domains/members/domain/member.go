package domain

import (
	"errors"
	"strings"

	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

var ErrEmptyName = errors.New("member name is required")

// Member is a registered shop customer.
type Member struct {
	ID      int64
	Name    string
	Address address.Address
}

// NewMember builds a member that has not been persisted yet.
func NewMember(name string, addr address.Address) (*Member, error) {
	member := &Member{Address: addr}
	if err := member.Rename(name); err != nil {
		return nil, err
	}
	return member, nil
}

// Rename trims and validates the new name.
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.Name = name
	return nil
}

// Validate enforces invariants on the aggregate.
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
