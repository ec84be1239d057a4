package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

func TestNewMember(t *testing.T) {
	m, err := NewMember("  userA ", address.New("Seoul", "1", "1111"))
	require.NoError(t, err)
	assert.Equal(t, "userA", m.Name)
	assert.Zero(t, m.ID)
	assert.Equal(t, "Seoul", m.Address.City)
}

func TestNewMember_RejectsBlankName(t *testing.T) {
	_, err := NewMember("   ", address.Address{})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestRename_KeepsOldNameOnError(t *testing.T) {
	m := &Member{ID: 1, Name: "userA"}
	require.ErrorIs(t, m.Rename(""), ErrEmptyName)
	assert.Equal(t, "userA", m.Name)
	require.NoError(t, m.Rename("userC"))
	assert.Equal(t, "userC", m.Name)
}
