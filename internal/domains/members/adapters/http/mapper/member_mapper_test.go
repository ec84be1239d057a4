package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

func TestToMemberDto_SerializesEmptyAddressAsNull(t *testing.T) {
	payload, err := json.Marshal(ToMemberDto(&memberdomain.Member{ID: 1, Name: "userA"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"userA","address":null}`, string(payload))
}

func TestFromDomainMembers(t *testing.T) {
	members := FromDomainMembers([]*memberdomain.Member{
		{ID: 1, Name: "userA", Address: address.New("Seoul", "1", "1111")},
		{ID: 2, Name: "userB"},
	})
	require.Len(t, members, 2)
	assert.Equal(t, &address.View{City: "Seoul", Street: "1", Zipcode: "1111"}, members[0].Address)
	assert.Nil(t, members[1].Address)
}
