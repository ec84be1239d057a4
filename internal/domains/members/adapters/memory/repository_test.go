package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
)

func TestRepository_SaveAssignsIDsAndClones(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, &domain.Member{Name: "userA"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	saved.Name = "mutated"
	fetched, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "userA", fetched.Name)
}

func TestRepository_UpdateUnknownMember(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Save(context.Background(), &domain.Member{ID: 7, Name: "ghost"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListIsOrderedByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, name := range []string{"userA", "userB", "userA"} {
		_, err := repo.Save(ctx, &domain.Member{Name: name})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{list[0].ID, list[1].ID, list[2].ID})

	named, err := repo.FindByName(ctx, "userA")
	require.NoError(t, err)
	assert.Len(t, named, 2)
}
