//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/application"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

func setupMembersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_JoinInTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupMembersPostgresContainer(t)
	defer cleanup()

	svc := application.NewService(NewRepository(db), application.WithUnitOfWork(platformpostgres.NewTransactor(db)))
	ctx := context.Background()

	id, err := svc.Join(ctx, "userA", address.New("Seoul", "1", "1111"))
	require.NoError(t, err)

	found, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "userA", found.Name)
	assert.Equal(t, "1111", found.Address.Zipcode)

	_, err = svc.Join(ctx, "userA", address.Address{})
	assert.ErrorIs(t, err, application.ErrDuplicateName)
}

func TestRepository_ReadOnlyUnitOfWorkRejectsWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupMembersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	tx := platformpostgres.NewTransactor(db)
	ctx := context.Background()

	err := tx.Do(ctx, unitofwork.Options{ReadOnly: true}, func(ctx context.Context) error {
		_, err := repo.Save(ctx, &domain.Member{Name: "userB"})
		return err
	})
	require.Error(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
