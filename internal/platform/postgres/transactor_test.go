package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres/dbtest"
	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

func countMembers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Table("members").Count(&count).Error)
	return count
}

func insertMember(ctx context.Context, db *gorm.DB, name string) error {
	return platformpostgres.Conn(ctx, db).Exec("INSERT INTO members (name) VALUES (?)", name).Error
}

func TestTransactor_CommitsOnSuccess(t *testing.T) {
	db := dbtest.Open(t)
	tx := platformpostgres.NewTransactor(db)

	err := tx.Do(context.Background(), unitofwork.Options{}, func(ctx context.Context) error {
		return insertMember(ctx, db, "userA")
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countMembers(t, db))
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := dbtest.Open(t)
	tx := platformpostgres.NewTransactor(db)
	failure := errors.New("boom")

	err := tx.Do(context.Background(), unitofwork.Options{}, func(ctx context.Context) error {
		if err := insertMember(ctx, db, "userA"); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)
	assert.Equal(t, int64(0), countMembers(t, db))
}

func TestTransactor_NestedCallsJoinOuterTransaction(t *testing.T) {
	db := dbtest.Open(t)
	tx := platformpostgres.NewTransactor(db)
	failure := errors.New("outer failed")

	err := tx.Do(context.Background(), unitofwork.Options{}, func(ctx context.Context) error {
		inner := tx.Do(ctx, unitofwork.Options{ReadOnly: true}, func(ctx context.Context) error {
			return insertMember(ctx, db, "userB")
		})
		if inner != nil {
			return inner
		}
		return failure
	})
	require.ErrorIs(t, err, failure)
	assert.Equal(t, int64(0), countMembers(t, db))
}

func TestTransactor_RollsBackOnPanic(t *testing.T) {
	db := dbtest.Open(t)
	tx := platformpostgres.NewTransactor(db)

	assert.Panics(t, func() {
		_ = tx.Do(context.Background(), unitofwork.Options{}, func(ctx context.Context) error {
			if err := insertMember(ctx, db, "userA"); err != nil {
				return err
			}
			panic("boom")
		})
	})
	assert.Equal(t, int64(0), countMembers(t, db))
}

func TestIsPostgres(t *testing.T) {
	assert.False(t, platformpostgres.IsPostgres(dbtest.Open(t)))
	assert.False(t, platformpostgres.IsPostgres(nil))
}
