package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

type txKey struct{}

var _ unitofwork.Manager = (*Transactor)(nil)

// Transactor implements unitofwork.Manager on top of a GORM transaction.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// Do runs fn in a transaction stored on the context. Calls made while a
// transaction is already on the context join it.
func (t *Transactor) Do(ctx context.Context, opts unitofwork.Options, fn func(ctx context.Context) error) error {
	if t == nil || t.db == nil {
		return errors.New("postgres transactor not configured")
	}
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	run := func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}
	// SQLite has no read-only transactions; only PostgreSQL gets the hint.
	if opts.ReadOnly && IsPostgres(t.db) {
		return t.db.WithContext(ctx).Transaction(run, &sql.TxOptions{ReadOnly: true})
	}
	return t.db.WithContext(ctx).Transaction(run)
}

// Conn returns the transaction carried by ctx, or db when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
