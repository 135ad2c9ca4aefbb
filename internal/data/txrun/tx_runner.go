package txrun

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
)

// TxRunner is the transaction boundary for multi-entity writes. Every
// logical operation that touches more than one row (template creation,
// response submission with its audit rows) runs inside InTx so a failure
// anywhere, audit writes included, rolls the whole operation back.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return fmt.Errorf("transaction runner has nil db")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
