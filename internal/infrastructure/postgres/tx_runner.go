package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/warehouse-manager/internal/domain/repository"
)

// Ensure TxRunner implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*TxRunner)(nil)

// Querier es lo común entre pool y tx que usan los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txKey es la clave de contexto de la transacción activa.
type txKey struct{}

type activeTx struct {
	tx     pgx.Tx
	nested bool
	done   bool
}

// TxRunner implementa la unidad de trabajo sobre transacciones PostgreSQL.
// La transacción viaja en el contexto que devuelve Begin; fuera de ella los repos usan el pool.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Begin inicia una transacción READ COMMITTED. Si ctx ya trae una, se reutiliza y
// Commit/Rollback del nivel interno no la cierran.
func (r *TxRunner) Begin(ctx context.Context) (context.Context, error) {
	if cur := txFromContext(ctx); cur != nil && !cur.done {
		return context.WithValue(ctx, txKey{}, &activeTx{tx: cur.tx, nested: true}), nil
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return context.WithValue(ctx, txKey{}, &activeTx{tx: tx}), nil
}

// Commit confirma la transacción del contexto.
func (r *TxRunner) Commit(ctx context.Context) error {
	cur := txFromContext(ctx)
	if cur == nil || cur.done || cur.nested {
		return nil
	}
	cur.done = true
	if err := cur.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback revierte la transacción del contexto. Usa un contexto propio para
// completarse aunque ctx haya sido cancelado.
func (r *TxRunner) Rollback(ctx context.Context) error {
	cur := txFromContext(ctx)
	if cur == nil || cur.done || cur.nested {
		return nil
	}
	cur.done = true
	if err := cur.tx.Rollback(context.Background()); err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// Querier devuelve la transacción activa del contexto o, si no hay, el pool.
func (r *TxRunner) Querier(ctx context.Context) Querier {
	if cur := txFromContext(ctx); cur != nil && !cur.done {
		return cur.tx
	}
	return r.pool
}

func txFromContext(ctx context.Context) *activeTx {
	cur, _ := ctx.Value(txKey{}).(*activeTx)
	return cur
}
