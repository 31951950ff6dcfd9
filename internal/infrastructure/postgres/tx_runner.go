package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/encartes-api/internal/application/usecase"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var (
	_ usecase.ClientTxRunner  = (*TxRunner)(nil)
	_ usecase.GalleryTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunClient ejecuta fn con un repo de clientes atado a la tx (cliente + contactos).
func (r *TxRunner) RunClient(ctx context.Context, fn func(repo repository.ClientRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewClientRepository(tx))
	})
}

// RunGallery ejecuta fn con un repo de galería atado a la tx.
func (r *TxRunner) RunGallery(ctx context.Context, fn func(repo repository.GalleryRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewGalleryRepository(tx))
	})
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
