package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
)

// TransactionalRepository provides methods to work with multiple repositories in a single transaction
type TransactionalRepository struct {
	db *sql.DB
}

// NewTransactionalRepository creates a new TransactionalRepository
func NewTransactionalRepository(db *sql.DB) *TransactionalRepository {
	return &TransactionalRepository{db: db}
}

// CreateProductWithEvent creates a product and an outbox event in a single transaction
func (tr *TransactionalRepository) CreateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error) {
	var created *model.Product
	err := tr.withProductAndEvent(ctx, event, func(productRepo *ProductRepository) error {
		res, err := productRepo.Create(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		var ok bool
		created, ok = res.(*model.Product)
		if !ok {
			return repository.ErrInvalidType
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProductWithEvent updates a product and records an outbox event in a single transaction
func (tr *TransactionalRepository) UpdateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error) {
	var updated *model.Product
	err := tr.withProductAndEvent(ctx, event, func(productRepo *ProductRepository) error {
		res, err := productRepo.Update(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		var ok bool
		updated, ok = res.(*model.Product)
		if !ok {
			return repository.ErrInvalidType
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProductWithEvent deletes a product and records an outbox event in a single transaction
func (tr *TransactionalRepository) DeleteProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) error {
	return tr.withProductAndEvent(ctx, event, func(productRepo *ProductRepository) error {
		if err := productRepo.DeleteByID(ctx, product.ID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// withProductAndEvent runs the product mutation and the event insert in one
// transaction so the outbox row is never written without the mutation (or
// vice versa).
func (tr *TransactionalRepository) withProductAndEvent(ctx context.Context, event *model.Event, mutate func(productRepo *ProductRepository) error) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	productRepo := &ProductRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	if err := mutate(productRepo); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := eventRepo.Create(ctx, event); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
