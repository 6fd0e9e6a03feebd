package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
)

const productColumns = "id, owner_id, brand_name, product_name, product_name_est, packet_size, unit, packet_price, price_per_unit, created_at, updated_at"

// ProductRepository implements the Repository interface for Product entities.
type ProductRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) repository.Repository {
	return &ProductRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *ProductRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// WithinTransaction executes a function within a database transaction
func (r *ProductRepository) WithinTransaction(ctx context.Context, fn func(repo repository.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txRepo := &ProductRepository{
		db:  r.db,
		txn: tx,
	}

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	product, ok := resource.(*model.Product)
	if !ok {
		return nil, errors.New("resource must be a *model.Product")
	}

	// Only initialize metadata if not already set
	if product.ID == uuid.Nil {
		product.InitMeta()
	}

	query := `INSERT INTO products (` + productColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		product.ID, product.OwnerID, product.BrandName, product.ProductName, product.ProductNameEst,
		product.PacketSize, product.Unit, product.PacketPrice, product.PricePerUnit,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// List retrieves products from the database based on the provided query,
// scoped by owner when the query carries one.
func (r *ProductRepository) List(ctx context.Context, query repository.Query) ([]repository.Resource, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + productColumns + " FROM products WHERE 1=1")

	var args []interface{}
	argIndex := 1

	if owner, ok := query.Values[repository.OwnerIDField]; ok {
		queryBuilder.WriteString(fmt.Sprintf(" AND owner_id = $%d", argIndex))
		args = append(args, owner)
		argIndex++
	}

	// Apply pagination
	if query.Paginator != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIndex, argIndex+1))
		args = append(args, query.Paginator.LastCreatedAt, query.Paginator.LastID)
		argIndex += 2
	}

	// Order by created_at DESC, id DESC for consistent pagination
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	limit := query.Limit
	if limit <= 0 {
		limit = repository.DefaultPaginationLimit
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
	args = append(args, limit)

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []repository.Resource
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// FindByID retrieves a single product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (repository.Resource, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = stmt.QueryRowContext(ctx, id).Scan(
		&result.ID, &result.OwnerID, &result.BrandName, &result.ProductName, &result.ProductNameEst,
		&result.PacketSize, &result.Unit, &result.PacketPrice, &result.PricePerUnit,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &result, nil
}

// Update overwrites a product's mutable fields.
func (r *ProductRepository) Update(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	product, ok := resource.(*model.Product)
	if !ok {
		return nil, errors.New("resource must be a *model.Product")
	}

	query := `UPDATE products
	          SET brand_name = $1, product_name = $2, product_name_est = $3, packet_size = $4,
	              unit = $5, packet_price = $6, price_per_unit = $7, updated_at = $8
	          WHERE id = $9`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		product.BrandName, product.ProductName, product.ProductNameEst, product.PacketSize,
		product.Unit, product.PacketPrice, product.PricePerUnit, product.UpdatedAt, product.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("product not found: %w", repository.ErrNotFound)
	}

	return product, nil
}

// DeleteByID deletes a product by ID.
func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product not found: %w", repository.ErrNotFound)
	}

	return nil
}

func scanProduct(rows *sql.Rows) (*model.Product, error) {
	var product model.Product
	err := rows.Scan(
		&product.ID, &product.OwnerID, &product.BrandName, &product.ProductName, &product.ProductNameEst,
		&product.PacketSize, &product.Unit, &product.PacketPrice, &product.PricePerUnit,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
