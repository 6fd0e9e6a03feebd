package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
	"github.com/lib/pq"
)

const ownerColumns = "id, email, shop_name, created_at, updated_at"

// OwnerRepository implements the Repository interface for Owner entities.
type OwnerRepository struct {
	db *sql.DB
}

// NewOwnerRepository creates a new OwnerRepository instance.
func NewOwnerRepository(db *sql.DB) repository.Repository {
	return &OwnerRepository{db: db}
}

// Create inserts a new owner into the database.
func (r *OwnerRepository) Create(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	owner, ok := resource.(*model.Owner)
	if !ok {
		return nil, errors.New("resource must be a *model.Owner")
	}

	owner.InitMeta()

	query := `INSERT INTO owners (` + ownerColumns + `) VALUES ($1, $2, $3, $4, $5)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, owner.ID, owner.Email, owner.ShopName, owner.CreatedAt, owner.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolationErrCode {
			return nil, &repository.UniqueConstraintError{Detail: pqErr.Detail}
		}
		return nil, fmt.Errorf("failed to insert owner: %w", err)
	}

	return owner, nil
}

// List retrieves owners ordered most-recently-created first.
func (r *OwnerRepository) List(ctx context.Context, query repository.Query) ([]repository.Resource, error) {
	sqlQuery := `SELECT ` + ownerColumns + ` FROM owners ORDER BY created_at DESC, id DESC LIMIT $1`

	limit := query.Limit
	if limit <= 0 {
		limit = repository.DefaultPaginationLimit
	}

	stmt, err := r.db.PrepareContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query owners: %w", err)
	}
	defer rows.Close()

	var owners []repository.Resource
	for rows.Next() {
		var owner model.Owner
		if err := rows.Scan(&owner.ID, &owner.Email, &owner.ShopName, &owner.CreatedAt, &owner.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		owners = append(owners, &owner)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return owners, nil
}

// FindByID retrieves a single owner by ID.
func (r *OwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (repository.Resource, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Owner
	err = stmt.QueryRowContext(ctx, id).Scan(&result.ID, &result.Email, &result.ShopName, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("owner not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query owner: %w", err)
	}

	return &result, nil
}

// Update overwrites an owner's mutable fields.
func (r *OwnerRepository) Update(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	owner, ok := resource.(*model.Owner)
	if !ok {
		return nil, errors.New("resource must be a *model.Owner")
	}

	query := `UPDATE owners SET email = $1, shop_name = $2, updated_at = $3 WHERE id = $4`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, owner.Email, owner.ShopName, owner.UpdatedAt, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("owner not found: %w", repository.ErrNotFound)
	}

	return owner, nil
}

// DeleteByID deletes an owner by ID.
func (r *OwnerRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM owners WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete owner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("owner not found: %w", repository.ErrNotFound)
	}

	return nil
}

// WithinTransaction is unsupported for owners; registration is a single insert.
func (r *OwnerRepository) WithinTransaction(_ context.Context, _ func(repo repository.Repository) error) error {
	return errors.New("owner repository does not support transactions")
}
