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
	"github.com/lib/pq"
)

const templateColumns = "id, owner_id, name, width, height, created_at"

// TemplateRepository implements the Repository interface for LabelTemplate
// entities. The (owner_id, name) pair is guarded by a unique index, so a
// duplicate name surfaces as a UniqueConstraintError straight from the
// insert, never via a racy check-then-insert.
type TemplateRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewTemplateRepository creates a new TemplateRepository instance.
func NewTemplateRepository(db *sql.DB) repository.Repository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// WithinTransaction executes a function within a database transaction
func (r *TemplateRepository) WithinTransaction(ctx context.Context, fn func(repo repository.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txRepo := &TemplateRepository{
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

// Create inserts a new label template into the database.
func (r *TemplateRepository) Create(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	template, ok := resource.(*model.LabelTemplate)
	if !ok {
		return nil, errors.New("resource must be a *model.LabelTemplate")
	}

	if template.ID == uuid.Nil {
		template.InitMeta()
	}

	query := `INSERT INTO label_templates (` + templateColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		template.ID, template.OwnerID, template.Name, template.Width, template.Height, template.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &repository.UniqueConstraintError{Detail: uniqueViolationDetail(err)}
		}
		return nil, fmt.Errorf("failed to insert template: %w", err)
	}

	return template, nil
}

// List retrieves label templates ordered most-recently-created first,
// scoped by owner when the query carries one.
func (r *TemplateRepository) List(ctx context.Context, query repository.Query) ([]repository.Resource, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + templateColumns + " FROM label_templates WHERE 1=1")

	var args []interface{}
	argIndex := 1

	if owner, ok := query.Values[repository.OwnerIDField]; ok {
		queryBuilder.WriteString(fmt.Sprintf(" AND owner_id = $%d", argIndex))
		args = append(args, owner)
		argIndex++
	}

	if query.Paginator != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIndex, argIndex+1))
		args = append(args, query.Paginator.LastCreatedAt, query.Paginator.LastID)
		argIndex += 2
	}

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
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []repository.Resource
	for rows.Next() {
		var template model.LabelTemplate
		err := rows.Scan(&template.ID, &template.OwnerID, &template.Name, &template.Width, &template.Height, &template.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, &template)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return templates, nil
}

// FindByID retrieves a single label template by ID.
func (r *TemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (repository.Resource, error) {
	query := `SELECT ` + templateColumns + ` FROM label_templates WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.LabelTemplate
	err = stmt.QueryRowContext(ctx, id).Scan(
		&result.ID, &result.OwnerID, &result.Name, &result.Width, &result.Height, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("template not found: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query template: %w", err)
	}

	return &result, nil
}

// Update overwrites a template's name and dimensions.
func (r *TemplateRepository) Update(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	template, ok := resource.(*model.LabelTemplate)
	if !ok {
		return nil, errors.New("resource must be a *model.LabelTemplate")
	}

	query := `UPDATE label_templates SET name = $1, width = $2, height = $3 WHERE id = $4`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, template.Name, template.Width, template.Height, template.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &repository.UniqueConstraintError{Detail: uniqueViolationDetail(err)}
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("template not found: %w", repository.ErrNotFound)
	}

	return template, nil
}

// DeleteByID deletes a label template by ID.
func (r *TemplateRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM label_templates WHERE id = $1`

	executor := r.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("template not found: %w", repository.ErrNotFound)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolationErrCode
}

func uniqueViolationDetail(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Detail
	}
	return err.Error()
}
