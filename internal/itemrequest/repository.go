package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id int64) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, requestorID int64, limit, offset int) ([]*ItemRequest, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.requests").
		Columns("description", "requestor_id", "created").
		Values(req.Description, req.RequestorID, req.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID); err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requestor_id", "created").
		From("public.requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var req ItemRequest
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requestor_id", "created").
		From("public.requests").
		Where(squirrel.Eq{"requestor_id": requestorID}).
		OrderBy("created DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}
	return r.queryRequests(ctx, query, args)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requestorID int64, limit, offset int) ([]*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requestor_id", "created").
		From("public.requests").
		Where(squirrel.NotEq{"requestor_id": requestorID}).
		OrderBy("created DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list other requests query failed: %w", err)
	}
	return r.queryRequests(ctx, query, args)
}

func (r *pgxRepository) queryRequests(ctx context.Context, query string, args []any) ([]*ItemRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}
