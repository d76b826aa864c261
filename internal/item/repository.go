package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]*Item, error)

	// LastBooking returns the approved booking of the item with the greatest
	// start instant that is still <= now, or nil if none exists.
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	// NextBooking returns the approved booking of the item with the smallest
	// start instant strictly after now, or nil if none exists.
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	// CompletedBooking returns the earliest-ending approved booking of the
	// item by the given booker whose end lies strictly before now, or nil.
	CompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (*BookingRef, error)

	SaveComment(ctx context.Context, c *Comment) error
	CommentsByItem(ctx context.Context, itemID int64) ([]Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&it.ID); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	var it Item
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}
	return r.queryItems(ctx, query, args)
}

func (r *pgxRepository) Search(ctx context.Context, text string) ([]*Item, error) {
	pattern := "%" + text + "%"
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search items query failed: %w", err)
	}
	return r.queryItems(ctx, query, args)
}

func (r *pgxRepository) ListByRequest(ctx context.Context, requestID int64) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items by request query failed: %w", err)
	}
	return r.queryItems(ctx, query, args)
}

func (r *pgxRepository) queryItems(ctx context.Context, query string, args []any) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *pgxRepository) LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booker_id").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "status": "APPROVED"}).
		Where(squirrel.LtOrEq{"start_time": now}).
		OrderBy("start_time DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build last booking query failed: %w", err)
	}
	return r.queryBookingRef(ctx, query, args)
}

func (r *pgxRepository) NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booker_id").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "status": "APPROVED"}).
		Where(squirrel.Gt{"start_time": now}).
		OrderBy("start_time ASC", "id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build next booking query failed: %w", err)
	}
	return r.queryBookingRef(ctx, query, args)
}

func (r *pgxRepository) CompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (*BookingRef, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booker_id").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "booker_id": bookerID, "status": "APPROVED"}).
		Where(squirrel.Lt{"end_time": now}).
		OrderBy("end_time ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build completed booking query failed: %w", err)
	}
	return r.queryBookingRef(ctx, query, args)
}

func (r *pgxRepository) queryBookingRef(ctx context.Context, query string, args []any) (*BookingRef, error) {
	var ref BookingRef
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&ref.ID, &ref.BookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query booking ref failed: %w", err)
	}
	return &ref, nil
}

func (r *pgxRepository) SaveComment(ctx context.Context, c *Comment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.comments").
		Columns("text", "item_id", "author_id", "created").
		Values(c.Text, c.ItemID, c.AuthorID, c.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save comment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("save comment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CommentsByItem(ctx context.Context, itemID int64) ([]Comment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.created").
		From("public.comments c").
		Join("public.users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.created ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
