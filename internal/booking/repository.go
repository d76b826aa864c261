package booking

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
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, f Filter) ([]*Booking, error)

	// UpdateStatus transitions a booking from one status to another and
	// reports whether the row was actually moved. A false result means a
	// concurrent writer got there first; callers re-read and report the
	// conflict against the status they then observe.
	UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error)

	// HasApprovedOverlap checks whether another approved booking of the item
	// intersects the given interval. Used by the exclusive-approval policy.
	HasApprovedOverlap(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.item_id", "i.name", "b.booker_id", "u.name", "i.owner_id",
		"b.start_time", "b.end_time", "b.status", "b.created_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

// listQuery builds the classifier query for one (role, bucket) pair. All ten
// combinations share the same predicates and the same ordering rule: start
// descending, id descending as the deterministic tie break.
func listQuery(f Filter) squirrel.SelectBuilder {
	query := selectBookings()

	switch f.Role {
	case RoleOwner:
		query = query.Where(squirrel.Eq{"i.owner_id": f.UserID})
	default:
		query = query.Where(squirrel.Eq{"b.booker_id": f.UserID})
	}

	switch f.Bucket {
	case BucketCurrent:
		query = query.
			Where(squirrel.LtOrEq{"b.start_time": f.Now}).
			Where(squirrel.GtOrEq{"b.end_time": f.Now})
	case BucketPast:
		query = query.Where(squirrel.Lt{"b.end_time": f.Now})
	case BucketFuture:
		query = query.Where(squirrel.Gt{"b.start_time": f.Now})
	case BucketWaiting:
		query = query.Where(squirrel.Eq{"b.status": StatusWaiting})
	case BucketRejected:
		// REJECTED and CANCELED are grouped as one declined view.
		query = query.Where(squirrel.Eq{"b.status": []Status{StatusRejected, StatusCanceled}})
	}

	return query.
		OrderBy("b.start_time DESC", "b.id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName, &b.OwnerID,
		&b.Start, &b.End, &b.Status, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, f Filter) ([]*Booking, error) {
	query, args, err := listQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName, &b.OwnerID,
			&b.Start, &b.End, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) HasApprovedOverlap(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error) {
	// Overlap: (start < existing end) AND (end > existing start).
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "status": StatusApproved}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != 0 {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
