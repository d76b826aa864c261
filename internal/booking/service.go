package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"lendit/internal/item"
	"lendit/internal/metrics"
	"lendit/internal/pkg/apperror"
	"lendit/internal/user"
)

// Policy holds the deployment-chosen booking invariants.
type Policy struct {
	// AllowRejectApproved permits an owner to reject a booking that was
	// already approved. When false the APPROVED state is strictly terminal.
	AllowRejectApproved bool
	// ExclusiveApproval refuses to approve a booking whose interval overlaps
	// another approved booking of the same item. When false overlapping
	// approvals are allowed and conflict resolution is left to the owner.
	ExclusiveApproval bool
}

// Service owns the booking lifecycle: creation through the availability
// checks, owner decisions, booker cancellation and the temporal listing.
type Service interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*Booking, error)
	Approve(ctx context.Context, callerID, bookingID int64, approved bool) (*Booking, error)
	Cancel(ctx context.Context, callerID, bookingID int64) (*Booking, error)
	GetByID(ctx context.Context, callerID, bookingID int64) (*Booking, error)
	List(ctx context.Context, userID int64, role Role, bucket Bucket, from, size int) ([]*Booking, error)
}

type service struct {
	repo   Repository
	items  item.Service
	users  user.Service
	policy Policy
	log    zerolog.Logger
}

func NewService(repo Repository, items item.Service, users user.Service, policy Policy, log zerolog.Logger) Service {
	return &service{
		repo:   repo,
		items:  items,
		users:  users,
		policy: policy,
		log:    log,
	}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*Booking, error) {
	// Single now-snapshot for every time comparison in this call.
	now := time.Now().UTC()

	if start.IsZero() || end.IsZero() {
		return nil, ErrTimeRequired
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	if !start.After(now) || !end.After(now) {
		return nil, ErrTimeInPast
	}

	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}

	it, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// An owner cannot book their own item. Reported as not-found rather than
	// forbidden so ownership is not confirmed to the caller.
	if it.OwnerID == bookerID {
		return nil, apperror.NotFound("item with id=%d not found", itemID)
	}
	if !it.Available {
		return nil, apperror.BadRequest("item with id=%d is not available for booking", itemID)
	}

	b := &Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.ItemName = it.Name
	b.OwnerID = it.OwnerID

	metrics.IncBookingCreated()
	s.log.Info().Int64("booking_id", b.ID).Int64("item_id", itemID).Int64("booker_id", bookerID).Msg("booking created")
	return b, nil
}

func (s *service) Approve(ctx context.Context, callerID, bookingID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != callerID {
		return nil, ErrApproveForbidden
	}

	target := StatusRejected
	if approved {
		target = StatusApproved
	}

	if approved && b.Status == StatusApproved {
		return nil, ErrAlreadyApproved
	}
	if b.Status != StatusWaiting {
		rejectingApproved := !approved && b.Status == StatusApproved
		if !rejectingApproved || !s.policy.AllowRejectApproved {
			return nil, apperror.Conflict("booking is already %s", b.Status)
		}
	}

	if approved && s.policy.ExclusiveApproval {
		overlap, err := s.repo.HasApprovedOverlap(ctx, b.ItemID, b.Start, b.End, b.ID)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, apperror.Conflict("an overlapping approved booking already exists for item %d", b.ItemID)
		}
	}

	return s.transition(ctx, b, target)
}

func (s *service) Cancel(ctx context.Context, callerID, bookingID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Strangers get not-found, the owner gets forbidden: the owner already
	// knows the booking exists.
	if callerID != b.BookerID && callerID != b.OwnerID {
		return nil, ErrNotFound
	}
	if callerID != b.BookerID {
		return nil, ErrCancelForbidden
	}
	if b.Status != StatusWaiting {
		return nil, apperror.Conflict("booking is already %s", b.Status)
	}

	return s.transition(ctx, b, StatusCanceled)
}

// transition moves b to target, surfacing a conflict naming the current
// status when a concurrent writer already resolved the booking.
func (s *service) transition(ctx context.Context, b *Booking, target Status) (*Booking, error) {
	moved, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, target)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetByID(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		return nil, apperror.Conflict("booking is already %s", current.Status)
	}

	b.Status = target
	metrics.IncBookingDecision(target.String())
	s.log.Info().Int64("booking_id", b.ID).Str("status", target.String()).Msg("booking resolved")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, callerID, bookingID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Visible to the booker and the item owner only; everyone else gets
	// not-found so existence is not confirmed.
	if callerID != b.BookerID && callerID != b.OwnerID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) List(ctx context.Context, userID int64, role Role, bucket Bucket, from, size int) ([]*Booking, error) {
	if from < 0 || size <= 0 {
		return nil, apperror.BadRequest("invalid paging: from=%d size=%d", from, size)
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("user with id=%d not found", userID)
	}

	// Page semantics: page index = from / size.
	offset := (from / size) * size

	return s.repo.List(ctx, Filter{
		UserID: userID,
		Role:   role,
		Bucket: bucket,
		Now:    time.Now().UTC(),
		Limit:  size,
		Offset: offset,
	})
}
