package booking

import (
	"net/http"
	"time"

	"lendit/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be strictly before end time")
	ErrTimeRequired     = apperror.New(http.StatusBadRequest, "start and end times must be set")
	ErrTimeInPast       = apperror.New(http.StatusBadRequest, "booking interval must lie in the future")
	ErrApproveForbidden = apperror.New(http.StatusForbidden, "only the item owner may approve or reject a booking")
	ErrCancelForbidden  = apperror.New(http.StatusForbidden, "only the booker may cancel a booking")
	ErrAlreadyApproved  = apperror.New(http.StatusConflict, "booking already has the target status")
)

// Status is the lifecycle state of a booking. WAITING is the only initial
// state; APPROVED, REJECTED and CANCELED are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCanceled
}

// Bucket selects a temporal/status partition of a user's bookings.
type Bucket string

const (
	BucketAll      Bucket = "ALL"
	BucketCurrent  Bucket = "CURRENT"
	BucketPast     Bucket = "PAST"
	BucketFuture   Bucket = "FUTURE"
	BucketWaiting  Bucket = "WAITING"
	BucketRejected Bucket = "REJECTED"
)

// ParseBucket maps a state token onto a Bucket, rejecting unknown tokens.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketAll, BucketCurrent, BucketPast, BucketFuture, BucketWaiting, BucketRejected:
		return Bucket(s), nil
	default:
		return "", apperror.BadRequest("Unknown state: %s", s)
	}
}

// Role determines whether a listing is scoped by the booking's booker or by
// the owner of the booked item.
type Role string

const (
	RoleBooker Role = "booker"
	RoleOwner  Role = "owner"
)

// Booking is the ledger record of one reservation of one item.
// Item and booker references never change after creation; only the status
// moves, and only along the state machine.
type Booking struct {
	ID         int64
	ItemID     int64
	ItemName   string
	BookerID   int64
	BookerName string
	OwnerID    int64
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
}

// Filter drives the temporal classifier: one user, one role scope, one
// bucket, evaluated against a single now-snapshot.
type Filter struct {
	UserID int64
	Role   Role
	Bucket Bucket
	Now    time.Time
	Limit  int
	Offset int
}
