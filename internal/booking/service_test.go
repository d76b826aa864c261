package booking

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendit/internal/item"
	"lendit/internal/pkg/apperror"
	"lendit/internal/user"
)

type fakeRepo struct {
	bookings   map[int64]*Booking
	nextID     int64
	lastFilter Filter
	listed     []*Booking
	overlap    bool

	// updateMoved overrides the outcome of UpdateStatus when set, simulating
	// a concurrent writer that resolved the booking first.
	updateMoved *bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[int64]*Booking{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now().UTC()
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, f Filter) ([]*Booking, error) {
	r.lastFilter = f
	return r.listed, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, from, to Status) (bool, error) {
	if r.updateMoved != nil {
		return *r.updateMoved, nil
	}
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *fakeRepo) HasApprovedOverlap(_ context.Context, _ int64, _, _ time.Time, _ int64) (bool, error) {
	return r.overlap, nil
}

type fakeItems struct {
	item.Service
	items map[int64]*item.Item
}

func (f *fakeItems) Get(_ context.Context, id int64) (*item.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

type fakeUsers struct {
	user.Service
	users map[int64]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

const (
	ownerID    = int64(1)
	bookerID   = int64(2)
	strangerID = int64(3)
	itemID     = int64(10)
)

func newTestService(repo *fakeRepo, policy Policy) Service {
	items := &fakeItems{items: map[int64]*item.Item{
		itemID: {ID: itemID, Name: "drill", Available: true, OwnerID: ownerID},
		11:     {ID: 11, Name: "ladder", Available: false, OwnerID: ownerID},
	}}
	users := &fakeUsers{users: map[int64]*user.User{
		ownerID:    {ID: ownerID, Name: "owner"},
		bookerID:   {ID: bookerID, Name: "booker"},
		strangerID: {ID: strangerID, Name: "stranger"},
	}}
	return NewService(repo, items, users, policy, zerolog.Nop())
}

func seedBooking(repo *fakeRepo, status Status) *Booking {
	b := &Booking{
		ItemID:   itemID,
		ItemName: "drill",
		BookerID: bookerID,
		OwnerID:  ownerID,
		Start:    time.Now().UTC().Add(time.Hour),
		End:      time.Now().UTC().Add(2 * time.Hour),
		Status:   status,
	}
	_ = repo.Create(context.Background(), b)
	repo.bookings[b.ID].Status = status
	b.Status = status
	return b
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestCreateValidatesInterval(t *testing.T) {
	svc := newTestService(newFakeRepo(), Policy{})
	ctx := context.Background()
	future := time.Now().UTC().Add(time.Hour)

	_, err := svc.Create(ctx, bookerID, itemID, time.Time{}, future)
	assert.ErrorIs(t, err, ErrTimeRequired)

	_, err = svc.Create(ctx, bookerID, itemID, future, future)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.Create(ctx, bookerID, itemID, future.Add(time.Hour), future)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	past := time.Now().UTC().Add(-time.Hour)
	_, err = svc.Create(ctx, bookerID, itemID, past, future)
	assert.ErrorIs(t, err, ErrTimeInPast)
}

func TestCreateChecksCollaborators(t *testing.T) {
	svc := newTestService(newFakeRepo(), Policy{})
	ctx := context.Background()
	start := time.Now().UTC().Add(time.Hour)
	end := start.Add(time.Hour)

	_, err := svc.Create(ctx, 99, itemID, start, end)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = svc.Create(ctx, bookerID, 404, start, end)
	assert.ErrorIs(t, err, item.ErrNotFound)

	// Booking one's own item is reported as not-found, not forbidden.
	_, err = svc.Create(ctx, ownerID, itemID, start, end)
	assert.Equal(t, 404, statusCode(t, err))

	_, err = svc.Create(ctx, bookerID, 11, start, end)
	assert.Equal(t, 400, statusCode(t, err))
}

func TestCreateStartsWaiting(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{})
	start := time.Now().UTC().Add(time.Hour)

	b, err := svc.Create(context.Background(), bookerID, itemID, start, start.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, StatusWaiting, b.Status)
	assert.Equal(t, "drill", b.ItemName)
	assert.Equal(t, ownerID, b.OwnerID)
	assert.NotZero(t, b.ID)
	assert.Equal(t, StatusWaiting, repo.bookings[b.ID].Status)
}

func TestApproveAuthorization(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{})
	b := seedBooking(repo, StatusWaiting)

	_, err := svc.Approve(context.Background(), bookerID, b.ID, true)
	assert.ErrorIs(t, err, ErrApproveForbidden)

	_, err = svc.Approve(context.Background(), ownerID, 404, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveAndReject(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{})
	ctx := context.Background()

	b := seedBooking(repo, StatusWaiting)
	got, err := svc.Approve(ctx, ownerID, b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)

	b = seedBooking(repo, StatusWaiting)
	got, err = svc.Approve(ctx, ownerID, b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
}

func TestApproveApprovedConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{AllowRejectApproved: true})
	b := seedBooking(repo, StatusApproved)

	_, err := svc.Approve(context.Background(), ownerID, b.ID, true)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestRejectApprovedFollowsPolicy(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{AllowRejectApproved: true})
	b := seedBooking(repo, StatusApproved)

	got, err := svc.Approve(context.Background(), ownerID, b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)

	repo = newFakeRepo()
	svc = newTestService(repo, Policy{AllowRejectApproved: false})
	b = seedBooking(repo, StatusApproved)

	_, err = svc.Approve(context.Background(), ownerID, b.ID, false)
	assert.Equal(t, 409, statusCode(t, err))
	assert.Contains(t, err.Error(), "APPROVED")
}

func TestDecideResolvedBookingConflicts(t *testing.T) {
	for _, status := range []Status{StatusRejected, StatusCanceled} {
		repo := newFakeRepo()
		svc := newTestService(repo, Policy{AllowRejectApproved: true})
		b := seedBooking(repo, status)

		_, err := svc.Approve(context.Background(), ownerID, b.ID, true)
		assert.Equal(t, 409, statusCode(t, err))
		assert.Contains(t, err.Error(), status.String())
	}
}

func TestExclusiveApprovalRefusesOverlap(t *testing.T) {
	repo := newFakeRepo()
	repo.overlap = true
	svc := newTestService(repo, Policy{ExclusiveApproval: true})
	b := seedBooking(repo, StatusWaiting)

	_, err := svc.Approve(context.Background(), ownerID, b.ID, true)
	assert.Equal(t, 409, statusCode(t, err))

	// Rejection is never blocked by overlap.
	_, err = svc.Approve(context.Background(), ownerID, b.ID, false)
	assert.NoError(t, err)
}

func TestApproveRaceLoserGetsConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{})
	b := seedBooking(repo, StatusWaiting)

	// The conditional update reports no row moved; the booking was meanwhile
	// rejected by a concurrent call.
	moved := false
	repo.updateMoved = &moved
	repo.bookings[b.ID].Status = StatusRejected

	_, err := svc.Approve(context.Background(), ownerID, b.ID, true)
	assert.Equal(t, 409, statusCode(t, err))
	assert.Contains(t, err.Error(), "REJECTED")
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{})
	ctx := context.Background()
	b := seedBooking(repo, StatusWaiting)

	_, err := svc.Cancel(ctx, strangerID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Cancel(ctx, ownerID, b.ID)
	assert.ErrorIs(t, err, ErrCancelForbidden)

	got, err := svc.Cancel(ctx, bookerID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, got.Status)

	b = seedBooking(repo, StatusApproved)
	_, err = svc.Cancel(ctx, bookerID, b.ID)
	assert.Equal(t, 409, statusCode(t, err))
	assert.Contains(t, err.Error(), "APPROVED")
}

func TestGetByIDVisibility(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{})
	ctx := context.Background()
	b := seedBooking(repo, StatusWaiting)

	got, err := svc.GetByID(ctx, bookerID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.GetByID(ctx, ownerID, b.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, strangerID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListValidatesPaging(t *testing.T) {
	svc := newTestService(newFakeRepo(), Policy{})
	ctx := context.Background()

	for _, tc := range []struct{ from, size int }{
		{-1, 20},
		{0, 0},
		{0, -5},
		{5, 0},
	} {
		_, err := svc.List(ctx, bookerID, RoleBooker, BucketAll, tc.from, tc.size)
		assert.Equal(t, 400, statusCode(t, err), "from=%d size=%d", tc.from, tc.size)
	}
}

func TestListRequiresKnownUser(t *testing.T) {
	svc := newTestService(newFakeRepo(), Policy{})

	_, err := svc.List(context.Background(), 99, RoleBooker, BucketAll, 0, 20)
	assert.Equal(t, 404, statusCode(t, err))
}

func TestListBuildsFilter(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, Policy{})

	_, err := svc.List(context.Background(), ownerID, RoleOwner, BucketFuture, 7, 3)
	require.NoError(t, err)

	f := repo.lastFilter
	assert.Equal(t, ownerID, f.UserID)
	assert.Equal(t, RoleOwner, f.Role)
	assert.Equal(t, BucketFuture, f.Bucket)
	assert.Equal(t, 3, f.Limit)
	assert.Equal(t, 6, f.Offset, "offset snaps to the page boundary")
	assert.False(t, f.Now.IsZero())
}
