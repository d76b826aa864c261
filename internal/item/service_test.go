package item

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendit/internal/user"
)

type fakeRepo struct {
	items    map[int64]*Item
	nextID   int64
	comments []Comment

	last      *BookingRef
	next      *BookingRef
	completed *BookingRef

	searched string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]*Item{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, it *Item) error {
	it.ID = r.nextID
	r.nextID++
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *fakeRepo) Update(_ context.Context, it *Item) error {
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID int64) ([]*Item, error) {
	var out []*Item
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeRepo) Search(_ context.Context, text string) ([]*Item, error) {
	r.searched = text
	return []*Item{}, nil
}

func (r *fakeRepo) ListByRequest(_ context.Context, _ int64) ([]*Item, error) {
	return []*Item{}, nil
}

func (r *fakeRepo) LastBooking(_ context.Context, _ int64, _ time.Time) (*BookingRef, error) {
	return r.last, nil
}

func (r *fakeRepo) NextBooking(_ context.Context, _ int64, _ time.Time) (*BookingRef, error) {
	return r.next, nil
}

func (r *fakeRepo) CompletedBooking(_ context.Context, _, _ int64, _ time.Time) (*BookingRef, error) {
	return r.completed, nil
}

func (r *fakeRepo) SaveComment(_ context.Context, c *Comment) error {
	c.ID = int64(len(r.comments) + 1)
	r.comments = append(r.comments, *c)
	return nil
}

func (r *fakeRepo) CommentsByItem(_ context.Context, itemID int64) ([]Comment, error) {
	var out []Comment
	for _, c := range r.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
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

func newTestService(repo *fakeRepo) Service {
	users := &fakeUsers{users: map[int64]*user.User{
		1: {ID: 1, Name: "owner"},
		2: {ID: 2, Name: "booker"},
	}}
	return NewService(repo, users, zerolog.Nop())
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCreateValidates(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateRequest{Description: "d", Available: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, 1, CreateRequest{Name: "n", Available: boolPtr(true)})
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = svc.Create(ctx, 1, CreateRequest{Name: "n", Description: "d"})
	assert.ErrorIs(t, err, ErrAvailableRequired)

	_, err = svc.Create(ctx, 99, CreateRequest{Name: "n", Description: "d", Available: boolPtr(true)})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestCreateAssignsOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	it, err := svc.Create(context.Background(), 1, CreateRequest{Name: "drill", Description: "cordless", Available: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), it.OwnerID)
	assert.True(t, it.Available)
	assert.NotZero(t, it.ID)
}

func TestUpdateOwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	it, err := svc.Create(ctx, 1, CreateRequest{Name: "drill", Description: "cordless", Available: boolPtr(true)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, it.ID, Patch{Name: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrEditForbidden)

	got, err := svc.Update(ctx, 1, it.ID, Patch{Available: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "drill", got.Name, "untouched fields survive a partial patch")
}

func TestSearchBlankReturnsEmpty(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	items, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, repo.searched, "blank query never reaches the repository")
}

func TestGetDetailAttachesSummary(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	it, err := svc.Create(ctx, 1, CreateRequest{Name: "drill", Description: "cordless", Available: boolPtr(true)})
	require.NoError(t, err)

	repo.last = &BookingRef{ID: 5, BookerID: 2}
	repo.next = &BookingRef{ID: 6, BookerID: 2}

	d, err := svc.GetDetail(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, repo.last, d.LastBooking)
	assert.Equal(t, repo.next, d.NextBooking)
	assert.Empty(t, d.Comments)
}

func TestAddCommentRequiresCompletedBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	it, err := svc.Create(ctx, 1, CreateRequest{Name: "drill", Description: "cordless", Available: boolPtr(true)})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, 2, it.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.AddComment(ctx, 2, 404, "great")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddComment(ctx, 2, it.ID, "great")
	assert.ErrorIs(t, err, ErrCommentNotAllowed)
}

func TestAddCommentUsesProvenanceBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	it, err := svc.Create(ctx, 1, CreateRequest{Name: "drill", Description: "cordless", Available: boolPtr(true)})
	require.NoError(t, err)

	repo.completed = &BookingRef{ID: 9, BookerID: 2}

	c, err := svc.AddComment(ctx, 2, it.ID, "great drill")
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.AuthorID)
	assert.Equal(t, "booker", c.AuthorName)
	assert.False(t, c.Created.IsZero())
	assert.Len(t, repo.comments, 1)
}
