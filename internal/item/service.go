package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lendit/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// Service defines business logic related to items and their composite views.
type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, callerID, itemID int64, patch Patch) (*Item, error)
	Get(ctx context.Context, id int64) (*Item, error)
	GetDetail(ctx context.Context, id int64) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Detail, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo  Repository
	users user.Service
	log   zerolog.Logger
}

func NewService(repo Repository, users user.Service, log zerolog.Logger) Service {
	return &service{repo: repo, users: users, log: log}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", it.ID).Int64("owner_id", ownerID).Msg("item created")
	return it, nil
}

func (s *service) Update(ctx context.Context, callerID, itemID int64, patch Patch) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, ErrEditForbidden
	}

	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", it.ID).Msg("item updated")
	return it, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetDetail(ctx context.Context, id int64) (*Detail, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// One now-snapshot keeps last and next mutually consistent.
	return s.detail(ctx, it, time.Now().UTC())
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	details := make([]*Detail, 0, len(items))
	for _, it := range items {
		d, err := s.detail(ctx, it, now)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *service) detail(ctx context.Context, it *Item, now time.Time) (*Detail, error) {
	last, err := s.repo.LastBooking(ctx, it.ID, now)
	if err != nil {
		return nil, err
	}
	next, err := s.repo.NextBooking(ctx, it.ID, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentsByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{Item: *it, LastBooking: last, NextBooking: next, Comments: comments}, nil
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) ListByRequest(ctx context.Context, requestID int64) ([]*Item, error) {
	return s.repo.ListByRequest(ctx, requestID)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	completed, err := s.repo.CompletedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, ErrCommentNotAllowed
	}

	author, err := s.users.GetByID(ctx, completed.BookerID)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   completed.BookerID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.repo.SaveComment(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", itemID).Int64("author_id", c.AuthorID).Msg("comment added")
	return c, nil
}
