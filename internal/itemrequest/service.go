package itemrequest

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lendit/internal/item"
	"lendit/internal/pkg/apperror"
	"lendit/internal/user"
)

// Service defines business logic for listing-request intake.
type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requestorID int64) ([]*Detail, error)
	ListOthers(ctx context.Context, callerID int64, from, size int) ([]*Detail, error)
	GetByID(ctx context.Context, callerID, requestID int64) (*Detail, error)
}

type service struct {
	repo  Repository
	items item.Service
	users user.Service
	log   zerolog.Logger
}

func NewService(repo Repository, items item.Service, users user.Service, log zerolog.Logger) Service {
	return &service{repo: repo, items: items, users: users, log: log}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().Int64("request_id", req.ID).Int64("requestor_id", requestorID).Msg("item request created")
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requestorID int64) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, callerID int64, from, size int) ([]*Detail, error) {
	if from < 0 || size <= 0 {
		return nil, apperror.BadRequest("invalid paging: from=%d size=%d", from, size)
	}
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	offset := (from / size) * size
	requests, err := s.repo.ListOthers(ctx, callerID, size, offset)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, callerID, requestID int64) (*Detail, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{ItemRequest: *req, Items: items}, nil
}

func (s *service) details(ctx context.Context, requests []*ItemRequest) ([]*Detail, error) {
	details := make([]*Detail, 0, len(requests))
	for _, req := range requests {
		items, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, &Detail{ItemRequest: *req, Items: items})
	}
	return details, nil
}
