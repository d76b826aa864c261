package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Service defines business logic related to users.
type Service interface {
	Create(ctx context.Context, name, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, patch Patch) (*User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Create(ctx context.Context, name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	u := &User{Name: name, Email: email}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", u.ID).Msg("user created")
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" {
		u.Email = strings.TrimSpace(*patch.Email)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", u.ID).Msg("user updated")
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}
