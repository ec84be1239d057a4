package application

import (
	"context"
	"fmt"

	"github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

var readOnly = unitofwork.Options{ReadOnly: true}

// Service orchestrates member registration and lookups.
type Service struct {
	repo ports.Repository
	uow  unitofwork.Manager
}

type Option func(*Service)

// WithUnitOfWork runs every use case inside the given transaction manager.
func WithUnitOfWork(m unitofwork.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.uow = m
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, uow: unitofwork.Noop{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Join registers a new member. The duplicate check and the insert are two
// statements; concurrent joins with the same name can both succeed.
func (s *Service) Join(ctx context.Context, name string, addr address.Address) (int64, error) {
	member, err := domain.NewMember(name, addr)
	if err != nil {
		return 0, mapError(err)
	}
	var id int64
	err = s.uow.Do(ctx, unitofwork.Options{}, func(ctx context.Context) error {
		if err := s.validateDuplicateMember(ctx, member.Name, 0); err != nil {
			return err
		}
		saved, err := s.repo.Save(ctx, member)
		if err != nil {
			return err
		}
		id = saved.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) FindMembers(ctx context.Context) ([]*domain.Member, error) {
	var members []*domain.Member
	err := s.uow.Do(ctx, readOnly, func(ctx context.Context) error {
		var err error
		members, err = s.repo.List(ctx)
		return err
	})
	return members, err
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Member, error) {
	var member *domain.Member
	err := s.uow.Do(ctx, readOnly, func(ctx context.Context) error {
		var err error
		member, err = s.repo.GetByID(ctx, id)
		return err
	})
	return member, err
}

// Update renames a member, applying the same uniqueness rule as Join.
func (s *Service) Update(ctx context.Context, id int64, name string) (*domain.Member, error) {
	var updated *domain.Member
	err := s.uow.Do(ctx, unitofwork.Options{}, func(ctx context.Context) error {
		member, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := member.Rename(name); err != nil {
			return mapError(err)
		}
		if err := s.validateDuplicateMember(ctx, member.Name, member.ID); err != nil {
			return err
		}
		updated, err = s.repo.Save(ctx, member)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) validateDuplicateMember(ctx context.Context, name string, self int64) error {
	found, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	for _, member := range found {
		if member.ID != self {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
