package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
	uow  unitofwork.Manager
}

func NewService(repo ports.Repository, uow unitofwork.Manager) *Service {
	if uow == nil {
		uow = unitofwork.Noop{}
	}
	return &Service{repo: repo, uow: uow}
}

func (s *Service) SaveItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	var saved *domain.Item
	err := s.uow.Do(ctx, unitofwork.Options{}, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.Save(ctx, item)
		return err
	})
	return saved, err
}

func (s *Service) FindItems(ctx context.Context) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.uow.Do(ctx, unitofwork.Options{ReadOnly: true}, func(ctx context.Context) error {
		var err error
		items, err = s.repo.List(ctx)
		return err
	})
	return items, err
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Item, error) {
	var item *domain.Item
	err := s.uow.Do(ctx, unitofwork.Options{ReadOnly: true}, func(ctx context.Context) error {
		var err error
		item, err = s.repo.GetByID(ctx, id)
		return err
	})
	return item, err
}

var _ ports.Service = (*Service)(nil)
