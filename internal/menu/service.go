package menu

import (
	"context"

	"tableorder-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for menus.
type Service interface {
	GetMenus(ctx context.Context) ([]*Menu, error)
	GetAvailableMenus(ctx context.Context) ([]*Menu, error)
	CreateMenu(ctx context.Context, in CreateMenuInput) (*Menu, error)
	UpdateMenu(ctx context.Context, id string, in UpdateMenuInput) (*Menu, error)
	DeleteMenu(ctx context.Context, id string) error
	MarkSoldOut(ctx context.Context, id string) (*Menu, error)
	MarkAvailable(ctx context.Context, id string) (*Menu, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetMenus(ctx context.Context) ([]*Menu, error) {
	return s.repo.GetMenus(ctx)
}

// GetAvailableMenus filters the full list down to sale_yn = 'Y' rows.
func (s *service) GetAvailableMenus(ctx context.Context) ([]*Menu, error) {
	menus, err := s.repo.GetMenus(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]*Menu, 0, len(menus))
	for _, m := range menus {
		if m.SaleYn == "Y" {
			available = append(available, m)
		}
	}

	return available, nil
}

func (s *service) CreateMenu(ctx context.Context, in CreateMenuInput) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateMenu"),
		zap.String("menu_name", in.MenuName),
	)

	if err := in.Validate(); err != nil {
		log.Warn("CreateMenu validation failed", zap.Error(err))
		return nil, err
	}

	m, err := s.repo.CreateMenu(ctx, in)
	if err != nil {
		log.Error("failed to create menu", zap.Error(err))
		return nil, err
	}

	log.Info("CreateMenu success", zap.String("menu_id", m.ID))
	return m, nil
}

func (s *service) UpdateMenu(ctx context.Context, id string, in UpdateMenuInput) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMenu"),
		zap.String("menu_id", id),
	)

	if err := in.Validate(); err != nil {
		log.Warn("UpdateMenu validation failed", zap.Error(err))
		return nil, err
	}

	m, err := s.repo.UpdateMenu(ctx, id, in)
	if err != nil {
		log.Error("failed to update menu", zap.Error(err))
		return nil, err
	}

	return m, nil
}

func (s *service) DeleteMenu(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteMenu"),
		zap.String("menu_id", id),
	)

	removed, err := s.repo.DeleteMenu(ctx, id)
	if err != nil {
		log.Error("failed to delete menu", zap.Error(err))
		return err
	}
	if !removed {
		return ErrMenuNotFound
	}

	log.Info("DeleteMenu success")
	return nil
}

func (s *service) MarkSoldOut(ctx context.Context, id string) (*Menu, error) {
	return s.repo.SetSaleFlag(ctx, id, "N")
}

func (s *service) MarkAvailable(ctx context.Context, id string) (*Menu, error) {
	return s.repo.SetSaleFlag(ctx, id, "Y")
}
