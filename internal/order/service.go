package order

import (
	"context"
	"fmt"

	"tableorder-be/internal/logger"
	"tableorder-be/internal/metrics"

	"go.uber.org/zap"
)

// Service defines the business logic for orders.
type Service interface {
	GetActiveOrders(ctx context.Context) ([]*Order, error)
	GetUnpaidOrders(ctx context.Context) ([]*Order, error)
	GetOrdersByTable(ctx context.Context, tableNo string) ([]*Order, error)
	GetOrdersByMenu(ctx context.Context, menuName string) ([]*Order, error)
	GetTableGroups(ctx context.Context) ([]*TableGroup, error)
	GetUnpaidTableGroups(ctx context.Context) ([]*TableGroup, error)
	GetMenuGroups(ctx context.Context) ([]*MenuGroup, error)
	CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error)
	CreateOrders(ctx context.Context, ins []CreateOrderInput) ([]*Order, error)
	UpdateServeStatus(ctx context.Context, id string, serveYn string) (*Order, error)
	UpdateServeStatusBatch(ctx context.Context, ids []string, serveYn string) error
	PayTable(ctx context.Context, tableNo string, payYn string) error
	CancelOrder(ctx context.Context, id string) (*Order, error)
	CancelTable(ctx context.Context, tableNo string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetActiveOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.GetActiveOrders(ctx)
}

func (s *service) GetUnpaidOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.GetUnpaidOrders(ctx)
}

func (s *service) GetOrdersByTable(ctx context.Context, tableNo string) ([]*Order, error) {
	return s.repo.GetOrdersByTable(ctx, tableNo)
}

func (s *service) GetOrdersByMenu(ctx context.Context, menuName string) ([]*Order, error) {
	return s.repo.GetOrdersByMenu(ctx, menuName)
}

func (s *service) GetTableGroups(ctx context.Context) ([]*TableGroup, error) {
	orders, err := s.repo.GetActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByTable(orders), nil
}

func (s *service) GetUnpaidTableGroups(ctx context.Context) ([]*TableGroup, error) {
	orders, err := s.repo.GetUnpaidOrders(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByTable(orders), nil
}

func (s *service) GetMenuGroups(ctx context.Context) ([]*MenuGroup, error) {
	orders, err := s.repo.GetActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByMenu(orders), nil
}

func (s *service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("table_no", in.TableNo),
	)

	if err := in.Validate(); err != nil {
		log.Warn("CreateOrder validation failed", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.CreateOrder(ctx, in)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	return o, nil
}

// CreateOrders validates the whole batch before anything is written so a
// bad item never leaves earlier ones behind. The inserts themselves are
// still sequential single-row writes.
func (s *service) CreateOrders(ctx context.Context, ins []CreateOrderInput) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrders"),
		zap.Int("count", len(ins)),
	)

	for i, in := range ins {
		if err := in.Validate(); err != nil {
			log.Warn("CreateOrders validation failed", zap.Int("index", i), zap.Error(err))
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
	}

	created := make([]*Order, 0, len(ins))
	for _, in := range ins {
		o, err := s.repo.CreateOrder(ctx, in)
		if err != nil {
			log.Error("failed to create order in batch", zap.Error(err))
			return nil, err
		}
		created = append(created, o)
		metrics.OrdersCreated.Inc()
	}

	log.Info("CreateOrders success", zap.Int("created", len(created)))
	return created, nil
}

func (s *service) UpdateServeStatus(ctx context.Context, id string, serveYn string) (*Order, error) {
	if err := validateFlag(serveYn); err != nil {
		return nil, err
	}
	return s.repo.UpdateServeStatus(ctx, id, serveYn)
}

func (s *service) UpdateServeStatusBatch(ctx context.Context, ids []string, serveYn string) error {
	if err := validateFlag(serveYn); err != nil {
		return err
	}
	return s.repo.UpdateServeStatusBatch(ctx, ids, serveYn)
}

// PayTable settles every unpaid active order of a table. Each row is its own
// update; a failure partway leaves earlier rows paid.
func (s *service) PayTable(ctx context.Context, tableNo string, payYn string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PayTable"),
		zap.String("table_no", tableNo),
	)

	if err := validateFlag(payYn); err != nil {
		log.Warn("PayTable validation failed", zap.Error(err))
		return err
	}

	orders, err := s.repo.GetOrdersByTable(ctx, tableNo)
	if err != nil {
		log.Error("failed to fetch table orders", zap.Error(err))
		return err
	}

	updated := 0
	for _, o := range orders {
		if o.PayYn != "N" {
			continue
		}
		if _, err := s.repo.UpdatePayStatus(ctx, o.ID, payYn); err != nil {
			log.Error("failed to update pay status",
				zap.String("order_id", o.ID),
				zap.Int("updated_so_far", updated),
				zap.Error(err),
			)
			return err
		}
		updated++
	}

	log.Info("PayTable success", zap.Int("updated", updated))
	return nil
}

func (s *service) CancelOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.CancelOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.OrdersCanceled.Inc()
	return o, nil
}

// CancelTable cancels every active order of a table, one row at a time.
func (s *service) CancelTable(ctx context.Context, tableNo string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelTable"),
		zap.String("table_no", tableNo),
	)

	orders, err := s.repo.GetOrdersByTable(ctx, tableNo)
	if err != nil {
		log.Error("failed to fetch table orders", zap.Error(err))
		return err
	}

	for _, o := range orders {
		if _, err := s.repo.CancelOrder(ctx, o.ID); err != nil {
			log.Error("failed to cancel order",
				zap.String("order_id", o.ID),
				zap.Error(err),
			)
			return err
		}
		metrics.OrdersCanceled.Inc()
	}

	log.Info("CancelTable success", zap.Int("canceled", len(orders)))
	return nil
}
