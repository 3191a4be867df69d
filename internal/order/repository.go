package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tableorder-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const orderColumns = "id, table_no, menu_name, price, qty, serve_yn, pay_yn, use_yn, created_at"

type Repository interface {
	GetOrders(ctx context.Context) ([]*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	GetOrdersByTable(ctx context.Context, tableNo string) ([]*Order, error)
	GetOrdersByMenu(ctx context.Context, menuName string) ([]*Order, error)
	GetActiveOrders(ctx context.Context) ([]*Order, error)
	GetUnpaidOrders(ctx context.Context) ([]*Order, error)
	CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error)
	UpdateServeStatus(ctx context.Context, id string, serveYn string) (*Order, error)
	UpdatePayStatus(ctx context.Context, id string, payYn string) (*Order, error)
	UpdateServeStatusBatch(ctx context.Context, ids []string, serveYn string) error
	CancelOrder(ctx context.Context, id string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.TableNo, &o.MenuName, &o.Price, &o.Qty,
			&o.ServeYn, &o.PayYn, &o.UseYn, &o.CreatedAt,
		); err != nil {
			logger.FromCtx(ctx).Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		logger.FromCtx(ctx).Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

func (r *repository) GetOrders(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
}

func (r *repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	var o Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.TableNo, &o.MenuName, &o.Price, &o.Qty,
		&o.ServeYn, &o.PayYn, &o.UseYn, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetOrdersByTable(ctx context.Context, tableNo string) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE table_no = $1 AND use_yn = 'Y'
		ORDER BY created_at DESC
	`, tableNo)
}

func (r *repository) GetOrdersByMenu(ctx context.Context, menuName string) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE menu_name = $1 AND use_yn = 'Y'
		ORDER BY created_at DESC
	`, menuName)
}

func (r *repository) GetActiveOrders(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE use_yn = 'Y'
		ORDER BY created_at DESC
	`)
}

func (r *repository) GetUnpaidOrders(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE pay_yn = 'N' AND use_yn = 'Y'
		ORDER BY created_at DESC
	`)
}

func (r *repository) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("table_no", in.TableNo),
		zap.String("menu_name", in.MenuName),
		zap.Int("qty", in.Qty),
	)
	log.Info("CreateOrder started")

	query := `
		INSERT INTO orders (id, table_no, menu_name, price, qty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns

	var o Order
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), in.TableNo, in.MenuName, in.Price, in.Qty,
	).Scan(
		&o.ID, &o.TableNo, &o.MenuName, &o.Price, &o.Qty,
		&o.ServeYn, &o.PayYn, &o.UseYn, &o.CreatedAt,
	)
	if err != nil {
		log.Error("CreateOrder DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	log.Info("CreateOrder success", zap.String("order_id", o.ID))

	return &o, nil
}

func (r *repository) UpdateServeStatus(ctx context.Context, id string, serveYn string) (*Order, error) {
	return r.updateRow(ctx, `
		UPDATE orders
		SET serve_yn = $1
		WHERE id = $2
		RETURNING `+orderColumns,
		serveYn, id)
}

func (r *repository) UpdatePayStatus(ctx context.Context, id string, payYn string) (*Order, error) {
	return r.updateRow(ctx, `
		UPDATE orders
		SET pay_yn = $1
		WHERE id = $2
		RETURNING `+orderColumns,
		payYn, id)
}

// UpdateServeStatusBatch flips serve_yn on every id in one statement.
// An empty id list is a no-op, not an error.
func (r *repository) UpdateServeStatusBatch(ctx context.Context, ids []string, serveYn string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET serve_yn = $1
		WHERE id = ANY($2)
	`, serveYn, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("UpdateServeStatusBatch DB exec failed",
			zap.Int("id_count", len(ids)),
			zap.String("serve_yn", serveYn),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// CancelOrder soft-deletes: the row stays for audit, serve/pay reset to 'N'.
func (r *repository) CancelOrder(ctx context.Context, id string) (*Order, error) {
	return r.updateRow(ctx, `
		UPDATE orders
		SET use_yn = 'N', serve_yn = 'N', pay_yn = 'N'
		WHERE id = $1
		RETURNING `+orderColumns,
		id)
}

func (r *repository) updateRow(ctx context.Context, query string, args ...interface{}) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&o.ID, &o.TableNo, &o.MenuName, &o.Price, &o.Qty,
		&o.ServeYn, &o.PayYn, &o.UseYn, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("DB update failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}

	return &o, nil
}
