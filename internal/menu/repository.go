package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tableorder-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetMenus(ctx context.Context) ([]*Menu, error)
	GetMenu(ctx context.Context, id string) (*Menu, error)
	CreateMenu(ctx context.Context, in CreateMenuInput) (*Menu, error)
	UpdateMenu(ctx context.Context, id string, in UpdateMenuInput) (*Menu, error)
	DeleteMenu(ctx context.Context, id string) (bool, error)
	SetSaleFlag(ctx context.Context, id string, saleYn string) (*Menu, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetMenus(ctx context.Context) ([]*Menu, error) {
	query := `
		SELECT id, menu_name, price, sale_yn
		FROM menus
		ORDER BY menu_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetMenus", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	menus := make([]*Menu, 0)

	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.ID, &m.MenuName, &m.Price, &m.SaleYn); err != nil {
			logger.FromCtx(ctx).Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		menus = append(menus, &m)
	}

	if err := rows.Err(); err != nil {
		logger.FromCtx(ctx).Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return menus, nil
}

func (r *repository) GetMenu(ctx context.Context, id string) (*Menu, error) {
	query := `
		SELECT id, menu_name, price, sale_yn
		FROM menus
		WHERE id = $1
	`

	var m Menu
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.MenuName, &m.Price, &m.SaleYn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) CreateMenu(ctx context.Context, in CreateMenuInput) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("menu_name", in.MenuName),
		zap.Int("price", in.Price),
	)
	log.Info("CreateMenu started")

	query := `
		INSERT INTO menus (id, menu_name, price, sale_yn)
		VALUES ($1, $2, $3, 'Y')
		RETURNING id, menu_name, price, sale_yn
	`

	var m Menu
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), in.MenuName, in.Price).
		Scan(&m.ID, &m.MenuName, &m.Price, &m.SaleYn)
	if err != nil {
		log.Error("CreateMenu DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create menu failed: %w", err)
	}

	log.Info("CreateMenu success", zap.String("menu_id", m.ID))

	return &m, nil
}

func (r *repository) UpdateMenu(ctx context.Context, id string, in UpdateMenuInput) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("menu_id", id),
	)

	set := []string{}
	args := []interface{}{}

	if in.MenuName != nil {
		set = append(set, fmt.Sprintf("menu_name = $%d", len(args)+1))
		args = append(args, *in.MenuName)
	}
	if in.Price != nil {
		set = append(set, fmt.Sprintf("price = $%d", len(args)+1))
		args = append(args, *in.Price)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	query := "UPDATE menus SET " + strings.Join(set, ", ")
	query += fmt.Sprintf(" WHERE id = $%d RETURNING id, menu_name, price, sale_yn", len(args)+1)
	args = append(args, id)

	log.Debug("Executing UpdateMenu query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	var m Menu
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&m.ID, &m.MenuName, &m.Price, &m.SaleYn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		log.Error("UpdateMenu DB query failed", zap.Error(err))
		return nil, err
	}

	return &m, nil
}

func (r *repository) DeleteMenu(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("DeleteMenu DB exec failed",
			zap.String("menu_id", id),
			zap.Error(err),
		)
		return false, err
	}

	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (r *repository) SetSaleFlag(ctx context.Context, id string, saleYn string) (*Menu, error) {
	query := `
		UPDATE menus
		SET sale_yn = $1
		WHERE id = $2
		RETURNING id, menu_name, price, sale_yn
	`

	var m Menu
	err := r.db.QueryRowContext(ctx, query, saleYn, id).
		Scan(&m.ID, &m.MenuName, &m.Price, &m.SaleYn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("SetSaleFlag DB query failed",
			zap.String("menu_id", id),
			zap.String("sale_yn", saleYn),
			zap.Error(err),
		)
		return nil, err
	}

	return &m, nil
}
