package menu

import (
	"fmt"
	"strings"
)

type Menu struct {
	ID       string `json:"id"`
	MenuName string `json:"menuName"`
	Price    int    `json:"price"`
	SaleYn   string `json:"saleYn"`
}

type CreateMenuInput struct {
	MenuName string `json:"menuName"`
	Price    int    `json:"price"`
}

func (in CreateMenuInput) Validate() error {
	if strings.TrimSpace(in.MenuName) == "" {
		return fmt.Errorf("%w: menu name is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be 0 or more", ErrInvalidInput)
	}
	return nil
}

// UpdateMenuInput carries partial-update semantics: nil fields are left alone.
type UpdateMenuInput struct {
	MenuName *string `json:"menuName"`
	Price    *int    `json:"price"`
}

func (in UpdateMenuInput) Validate() error {
	if in.MenuName == nil && in.Price == nil {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if in.MenuName != nil && strings.TrimSpace(*in.MenuName) == "" {
		return fmt.Errorf("%w: menu name is required", ErrInvalidInput)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must be 0 or more", ErrInvalidInput)
	}
	return nil
}
