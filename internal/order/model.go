package order

import (
	"fmt"
	"strings"
	"time"
)

// Order snapshots menuName and price at creation time; later menu edits
// never touch existing rows.
type Order struct {
	ID        string    `json:"id"`
	TableNo   string    `json:"tableNo"`
	MenuName  string    `json:"menuName"`
	Price     int       `json:"price"`
	Qty       int       `json:"qty"`
	ServeYn   string    `json:"serveYn"`
	PayYn     string    `json:"payYn"`
	UseYn     string    `json:"useYn"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateOrderInput struct {
	TableNo  string `json:"tableNo"`
	MenuName string `json:"menuName"`
	Price    int    `json:"price"`
	Qty      int    `json:"qty"`
}

func (in CreateOrderInput) Validate() error {
	if strings.TrimSpace(in.TableNo) == "" {
		return fmt.Errorf("%w: table number is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.MenuName) == "" {
		return fmt.Errorf("%w: menu name is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be 0 or more", ErrInvalidInput)
	}
	if in.Qty < 1 {
		return fmt.Errorf("%w: qty must be 1 or more", ErrInvalidInput)
	}
	return nil
}

func validateFlag(v string) error {
	if v != "Y" && v != "N" {
		return fmt.Errorf("%w: flag must be 'Y' or 'N'", ErrInvalidInput)
	}
	return nil
}
