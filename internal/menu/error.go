package menu

import "errors"

var (
	ErrMenuNotFound = errors.New("menu not found")
	ErrInvalidInput = errors.New("invalid input")
)
