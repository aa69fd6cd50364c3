package errors

import (
	"errors"
)

var (
	ErrOutOfStock       = errors.New("requested quantity out of stock")
	ErrItemNotFound     = errors.New("item not found in cart")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidProductID = errors.New("invalid product id")

	ErrCorruptCart = errors.New("persisted cart is corrupt")

	ErrCatalogStatus     = errors.New("catalog returned unexpected status")
	ErrMalformedResponse = errors.New("catalog returned malformed response")
	ErrProductNotFound   = errors.New("product not found in catalog")

	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)
