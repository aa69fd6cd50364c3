package ports

import (
	"context"

	"github.com/yuzvak/rocketshoes-cart/internal/domain/cart"
)

type StockSource interface {
	GetStock(ctx context.Context, productID int64) (int, error)
}

type ProductSource interface {
	GetProduct(ctx context.Context, productID int64) (*cart.Product, error)
}

type Catalog interface {
	StockSource
	ProductSource
}
