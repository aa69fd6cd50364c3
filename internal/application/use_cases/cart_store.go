package use_cases

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yuzvak/rocketshoes-cart/internal/application/ports"
	"github.com/yuzvak/rocketshoes-cart/internal/domain/cart"
	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
	"github.com/yuzvak/rocketshoes-cart/internal/domain/notification"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/monitoring"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/clock"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

const (
	opAdd    = "add_product"
	opRemove = "remove_product"
	opUpdate = "update_amount"

	outcomeCommitted  = "committed"
	outcomeOutOfStock = "out_of_stock"
	outcomeNotFound   = "not_found"
	outcomeFailed     = "failed"
	outcomeIgnored    = "ignored"
)

// CartStore owns the cart for the lifetime of the process. Operations never
// return errors: failures surface as notifications and the cart stays as it
// was.
type CartStore struct {
	storage  ports.Storage
	stock    ports.StockSource
	products ports.ProductSource
	notifier ports.Notifier
	clock    clock.Clock
	log      *logger.Logger
	key      string

	mu   sync.RWMutex
	cart cart.Cart
}

type CartStoreOption func(*CartStore)

func WithStorageKey(key string) CartStoreOption {
	return func(s *CartStore) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(c clock.Clock) CartStoreOption {
	return func(s *CartStore) {
		s.clock = c
	}
}

// NewCartStore loads the persisted cart. A missing document yields an empty
// cart; an unreadable one is an error.
func NewCartStore(
	ctx context.Context,
	storage ports.Storage,
	catalog ports.Catalog,
	notifier ports.Notifier,
	log *logger.Logger,
	opts ...CartStoreOption,
) (*CartStore, error) {
	s := &CartStore{
		storage:  storage,
		stock:    catalog,
		products: catalog,
		notifier: notifier,
		clock:    clock.NewRealClock(),
		log:      log,
		key:      cart.StorageKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, found, err := storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load persisted cart: %w", err)
	}
	if found {
		loaded, err := cart.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrCorruptCart, err)
		}
		s.cart = loaded
	}

	s.log.Info("Cart loaded", "key", s.key, "items", s.cart.Len(), "found", found)
	monitoring.UpdateCartSize(s.cart.Len(), s.cart.Units())

	return s, nil
}

// Cart returns a snapshot of the current cart.
func (s *CartStore) Cart() cart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.New(s.cart.Items()...)
}

func (s *CartStore) AddProduct(ctx context.Context, productID int64) cart.Cart {
	snapshot := s.Cart()

	err := s.addProduct(ctx, snapshot, productID)
	s.finish(ctx, opAdd, notification.CodeAddFailed, err, "product_id", productID)

	return s.Cart()
}

func (s *CartStore) addProduct(ctx context.Context, snapshot cart.Cart, productID int64) error {
	existing, inCart := snapshot.Find(productID)

	stockAmount, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch stock: %w", err)
	}

	currentAmount := 0
	if inCart {
		currentAmount = existing.Amount
	}
	newAmount := currentAmount + 1

	if newAmount > stockAmount {
		return fmt.Errorf("%w: product %d wants %d, stock %d",
			domainErrors.ErrOutOfStock, productID, newAmount, stockAmount)
	}

	var fresh cart.Item
	if inCart {
		fresh = existing.WithAmount(1)
	} else {
		product, err := s.products.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("fetch product: %w", err)
		}
		fresh = cart.NewItem(*product)
		fresh.ID = productID
	}

	// The increment is applied to the item as it stands at commit time, so an
	// amount written by a concurrent operation is not overwritten.
	return s.commit(ctx, func(current cart.Cart) (cart.Cart, error) {
		item, ok := current.Find(productID)
		if !ok {
			return current.Upsert(fresh), nil
		}

		amount := item.Amount + 1
		if amount > stockAmount {
			return cart.Cart{}, fmt.Errorf("%w: product %d wants %d, stock %d",
				domainErrors.ErrOutOfStock, productID, amount, stockAmount)
		}
		return current.Upsert(item.WithAmount(amount)), nil
	})
}

func (s *CartStore) RemoveProduct(ctx context.Context, productID int64) cart.Cart {
	snapshot := s.Cart()

	var err error
	if !snapshot.Contains(productID) {
		err = fmt.Errorf("%w: product %d", domainErrors.ErrItemNotFound, productID)
	} else {
		err = s.commit(ctx, func(current cart.Cart) (cart.Cart, error) {
			return current.Without(productID), nil
		})
	}
	s.finish(ctx, opRemove, notification.CodeRemoveFailed, err, "product_id", productID)

	return s.Cart()
}

// UpdateProductAmount sets the amount of a cart item. Non-positive amounts are
// ignored without notice.
func (s *CartStore) UpdateProductAmount(ctx context.Context, productID int64, amount int) cart.Cart {
	if amount <= 0 {
		monitoring.RecordCartOperation(opUpdate, outcomeIgnored)
		s.log.Debug("Ignoring non-positive amount", "product_id", productID, "amount", amount)
		return s.Cart()
	}

	err := s.updateProductAmount(ctx, productID, amount)
	s.finish(ctx, opUpdate, notification.CodeUpdateFailed, err, "product_id", productID, "amount", amount)

	return s.Cart()
}

func (s *CartStore) updateProductAmount(ctx context.Context, productID int64, amount int) error {
	stockAmount, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch stock: %w", err)
	}

	if amount > stockAmount {
		return fmt.Errorf("%w: product %d wants %d, stock %d",
			domainErrors.ErrOutOfStock, productID, amount, stockAmount)
	}

	return s.commit(ctx, func(current cart.Cart) (cart.Cart, error) {
		return current.WithAmount(productID, amount), nil
	})
}

// commit applies change to the cart current at commit time, persists the
// result and only then swaps it in. An error from change aborts the commit.
func (s *CartStore) commit(ctx context.Context, change func(cart.Cart) (cart.Cart, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := change(s.cart)
	if err != nil {
		return err
	}

	data, err := cart.Encode(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}

	s.cart = next
	monitoring.UpdateCartSize(next.Len(), next.Units())
	return nil
}

// finish turns the outcome of an operation into metrics, logs and
// notifications.
func (s *CartStore) finish(ctx context.Context, operation string, failure notification.Code, err error, fields ...interface{}) {
	switch {
	case err == nil:
		monitoring.RecordCartOperation(operation, outcomeCommitted)
		s.log.Debug("Cart updated", append(fields, "operation", operation, "cart", s.Cart())...)
		return

	case errors.Is(err, domainErrors.ErrOutOfStock):
		monitoring.RecordCartOperation(operation, outcomeOutOfStock)
		s.log.Info("Requested quantity out of stock", append(fields, "operation", operation, "error", err)...)
		s.notify(ctx, notification.CodeOutOfStock)
		return

	case errors.Is(err, domainErrors.ErrItemNotFound):
		monitoring.RecordCartOperation(operation, outcomeNotFound)
		s.log.Warn("Cart item not found", append(fields, "operation", operation, "error", err)...)

	default:
		monitoring.RecordCartOperation(operation, outcomeFailed)
		s.log.Error("Cart operation failed", append(fields, "operation", operation, "error", err)...)
	}

	s.notify(ctx, failure)
}

func (s *CartStore) notify(ctx context.Context, code notification.Code) {
	s.notifier.Notify(ctx, notification.NewError(code, s.clock.Now()))
}
