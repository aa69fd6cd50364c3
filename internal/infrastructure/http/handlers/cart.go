package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/yuzvak/rocketshoes-cart/internal/domain/cart"
	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
	"github.com/yuzvak/rocketshoes-cart/internal/domain/notification"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/http/response"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/notify"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

// CartService is the part of the cart store the API drives.
type CartService interface {
	Cart() cart.Cart
	AddProduct(ctx context.Context, productID int64) cart.Cart
	RemoveProduct(ctx context.Context, productID int64) cart.Cart
	UpdateProductAmount(ctx context.Context, productID int64, amount int) cart.Cart
}

type CartHandler struct {
	store CartService
	log   *logger.Logger
}

func NewCartHandler(store CartService, log *logger.Logger) *CartHandler {
	return &CartHandler{
		store: store,
		log:   log,
	}
}

type CartView struct {
	Items cart.Cart `json:"items"`
}

// CartResponse answers every cart operation. Notifications is always present,
// empty when the operation went through.
type CartResponse struct {
	Items         cart.Cart                   `json:"items"`
	Notifications []notification.Notification `json:"notifications"`
}

type AddItemRequest struct {
	ProductID *int64 `json:"product_id"`
}

type UpdateAmountRequest struct {
	Amount *int `json:"amount"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.WriteMethodNotAllowed(w, http.MethodGet)
		return
	}

	response.WriteSuccess(w, CartView{Items: h.store.Cart()})
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"body": "invalid JSON",
		})
		return
	}
	if req.ProductID == nil {
		response.WriteDomainError(w, fmt.Errorf("%w: product_id is required", domainErrors.ErrInvalidProductID))
		return
	}

	h.run(w, r, func(ctx context.Context) cart.Cart {
		return h.store.AddProduct(ctx, *req.ProductID)
	})
}

// HandleItem serves PUT and DELETE on /cart/items/{id}.
func (h *CartHandler) HandleItem(w http.ResponseWriter, r *http.Request, rawID string) {
	productID, err := parseProductID(rawID)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req UpdateAmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteValidationError(w, "Validation failed", map[string]string{
				"body": "invalid JSON",
			})
			return
		}
		if req.Amount == nil {
			response.WriteDomainError(w, fmt.Errorf("%w: amount is required", domainErrors.ErrInvalidAmount))
			return
		}

		h.run(w, r, func(ctx context.Context) cart.Cart {
			return h.store.UpdateProductAmount(ctx, productID, *req.Amount)
		})

	case http.MethodDelete:
		h.run(w, r, func(ctx context.Context) cart.Cart {
			return h.store.RemoveProduct(ctx, productID)
		})

	default:
		response.WriteMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}

// run executes a cart operation and answers with the resulting cart plus the
// notifications raised while it ran.
func (h *CartHandler) run(w http.ResponseWriter, r *http.Request, op func(ctx context.Context) cart.Cart) {
	ctx, collector := notify.WithCollector(r.Context())

	items := op(ctx)

	response.WriteSuccess(w, CartResponse{
		Items:         items,
		Notifications: collector.Notifications(),
	})
}

func parseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domainErrors.ErrInvalidProductID, raw)
	}
	return id, nil
}
