package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yuzvak/rocketshoes-cart/internal/domain/cart"
	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/monitoring"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

const maxBodyBytes = 1 << 20

// HTTPClient abstracts request execution. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the catalog API serving /stock/{id} and /products/{id}.
type Client struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
	log     *logger.Logger
}

func NewClient(baseURL string, client HTTPClient, timeout time.Duration, log *logger.Logger) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: timeout,
		log:     log,
	}
}

type stockResponse struct {
	ID     int64 `json:"id"`
	Amount *int  `json:"amount"`
}

func (c *Client) GetStock(ctx context.Context, productID int64) (int, error) {
	var resp stockResponse
	if err := c.get(ctx, "stock", productID, &resp); err != nil {
		return 0, err
	}
	if resp.Amount == nil {
		return 0, fmt.Errorf("%w: stock for product %d has no amount", domainErrors.ErrMalformedResponse, productID)
	}
	return *resp.Amount, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (*cart.Product, error) {
	var product cart.Product
	if err := c.get(ctx, "products", productID, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) get(ctx context.Context, endpoint string, productID int64, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := c.baseURL + "/" + endpoint + "/" + strconv.FormatInt(productID, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	done := monitoring.TimeCatalogRequest(endpoint)

	resp, err := c.client.Do(req)
	if err != nil {
		done("error")
		c.log.Warn("Catalog request failed", "endpoint", endpoint, "product_id", productID, "error", err)
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	done(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("%w: %s %d", domainErrors.ErrProductNotFound, endpoint, productID)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("%w: %s %d answered %d", domainErrors.ErrCatalogStatus, endpoint, productID, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %d: %v", domainErrors.ErrMalformedResponse, endpoint, productID, err)
	}

	return nil
}
