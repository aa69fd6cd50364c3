package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yuzvak/rocketshoes-cart/internal/config"
	"github.com/yuzvak/rocketshoes-cart/internal/domain/cart"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/http/handlers"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/clock"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

type stubStore struct {
	removed []int64
	updated map[int64]int
}

func (s *stubStore) Cart() cart.Cart { return cart.New() }

func (s *stubStore) AddProduct(context.Context, int64) cart.Cart { return cart.New() }

func (s *stubStore) RemoveProduct(_ context.Context, id int64) cart.Cart {
	s.removed = append(s.removed, id)
	return cart.New()
}

func (s *stubStore) UpdateProductAmount(_ context.Context, id int64, amount int) cart.Cart {
	if s.updated == nil {
		s.updated = make(map[int64]int)
	}
	s.updated[id] = amount
	return cart.New()
}

func newTestServer(store handlers.CartService) *Server {
	return NewServer(config.Default(), store, nil, clock.NewRealClock(), logger.NewNop())
}

func TestRoutes(t *testing.T) {
	store := &stubStore{}
	h := newTestServer(store).Handler()

	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/cart", "", http.StatusOK},
		{http.MethodPost, "/cart/items", `{"product_id":3}`, http.StatusOK},
		{http.MethodPut, "/cart/items/3", `{"amount":2}`, http.StatusOK},
		{http.MethodDelete, "/cart/items/4", "", http.StatusOK},
		{http.MethodDelete, "/cart/items/", "", http.StatusNotFound},
		{http.MethodDelete, "/cart/items/4/extra", "", http.StatusNotFound},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodOptions, "/cart", "", http.StatusOK},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		if rec.Code != tc.status {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, tc.status)
		}
	}

	if len(store.removed) != 1 || store.removed[0] != 4 {
		t.Fatalf("removed = %v", store.removed)
	}
	if store.updated[3] != 2 {
		t.Fatalf("updated = %v", store.updated)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	h := newTestServer(&stubStore{}).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}
