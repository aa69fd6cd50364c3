package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   Status
	}{
		{fmt.Errorf("parse: %w", domainErrors.ErrInvalidProductID), http.StatusBadRequest, StatusValidationError},
		{domainErrors.ErrInvalidAmount, http.StatusBadRequest, StatusValidationError},
		{domainErrors.ErrItemNotFound, http.StatusNotFound, StatusNotFound},
		{fmt.Errorf("unexpected"), http.StatusInternalServerError, StatusInternalError},
	}

	for _, tc := range cases {
		status, body := MapDomainError(tc.err)
		if status != tc.status || body.Code != tc.code {
			t.Errorf("%v: got %d %s, want %d %s", tc.err, status, body.Code, tc.status, tc.code)
		}
		if body.Error != tc.err.Error() {
			t.Errorf("%v: error detail = %q", tc.err, body.Error)
		}
	}
}

func TestWriteMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMethodNotAllowed(rec, http.MethodPut, http.MethodDelete)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != "PUT, DELETE" {
		t.Fatalf("Allow = %q", got)
	}

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != StatusMethodNotAllowed {
		t.Fatalf("code = %q", body.Code)
	}
}
