package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/yuzvak/rocketshoes-cart/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = []struct {
	err     error
	mapping ErrorMapping
}{
	{domainErrors.ErrInvalidProductID, ErrorMapping{
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid product id",
	}},
	{domainErrors.ErrInvalidAmount, ErrorMapping{
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid amount",
	}},
	{domainErrors.ErrItemNotFound, ErrorMapping{
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Item not found",
	}},
	{domainErrors.ErrCorruptCart, ErrorMapping{
		HTTPStatus: http.StatusInternalServerError,
		Status:     StatusInternalError,
		Message:    "Persisted cart is corrupt",
	}},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.mapping.HTTPStatus, Error(m.mapping.Status, m.mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
