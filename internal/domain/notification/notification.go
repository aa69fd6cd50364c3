package notification

import (
	"time"
)

type Severity string

const SeverityError Severity = "error"

type Code string

const (
	CodeOutOfStock   Code = "out_of_stock"
	CodeAddFailed    Code = "add_failed"
	CodeRemoveFailed Code = "remove_failed"
	CodeUpdateFailed Code = "update_failed"
)

var messages = map[Code]string{
	CodeOutOfStock:   "requested quantity out of stock",
	CodeAddFailed:    "error adding product",
	CodeRemoveFailed: "error removing product",
	CodeUpdateFailed: "error changing product quantity",
}

// Notification is a user-facing toast.
type Notification struct {
	Severity Severity  `json:"severity"`
	Code     Code      `json:"code"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

func Message(code Code) string {
	return messages[code]
}

func NewError(code Code, at time.Time) Notification {
	return Notification{
		Severity: SeverityError,
		Code:     code,
		Message:  Message(code),
		Time:     at,
	}
}
