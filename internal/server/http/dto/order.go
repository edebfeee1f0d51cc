package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope is the uniform response wrapper returned by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK wraps data into a successful envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail builds a failure envelope with a human-readable message.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// CreateOrderRequest describes the order creation payload.
type CreateOrderRequest struct {
	CustomerName string          `json:"customerName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Currency     string          `json:"currency"`
}

// OrderResponse describes one order in API responses.
type OrderResponse struct {
	ID                        int64            `json:"id"`
	CustomerName              string           `json:"customerName"`
	OrderDate                 time.Time        `json:"orderDate"`
	TotalAmount               decimal.Decimal  `json:"totalAmount"`
	Currency                  string           `json:"currency"`
	Status                    string           `json:"status"`
	Priority                  decimal.Decimal  `json:"priority"`
	TotalAmountInBaseCurrency *decimal.Decimal `json:"totalAmountInBaseCurrency,omitempty"`
}
