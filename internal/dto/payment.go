package dto

import (
	"github.com/jekabolt/storefront-ledger/internal/entity"
)

// InitiatePaymentRequest is the storefront checkout request body.
type InitiatePaymentRequest struct {
	CustomerEmail   string          `json:"customerEmail" valid:"email,required"`
	Currency        string          `json:"currency" valid:"required"`
	CartID          string          `json:"cartID" valid:"required"`
	BillingAddress  *entity.Address `json:"billingAddress,omitempty" valid:"-"`
	ShippingAddress *entity.Address `json:"shippingAddress,omitempty" valid:"-"`
}

type InitiatePaymentResponse struct {
	Message          string `json:"message"`
	Reference        string `json:"reference"`
	AccessCode       string `json:"accessCode,omitempty"`
	AuthorizationURL string `json:"authorizationUrl,omitempty"`
}

type ConfirmOrderRequest struct {
	Reference string `json:"reference" valid:"required"`
}

type ConfirmOrderResponse struct {
	Message       string `json:"message"`
	OrderID       string `json:"orderID"`
	TransactionID string `json:"transactionID"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
