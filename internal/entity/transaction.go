package entity

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionSucceeded TransactionStatus = "succeeded"
	TransactionFailed    TransactionStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodPaystack PaymentMethod = "paystack"
	PaymentMethodStripe   PaymentMethod = "stripe"
)

// TransactionItem is one frozen line of the cart at initiation time.
type TransactionItem struct {
	Product  Ref   `json:"product"`
	Variant  Ref   `json:"variant,omitempty"`
	Quantity int64 `json:"quantity"`
	UnitSnapshot
}

// TransactionItems is stored as a JSON column.
type TransactionItems []TransactionItem

func (ti TransactionItems) Value() (driver.Value, error) {
	if ti == nil {
		ti = TransactionItems{}
	}
	return json.Marshal(ti)
}

func (ti *TransactionItems) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*ti = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("can't scan %T into transaction items", src)
	}
	return json.Unmarshal(b, ti)
}

// Subtotal is the sum of snapshot unit prices times quantity in minor units.
func (ti TransactionItems) Subtotal() int64 {
	var total int64
	for _, it := range ti {
		if it.UnitPrice != nil {
			total += *it.UnitPrice * it.Quantity
		}
	}
	return total
}

// Transaction represents the payment_transaction table.
// Status succeeded always comes with a non-empty OrderID.
type Transaction struct {
	ID                    string            `db:"id"`
	Status                TransactionStatus `db:"status"`
	PaymentMethod         PaymentMethod     `db:"payment_method"`
	Reference             string            `db:"reference"`
	OrderID               Ref               `db:"order_id"`
	CartID                Ref               `db:"cart_id"`
	Amount                int64             `db:"amount"`
	Currency              Currency          `db:"currency"`
	CustomerID            Ref               `db:"customer_id"`
	CustomerEmail         string            `db:"customer_email"`
	Items                 TransactionItems  `db:"items"`
	BillingAddress        JSONAddress       `db:"billing_address"`
	ShippingAddress       JSONAddress       `db:"shipping_address"`
	ProviderTransactionID string            `db:"provider_transaction_id"`
	AccessCode            string            `db:"access_code"`
	PaidAt                sql.NullTime      `db:"paid_at"`
	Channel               string            `db:"channel"`
	CustomerCode          string            `db:"customer_code"`
	FailureReason         string            `db:"failure_reason"`
	CreatedAt             time.Time         `db:"created_at"`
	UpdatedAt             time.Time         `db:"updated_at"`
}

// IsCompleted reports whether the transaction already produced its order.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionSucceeded && !t.OrderID.IsZero()
}

// TransactionInsert holds the fields of a new pending transaction.
type TransactionInsert struct {
	Reference       string
	PaymentMethod   PaymentMethod
	CartID          Ref
	Amount          int64
	Currency        Currency
	CustomerID      Ref
	CustomerEmail   string
	Items           TransactionItems
	BillingAddress  *Address
	ShippingAddress *Address
}

type ProviderPaymentStatus string

const (
	ProviderPaymentSuccess   ProviderPaymentStatus = "success"
	ProviderPaymentFailed    ProviderPaymentStatus = "failed"
	ProviderPaymentAbandoned ProviderPaymentStatus = "abandoned"
	ProviderPaymentPending   ProviderPaymentStatus = "pending"
)

// ProviderPayment is what a payment provider reports about a charge.
type ProviderPayment struct {
	Reference             string
	ProviderTransactionID string
	Status                ProviderPaymentStatus
	Amount                int64
	Currency              Currency
	PaidAt                time.Time
	Channel               string
	CustomerEmail         string
	CustomerCode          string
}

func (p *ProviderPayment) Succeeded() bool {
	return p != nil && p.Status == ProviderPaymentSuccess
}

// IsTerminalFailure reports a charge the provider will never settle.
func (p *ProviderPayment) IsTerminalFailure() bool {
	return p != nil && (p.Status == ProviderPaymentFailed || p.Status == ProviderPaymentAbandoned)
}

// PaymentSessionRequest asks a provider to open a checkout session.
type PaymentSessionRequest struct {
	Reference       string
	Email           string
	Amount          int64
	Currency        Currency
	CartID          Ref
	Items           TransactionItems
	ShippingAddress *Address
}

// PaymentSession is the provider's answer to PaymentSessionRequest.
type PaymentSession struct {
	Reference             string
	AuthorizationURL      string
	AccessCode            string
	ProviderTransactionID string
}

// Completion is the outcome of turning a successful payment into an order.
// Created is false when a previous signal already produced the order.
type Completion struct {
	OrderID       string
	TransactionID string
	Created       bool
	Order         *OrderFull
}
