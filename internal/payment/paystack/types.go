package paystack

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
)

const (
	// EventChargeSuccess is sent once a charge settles.
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

var errMissingReference = errors.New("charge has no reference")

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeRequest struct {
	Email       string             `json:"email"`
	Amount      int64              `json:"amount"`
	Currency    string             `json:"currency"`
	Reference   string             `json:"reference"`
	CallbackURL string             `json:"callback_url,omitempty"`
	Metadata    initializeMetadata `json:"metadata"`
}

type initializeMetadata struct {
	CartID            string        `json:"cartID"`
	CartItemsSnapshot string        `json:"cartItemsSnapshot"`
	ShippingAddress   string        `json:"shippingAddress,omitempty"`
	CustomFields      []customField `json:"custom_fields"`
}

type customField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// chargeData is the transaction object of verify answers and charge events.
type chargeData struct {
	ID              json.Number `json:"id"`
	Status          string      `json:"status"`
	Reference       string      `json:"reference"`
	Amount          int64       `json:"amount"`
	Currency        string      `json:"currency"`
	PaidAt          *time.Time  `json:"paid_at"`
	Channel         string      `json:"channel"`
	GatewayResponse string      `json:"gateway_response"`
	Customer        struct {
		Email        string `json:"email"`
		CustomerCode string `json:"customer_code"`
	} `json:"customer"`
}

func (d *chargeData) toProviderPayment() *entity.ProviderPayment {
	p := &entity.ProviderPayment{
		Reference:             d.Reference,
		ProviderTransactionID: d.ID.String(),
		Status:                providerStatus(d.Status),
		Amount:                d.Amount,
		Currency:              entity.Currency(strings.ToUpper(d.Currency)),
		Channel:               d.Channel,
		CustomerEmail:         d.Customer.Email,
		CustomerCode:          d.Customer.CustomerCode,
	}
	if d.PaidAt != nil {
		p.PaidAt = *d.PaidAt
	}
	return p
}

func providerStatus(s string) entity.ProviderPaymentStatus {
	switch s {
	case "success":
		return entity.ProviderPaymentSuccess
	case "failed", "reversed":
		return entity.ProviderPaymentFailed
	case "abandoned":
		return entity.ProviderPaymentAbandoned
	default:
		return entity.ProviderPaymentPending
	}
}

// ParseCharge decodes the data object of a charge event.
func ParseCharge(data json.RawMessage) (*entity.ProviderPayment, error) {
	var d chargeData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if d.Reference == "" {
		return nil, errMissingReference
	}
	return d.toProviderPayment(), nil
}

