package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"

	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/jekabolt/storefront-ledger/internal/payment"
)

// SignatureHeader carries the hex HMAC-SHA512 of the raw body.
const SignatureHeader = "x-paystack-signature"

// Sign returns the hex HMAC-SHA512 of body under secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares the signature header against the body in
// constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), want)
}

// ParseWebhook verifies the delivery signature and decodes the event
// envelope.
func (p *Client) ParseWebhook(body []byte, header http.Header) (*payment.Webhook, error) {
	if !VerifySignature(body, header.Get(SignatureHeader), p.webhookSecret()) {
		return nil, gerr.InvalidSignature
	}
	var ev struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &ev); err != nil || ev.Event == "" {
		return nil, gerr.Validation("malformed webhook payload")
	}
	return &payment.Webhook{Event: ev.Event, Data: ev.Data}, nil
}
