package checkout

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackWebhooks(t *testing.T) {
	txs := newMemTransactions(pendingTx("tx_1"))
	var calls atomic.Int32
	s := newTestService(t, txs, verifySuccess(&calls), nil)
	reg := PaystackWebhooks(s)

	data := json.RawMessage(`{"id":4099260516,"status":"success","reference":"tx_1","amount":10000,
		"currency":"NGN","channel":"card","paid_at":"2026-10-01T10:00:00Z","customer":{"email":"ada@example.com"}}`)

	handled, err := reg.Dispatch(context.Background(), "charge.success", data)
	require.NoError(t, err)
	assert.True(t, handled)
	handled, err = reg.Dispatch(context.Background(), "charge.success", data)
	require.NoError(t, err)
	assert.True(t, handled)

	assert.Equal(t, 1, txs.orderCount())
	assert.Equal(t, entity.TransactionSucceeded, txs.status("tx_1"))
	assert.Zero(t, calls.Load())

	handled, err = reg.Dispatch(context.Background(), "transfer.success", data)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestPaystackChargeFailed(t *testing.T) {
	txs := newMemTransactions(pendingTx("tx_1"), pendingTx("tx_2"))
	var calls atomic.Int32
	s := newTestService(t, txs, verifySuccess(&calls), nil)
	reg := PaystackWebhooks(s)
	assert.Equal(t, []string{"charge.failed", "charge.success"}, reg.Events())

	charge := func(ref, status string) json.RawMessage {
		return json.RawMessage(`{"id":4099260516,"status":"` + status + `","reference":"` + ref + `",
			"amount":10000,"currency":"NGN","channel":"card","customer":{"email":"ada@example.com"}}`)
	}

	handled, err := reg.Dispatch(context.Background(), "charge.failed", charge("tx_1", "failed"))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, entity.TransactionFailed, txs.status("tx_1"))

	// a late failure event does not undo a settled transaction
	_, err = reg.Dispatch(context.Background(), "charge.success", charge("tx_2", "success"))
	require.NoError(t, err)
	_, err = reg.Dispatch(context.Background(), "charge.failed", charge("tx_2", "failed"))
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionSucceeded, txs.status("tx_2"))
	assert.Equal(t, 1, txs.orderCount())
}

func TestStripeWebhooks(t *testing.T) {
	txs := newMemTransactions(pendingTx("tx_1"), pendingTx("tx_2"))
	var calls atomic.Int32
	s := newTestService(t, txs, verifySuccess(&calls), nil)
	reg := StripeWebhooks(s)

	intent := func(ref, status string) json.RawMessage {
		return json.RawMessage(`{"id":"pi_` + ref + `","object":"payment_intent","amount":10000,"currency":"ngn",
			"status":"` + status + `","metadata":{"reference":"` + ref + `"}}`)
	}

	_, err := reg.Dispatch(context.Background(), "payment_intent.succeeded", intent("tx_1", "succeeded"))
	require.NoError(t, err)
	_, err = reg.Dispatch(context.Background(), "payment_intent.payment_failed", intent("tx_2", "requires_payment_method"))
	require.NoError(t, err)
	_, err = reg.Dispatch(context.Background(), "payment_intent.canceled", intent("tx_1", "canceled"))
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionSucceeded, txs.status("tx_1"))
	assert.Equal(t, entity.TransactionFailed, txs.status("tx_2"))
	assert.Equal(t, 1, txs.orderCount())
}

func TestWebhookRejectsChargeWithoutReference(t *testing.T) {
	s := newTestService(t, newMemTransactions(), &stubProvider{}, nil)
	_, err := PaystackWebhooks(s).Dispatch(context.Background(), "charge.success", json.RawMessage(`{"status":"success"}`))
	assert.Error(t, err)
}
