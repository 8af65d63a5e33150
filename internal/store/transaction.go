package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

const transactionColumns = `id, status, payment_method, reference, order_id, cart_id, amount, currency,
	customer_id, customer_email, items, billing_address, shipping_address, provider_transaction_id,
	access_code, paid_at, channel, customer_code, failure_reason, created_at, updated_at`

type transactionStore struct {
	*MYSQLStore
}

// Transactions returns an object implementing transactions interface
func (ms *MYSQLStore) Transactions() dependency.Transactions {
	return &transactionStore{
		MYSQLStore: ms,
	}
}

// AddTransaction inserts a pending transaction and returns it.
func (ts *transactionStore) AddTransaction(ctx context.Context, ti *entity.TransactionInsert) (*entity.Transaction, error) {
	now := ts.Now()
	tx := &entity.Transaction{
		ID:              uuid.NewString(),
		Status:          entity.TransactionPending,
		PaymentMethod:   ti.PaymentMethod,
		Reference:       ti.Reference,
		CartID:          ti.CartID,
		Amount:          ti.Amount,
		Currency:        ti.Currency.Normalize(),
		CustomerID:      ti.CustomerID,
		CustomerEmail:   ti.CustomerEmail,
		Items:           ti.Items,
		BillingAddress:  entity.JSONAddress{Address: ti.BillingAddress},
		ShippingAddress: entity.JSONAddress{Address: ti.ShippingAddress},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	query := `
	INSERT INTO payment_transaction
	 (id, status, payment_method, reference, cart_id, amount, currency, customer_id, customer_email,
	  items, billing_address, shipping_address, created_at, updated_at)
	 VALUES (:id, :status, :paymentMethod, :reference, :cartId, :amount, :currency, :customerId, :customerEmail,
	  :items, :billingAddress, :shippingAddress, :createdAt, :updatedAt)
	`
	err := ExecNamed(ctx, ts.DB(), query, map[string]any{
		"id":              tx.ID,
		"status":          tx.Status,
		"paymentMethod":   tx.PaymentMethod,
		"reference":       tx.Reference,
		"cartId":          tx.CartID,
		"amount":          tx.Amount,
		"currency":        tx.Currency,
		"customerId":      tx.CustomerID,
		"customerEmail":   tx.CustomerEmail,
		"items":           tx.Items,
		"billingAddress":  tx.BillingAddress,
		"shippingAddress": tx.ShippingAddress,
		"createdAt":       tx.CreatedAt,
		"updatedAt":       tx.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("can't insert transaction: %w", err)
	}
	return tx, nil
}

// DeleteTransaction removes a transaction that never produced an order.
func (ts *transactionStore) DeleteTransaction(ctx context.Context, id string) error {
	query := `DELETE FROM payment_transaction WHERE id = :id AND order_id IS NULL`
	if err := ExecNamed(ctx, ts.DB(), query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("can't delete transaction: %w", err)
	}
	return nil
}

func (ts *transactionStore) GetTransactionByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	return getTransactionByReference(ctx, ts.MYSQLStore, reference, false)
}

func (ts *transactionStore) SetTransactionSession(ctx context.Context, id string, session *entity.PaymentSession) error {
	query := `
	UPDATE payment_transaction
	SET access_code = :accessCode, provider_transaction_id = :providerTxId, updated_at = :updatedAt
	WHERE id = :id`
	err := ExecNamed(ctx, ts.DB(), query, map[string]any{
		"id":           id,
		"accessCode":   session.AccessCode,
		"providerTxId": session.ProviderTransactionID,
		"updatedAt":    ts.Now(),
	})
	if err != nil {
		return fmt.Errorf("can't set transaction session: %w", err)
	}
	return nil
}

// CompleteTransaction locks the transaction row and, unless an order already
// exists for it, creates the order from the item snapshot, marks the cart
// purchased and moves the transaction to succeeded in one database
// transaction.
func (ts *transactionStore) CompleteTransaction(ctx context.Context, reference string, p *entity.ProviderPayment) (*entity.Completion, error) {
	var c *entity.Completion
	err := ts.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		tx, err := getTransactionByReference(ctx, rep, reference, true)
		if err != nil {
			return err
		}

		if tx.IsCompleted() {
			of, err := getOrderFullByID(ctx, rep, tx.OrderID.String())
			if err != nil {
				return fmt.Errorf("can't get existing order: %w", err)
			}
			c = &entity.Completion{
				OrderID:       of.ID,
				TransactionID: tx.ID,
				Created:       false,
				Order:         of,
			}
			return nil
		}
		if tx.Status != entity.TransactionPending {
			return gerr.TransactionFailed
		}

		of := orderFromTransaction(tx, p)
		of.CreatedAt = rep.Now()
		if err := insertOrderFull(ctx, rep, of); err != nil {
			return err
		}

		if !tx.CartID.IsZero() {
			if err := markCartPurchased(ctx, rep, tx.CartID.String(), of.CreatedAt); err != nil {
				return err
			}
		}

		paidAt := sql.NullTime{}
		if p != nil && !p.PaidAt.IsZero() {
			paidAt = sql.NullTime{Time: p.PaidAt, Valid: true}
		}
		params := map[string]any{
			"id":           tx.ID,
			"orderId":      of.ID,
			"providerTxId": tx.ProviderTransactionID,
			"paidAt":       paidAt,
			"channel":      "",
			"customerCode": "",
			"updatedAt":    rep.Now(),
		}
		if p != nil {
			if p.ProviderTransactionID != "" {
				params["providerTxId"] = p.ProviderTransactionID
			}
			params["channel"] = p.Channel
			params["customerCode"] = p.CustomerCode
		}
		query := `
		UPDATE payment_transaction
		SET status = 'succeeded', order_id = :orderId, provider_transaction_id = :providerTxId,
			paid_at = :paidAt, channel = :channel, customer_code = :customerCode, updated_at = :updatedAt
		WHERE id = :id AND status = 'pending' AND order_id IS NULL`
		n, err := ExecNamedRows(ctx, rep.DB(), query, params)
		if err != nil {
			return fmt.Errorf("can't mark transaction succeeded: %w", err)
		}
		if n == 0 {
			return gerr.TransactionConflict
		}

		c = &entity.Completion{
			OrderID:       of.ID,
			TransactionID: tx.ID,
			Created:       true,
			Order:         of,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// orderFromTransaction builds the order from the frozen transaction items.
// Amount and currency are what the provider charged, falling back to the
// transaction. The email falls back to the one the provider saw.
func orderFromTransaction(tx *entity.Transaction, p *entity.ProviderPayment) *entity.OrderFull {
	amount, cur, email := tx.Amount, tx.Currency, tx.CustomerEmail
	if p != nil && p.Amount > 0 {
		amount = p.Amount
		if p.Currency != "" {
			cur = p.Currency
		}
	}
	if email == "" && p != nil {
		email = p.CustomerEmail
	}
	of := &entity.OrderFull{
		Order: entity.Order{
			ID:              uuid.NewString(),
			Amount:          amount,
			Currency:        cur.Normalize(),
			Status:          entity.DefaultOrderStatus,
			CustomerID:      tx.CustomerID,
			CustomerEmail:   email,
			TransactionID:   entity.Ref(tx.ID),
			ShippingAddress: tx.ShippingAddress,
		},
		Items: make([]entity.OrderItem, 0, len(tx.Items)),
	}
	for _, it := range tx.Items {
		oi := entity.OrderItem{
			ProductID: it.Product,
			VariantID: it.Variant,
			Quantity:  it.Quantity,
		}
		if it.UnitPrice != nil {
			oi.UnitPrice = sql.NullInt64{Int64: *it.UnitPrice, Valid: true}
		}
		if it.UnitCostPrice != nil {
			oi.UnitCostPrice = sql.NullInt64{Int64: *it.UnitCostPrice, Valid: true}
		}
		of.Items = append(of.Items, oi)
	}
	return of
}

// FailTransaction moves a pending transaction to failed.
func (ts *transactionStore) FailTransaction(ctx context.Context, reference string, reason string) (bool, error) {
	if len(reason) > 255 {
		reason = reason[:255]
	}
	query := `
	UPDATE payment_transaction
	SET status = 'failed', failure_reason = :reason, updated_at = :updatedAt
	WHERE reference = :reference AND status = 'pending' AND order_id IS NULL`
	n, err := ExecNamedRows(ctx, ts.DB(), query, map[string]any{
		"reference": reference,
		"reason":    reason,
		"updatedAt": ts.Now(),
	})
	if err != nil {
		return false, fmt.Errorf("can't fail transaction: %w", err)
	}
	return n > 0, nil
}

// GetStalePendingTransactions returns up to limit pending transactions
// created before olderThan, oldest first.
func (ts *transactionStore) GetStalePendingTransactions(ctx context.Context, olderThan time.Time, limit int) ([]entity.Transaction, error) {
	query := `
	SELECT ` + transactionColumns + `
	FROM payment_transaction
	WHERE status = 'pending' AND created_at < :olderThan
	ORDER BY created_at
	LIMIT :limit`
	txs, err := QueryListNamed[entity.Transaction](ctx, ts.DB(), query, map[string]any{
		"olderThan": olderThan,
		"limit":     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get stale pending transactions: %w", err)
	}
	return txs, nil
}

func getTransactionByReference(ctx context.Context, rep dependency.Repository, reference string, forUpdate bool) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM payment_transaction WHERE reference = :reference`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	tx, err := QueryNamedOne[entity.Transaction](ctx, rep.DB(), query, map[string]any{
		"reference": reference,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.TransactionNotFound
		}
		return nil, fmt.Errorf("can't get transaction by reference: %w", err)
	}
	return &tx, nil
}
