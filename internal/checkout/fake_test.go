package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/dependency/mocks"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/stretchr/testify/mock"
)

// memTransactions keeps transactions in memory and completes them under one
// lock, the way the row lock of the MySQL store does.
type memTransactions struct {
	mu      sync.Mutex
	byRef   map[string]*entity.Transaction
	orders  []*entity.OrderFull
	deleted []string
	seq     int
}

var _ dependency.Transactions = (*memTransactions)(nil)

func newMemTransactions(txs ...entity.Transaction) *memTransactions {
	m := &memTransactions{byRef: make(map[string]*entity.Transaction)}
	for i := range txs {
		tx := txs[i]
		m.byRef[tx.Reference] = &tx
	}
	return m
}

func (m *memTransactions) Tx(ctx context.Context, fn func(context.Context, dependency.Repository) error) error {
	return errors.New("not supported")
}

func (m *memTransactions) AddTransaction(_ context.Context, ti *entity.TransactionInsert) (*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	tx := &entity.Transaction{
		ID:              fmt.Sprintf("txid_%d", m.seq),
		Status:          entity.TransactionPending,
		PaymentMethod:   ti.PaymentMethod,
		Reference:       ti.Reference,
		CartID:          ti.CartID,
		Amount:          ti.Amount,
		Currency:        ti.Currency,
		CustomerID:      ti.CustomerID,
		CustomerEmail:   ti.CustomerEmail,
		Items:           ti.Items,
		BillingAddress:  entity.JSONAddress{Address: ti.BillingAddress},
		ShippingAddress: entity.JSONAddress{Address: ti.ShippingAddress},
		CreatedAt:       time.Now(),
	}
	m.byRef[tx.Reference] = tx
	return tx, nil
}

func (m *memTransactions) DeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ref, tx := range m.byRef {
		if tx.ID == id && tx.OrderID.IsZero() {
			delete(m.byRef, ref)
			m.deleted = append(m.deleted, id)
		}
	}
	return nil
}

func (m *memTransactions) GetTransactionByReference(_ context.Context, reference string) (*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.byRef[reference]
	if !ok {
		return nil, gerr.TransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (m *memTransactions) SetTransactionSession(_ context.Context, id string, s *entity.PaymentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range m.byRef {
		if tx.ID == id {
			tx.AccessCode = s.AccessCode
			tx.ProviderTransactionID = s.ProviderTransactionID
			return nil
		}
	}
	return gerr.TransactionNotFound
}

func (m *memTransactions) CompleteTransaction(_ context.Context, reference string, p *entity.ProviderPayment) (*entity.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.byRef[reference]
	if !ok {
		return nil, gerr.TransactionNotFound
	}
	if tx.IsCompleted() {
		for _, o := range m.orders {
			if o.ID == tx.OrderID.String() {
				return &entity.Completion{OrderID: o.ID, TransactionID: tx.ID, Order: o}, nil
			}
		}
		return nil, errors.New("order missing")
	}
	if tx.Status != entity.TransactionPending {
		return nil, gerr.TransactionFailed
	}

	of := &entity.OrderFull{Order: entity.Order{
		ID:            fmt.Sprintf("order_%d", len(m.orders)+1),
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Status:        entity.DefaultOrderStatus,
		CustomerEmail: tx.CustomerEmail,
		TransactionID: entity.Ref(tx.ID),
	}}
	for _, it := range tx.Items {
		of.Items = append(of.Items, entity.OrderItem{ProductID: it.Product, Quantity: it.Quantity})
	}
	m.orders = append(m.orders, of)
	tx.Status = entity.TransactionSucceeded
	tx.OrderID = entity.Ref(of.ID)
	tx.Channel = p.Channel
	return &entity.Completion{OrderID: of.ID, TransactionID: tx.ID, Created: true, Order: of}, nil
}

func (m *memTransactions) FailTransaction(_ context.Context, reference string, reason string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.byRef[reference]
	if !ok || tx.Status != entity.TransactionPending || !tx.OrderID.IsZero() {
		return false, nil
	}
	tx.Status = entity.TransactionFailed
	tx.FailureReason = reason
	return true, nil
}

func (m *memTransactions) GetStalePendingTransactions(context.Context, time.Time, int) ([]entity.Transaction, error) {
	return nil, nil
}

func (m *memTransactions) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memTransactions) status(reference string) entity.TransactionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx, ok := m.byRef[reference]; ok {
		return tx.Status
	}
	return ""
}

// stubProvider answers Verify through a func so tests can hold calls back.
type stubProvider struct {
	verify func(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error)
}

func (p *stubProvider) Name() entity.PaymentMethod { return entity.PaymentMethodPaystack }

func (p *stubProvider) Validate() error { return nil }

func (p *stubProvider) Initialize(context.Context, *entity.PaymentSessionRequest) (*entity.PaymentSession, error) {
	return nil, errors.New("not supported")
}

func (p *stubProvider) Verify(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
	return p.verify(ctx, tx)
}

func pendingTx(reference string) entity.Transaction {
	price, cost := int64(5000), int64(2000)
	return entity.Transaction{
		ID:            "txid_" + reference,
		Status:        entity.TransactionPending,
		PaymentMethod: entity.PaymentMethodPaystack,
		Reference:     reference,
		CartID:        "cart_1",
		Amount:        10000,
		Currency:      entity.NGN,
		CustomerEmail: "ada@example.com",
		Items: entity.TransactionItems{{
			Product:      "prod_1",
			Quantity:     2,
			UnitSnapshot: entity.UnitSnapshot{UnitPrice: &price, UnitCostPrice: &cost},
		}},
	}
}

func successFor(reference string) *entity.ProviderPayment {
	return &entity.ProviderPayment{
		Reference:             reference,
		ProviderTransactionID: "4099260516",
		Status:                entity.ProviderPaymentSuccess,
		Amount:                10000,
		Currency:              entity.NGN,
		Channel:               "card",
	}
}

// newTestRepo wires txs and a product catalogue behind a repository mock.
func newTestRepo(t *testing.T, txs dependency.Transactions) *mocks.Repository {
	t.Helper()
	products := mocks.NewProducts(t)
	products.On("GetProductsByIDs", mock.Anything, mock.Anything).Return(map[string]entity.Product{
		"prod_1": {ID: "prod_1", Title: "Linen Shirt", Prices: map[entity.Currency]entity.PricePair{
			entity.NGN: {Price: 5000, Cost: 2000},
			entity.USD: {Price: 300, Cost: 100},
		}},
	}, nil).Maybe()

	repo := mocks.NewRepository(t)
	repo.On("Transactions").Return(txs).Maybe()
	repo.On("Products").Return(products).Maybe()
	return repo
}
