package mocks

import (
	"context"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Transactions is a mock type for the Transactions type
type Transactions struct {
	mock.Mock
}

// Tx provides a mock function with given fields: ctx, fn
func (_m *Transactions) Tx(ctx context.Context, fn func(context.Context, dependency.Repository) error) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context, dependency.Repository) error) error); ok {
		return rf(ctx, fn)
	}

	return ret.Error(0)
}

// AddTransaction provides a mock function with given fields: ctx, ti
func (_m *Transactions) AddTransaction(ctx context.Context, ti *entity.TransactionInsert) (*entity.Transaction, error) {
	ret := _m.Called(ctx, ti)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.TransactionInsert) (*entity.Transaction, error)); ok {
		return rf(ctx, ti)
	}

	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}

	return r0, ret.Error(1)
}

// DeleteTransaction provides a mock function with given fields: ctx, id
func (_m *Transactions) DeleteTransaction(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		return rf(ctx, id)
	}

	return ret.Error(0)
}

// GetTransactionByReference provides a mock function with given fields: ctx, reference
func (_m *Transactions) GetTransactionByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	ret := _m.Called(ctx, reference)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*entity.Transaction, error)); ok {
		return rf(ctx, reference)
	}

	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}

	return r0, ret.Error(1)
}

// SetTransactionSession provides a mock function with given fields: ctx, id, session
func (_m *Transactions) SetTransactionSession(ctx context.Context, id string, session *entity.PaymentSession) error {
	ret := _m.Called(ctx, id, session)

	if rf, ok := ret.Get(0).(func(context.Context, string, *entity.PaymentSession) error); ok {
		return rf(ctx, id, session)
	}

	return ret.Error(0)
}

// CompleteTransaction provides a mock function with given fields: ctx, reference, p
func (_m *Transactions) CompleteTransaction(ctx context.Context, reference string, p *entity.ProviderPayment) (*entity.Completion, error) {
	ret := _m.Called(ctx, reference, p)

	if rf, ok := ret.Get(0).(func(context.Context, string, *entity.ProviderPayment) (*entity.Completion, error)); ok {
		return rf(ctx, reference, p)
	}

	var r0 *entity.Completion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Completion)
	}

	return r0, ret.Error(1)
}

// FailTransaction provides a mock function with given fields: ctx, reference, reason
func (_m *Transactions) FailTransaction(ctx context.Context, reference string, reason string) (bool, error) {
	ret := _m.Called(ctx, reference, reason)

	if rf, ok := ret.Get(0).(func(context.Context, string, string) (bool, error)); ok {
		return rf(ctx, reference, reason)
	}

	r0 := ret.Bool(0)

	return r0, ret.Error(1)
}

// GetStalePendingTransactions provides a mock function with given fields: ctx, olderThan, limit
func (_m *Transactions) GetStalePendingTransactions(ctx context.Context, olderThan time.Time, limit int) ([]entity.Transaction, error) {
	ret := _m.Called(ctx, olderThan, limit)

	if rf, ok := ret.Get(0).(func(context.Context, time.Time, int) ([]entity.Transaction, error)); ok {
		return rf(ctx, olderThan, limit)
	}

	var r0 []entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.Transaction)
	}

	return r0, ret.Error(1)
}

// NewTransactions creates a new instance of Transactions. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTransactions(t interface {
	mock.TestingT
	Cleanup(func())
}) *Transactions {
	m := &Transactions{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
