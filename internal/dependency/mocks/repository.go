package mocks

import (
	"context"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	mock "github.com/stretchr/testify/mock"
)

// Repository is a mock type for the Repository type
type Repository struct {
	mock.Mock
}

// Products provides a mock function with given fields:
func (_m *Repository) Products() dependency.Products {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.Products); ok {
		return rf()
	}

	var r0 dependency.Products
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Products)
	}

	return r0
}

// Orders provides a mock function with given fields:
func (_m *Repository) Orders() dependency.Orders {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.Orders); ok {
		return rf()
	}

	var r0 dependency.Orders
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Orders)
	}

	return r0
}

// Expenses provides a mock function with given fields:
func (_m *Repository) Expenses() dependency.Expenses {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.Expenses); ok {
		return rf()
	}

	var r0 dependency.Expenses
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Expenses)
	}

	return r0
}

// Customers provides a mock function with given fields:
func (_m *Repository) Customers() dependency.Customers {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.Customers); ok {
		return rf()
	}

	var r0 dependency.Customers
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Customers)
	}

	return r0
}

// Carts provides a mock function with given fields:
func (_m *Repository) Carts() dependency.Carts {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.Carts); ok {
		return rf()
	}

	var r0 dependency.Carts
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Carts)
	}

	return r0
}

// Transactions provides a mock function with given fields:
func (_m *Repository) Transactions() dependency.Transactions {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.Transactions); ok {
		return rf()
	}

	var r0 dependency.Transactions
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Transactions)
	}

	return r0
}

// Mail provides a mock function with given fields:
func (_m *Repository) Mail() dependency.Mail {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.Mail); ok {
		return rf()
	}

	var r0 dependency.Mail
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Mail)
	}

	return r0
}

// Tx provides a mock function with given fields: ctx, f
func (_m *Repository) Tx(ctx context.Context, f func(context.Context, dependency.Repository) error) error {
	ret := _m.Called(ctx, f)

	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context, dependency.Repository) error) error); ok {
		return rf(ctx, f)
	}

	return ret.Error(0)
}

// TxBegin provides a mock function with given fields: ctx
func (_m *Repository) TxBegin(ctx context.Context) (dependency.Repository, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) (dependency.Repository, error)); ok {
		return rf(ctx)
	}

	var r0 dependency.Repository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.Repository)
	}

	return r0, ret.Error(1)
}

// TxCommit provides a mock function with given fields: ctx
func (_m *Repository) TxCommit(ctx context.Context) error {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		return rf(ctx)
	}

	return ret.Error(0)
}

// TxRollback provides a mock function with given fields: ctx
func (_m *Repository) TxRollback(ctx context.Context) error {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		return rf(ctx)
	}

	return ret.Error(0)
}

// Now provides a mock function with given fields:
func (_m *Repository) Now() time.Time {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() time.Time); ok {
		return rf()
	}

	r0 := ret.Get(0).(time.Time)

	return r0
}

// InTx provides a mock function with given fields:
func (_m *Repository) InTx() bool {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() bool); ok {
		return rf()
	}

	r0 := ret.Bool(0)

	return r0
}

// Close provides a mock function with given fields:
func (_m *Repository) Close() {
	_m.Called()
}

// Ping provides a mock function with given fields: ctx
func (_m *Repository) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		return rf(ctx)
	}

	return ret.Error(0)
}

// IsErrUniqueViolation provides a mock function with given fields: err
func (_m *Repository) IsErrUniqueViolation(err error) bool {
	ret := _m.Called(err)

	if rf, ok := ret.Get(0).(func(error) bool); ok {
		return rf(err)
	}

	r0 := ret.Bool(0)

	return r0
}

// IsErrorRepeat provides a mock function with given fields: err
func (_m *Repository) IsErrorRepeat(err error) bool {
	ret := _m.Called(err)

	if rf, ok := ret.Get(0).(func(error) bool); ok {
		return rf(err)
	}

	r0 := ret.Bool(0)

	return r0
}

// DB provides a mock function with given fields:
func (_m *Repository) DB() dependency.DB {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() dependency.DB); ok {
		return rf()
	}

	var r0 dependency.DB
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(dependency.DB)
	}

	return r0
}

// NewRepository creates a new instance of Repository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *Repository {
	m := &Repository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
