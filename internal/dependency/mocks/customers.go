package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Customers is a mock type for the Customers type
type Customers struct {
	mock.Mock
}

// CountCustomers provides a mock function with given fields: ctx
func (_m *Customers) CountCustomers(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) (int64, error)); ok {
		return rf(ctx)
	}

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

// CountCustomersCreated provides a mock function with given fields: ctx, tr
func (_m *Customers) CountCustomersCreated(ctx context.Context, tr entity.TimeRange) (int64, error) {
	ret := _m.Called(ctx, tr)

	if rf, ok := ret.Get(0).(func(context.Context, entity.TimeRange) (int64, error)); ok {
		return rf(ctx, tr)
	}

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

// NewCustomers creates a new instance of Customers. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCustomers(t interface {
	mock.TestingT
	Cleanup(func())
}) *Customers {
	m := &Customers{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
