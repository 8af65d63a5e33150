package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Orders is a mock type for the Orders type
type Orders struct {
	mock.Mock
}

// GetOrdersCreated provides a mock function with given fields: ctx, tr
func (_m *Orders) GetOrdersCreated(ctx context.Context, tr entity.TimeRange) ([]entity.OrderFull, error) {
	ret := _m.Called(ctx, tr)

	if rf, ok := ret.Get(0).(func(context.Context, entity.TimeRange) ([]entity.OrderFull, error)); ok {
		return rf(ctx, tr)
	}

	var r0 []entity.OrderFull
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.OrderFull)
	}

	return r0, ret.Error(1)
}

// GetOrderByID provides a mock function with given fields: ctx, id
func (_m *Orders) GetOrderByID(ctx context.Context, id string) (*entity.OrderFull, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*entity.OrderFull, error)); ok {
		return rf(ctx, id)
	}

	var r0 *entity.OrderFull
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.OrderFull)
	}

	return r0, ret.Error(1)
}

// AddOrder provides a mock function with given fields: ctx, o
func (_m *Orders) AddOrder(ctx context.Context, o *entity.OrderFull) error {
	ret := _m.Called(ctx, o)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.OrderFull) error); ok {
		return rf(ctx, o)
	}

	return ret.Error(0)
}

// NewOrders creates a new instance of Orders. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOrders(t interface {
	mock.TestingT
	Cleanup(func())
}) *Orders {
	m := &Orders{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
