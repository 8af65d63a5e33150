package mocks

import (
	"context"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Carts is a mock type for the Carts type
type Carts struct {
	mock.Mock
}

// GetCartByID provides a mock function with given fields: ctx, id
func (_m *Carts) GetCartByID(ctx context.Context, id string) (*entity.Cart, error) {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*entity.Cart, error)); ok {
		return rf(ctx, id)
	}

	var r0 *entity.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Cart)
	}

	return r0, ret.Error(1)
}

// MarkCartPurchased provides a mock function with given fields: ctx, id, at
func (_m *Carts) MarkCartPurchased(ctx context.Context, id string, at time.Time) error {
	ret := _m.Called(ctx, id, at)

	if rf, ok := ret.Get(0).(func(context.Context, string, time.Time) error); ok {
		return rf(ctx, id, at)
	}

	return ret.Error(0)
}

// NewCarts creates a new instance of Carts. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCarts(t interface {
	mock.TestingT
	Cleanup(func())
}) *Carts {
	m := &Carts{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
