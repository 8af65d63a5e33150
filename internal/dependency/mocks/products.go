package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Products is a mock type for the Products type
type Products struct {
	mock.Mock
}

// GetProductsByIDs provides a mock function with given fields: ctx, ids
func (_m *Products) GetProductsByIDs(ctx context.Context, ids []string) (map[string]entity.Product, error) {
	ret := _m.Called(ctx, ids)

	if rf, ok := ret.Get(0).(func(context.Context, []string) (map[string]entity.Product, error)); ok {
		return rf(ctx, ids)
	}

	var r0 map[string]entity.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]entity.Product)
	}

	return r0, ret.Error(1)
}

// CountProducts provides a mock function with given fields: ctx
func (_m *Products) CountProducts(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) (int64, error)); ok {
		return rf(ctx)
	}

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

// NewProducts creates a new instance of Products. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProducts(t interface {
	mock.TestingT
	Cleanup(func())
}) *Products {
	m := &Products{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
