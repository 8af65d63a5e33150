package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/dto"
	mock "github.com/stretchr/testify/mock"
)

// Checkout is a mock type for the Checkout type
type Checkout struct {
	mock.Mock
}

// Initiate provides a mock function with given fields: ctx, req
func (_m *Checkout) Initiate(ctx context.Context, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	ret := _m.Called(ctx, req)

	if rf, ok := ret.Get(0).(func(context.Context, *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)); ok {
		return rf(ctx, req)
	}

	var r0 *dto.InitiatePaymentResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*dto.InitiatePaymentResponse)
	}

	return r0, ret.Error(1)
}

// ConfirmOrder provides a mock function with given fields: ctx, reference
func (_m *Checkout) ConfirmOrder(ctx context.Context, reference string) (*dto.ConfirmOrderResponse, error) {
	ret := _m.Called(ctx, reference)

	if rf, ok := ret.Get(0).(func(context.Context, string) (*dto.ConfirmOrderResponse, error)); ok {
		return rf(ctx, reference)
	}

	var r0 *dto.ConfirmOrderResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*dto.ConfirmOrderResponse)
	}

	return r0, ret.Error(1)
}

// NewCheckout creates a new instance of Checkout. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCheckout(t interface {
	mock.TestingT
	Cleanup(func())
}) *Checkout {
	m := &Checkout{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
