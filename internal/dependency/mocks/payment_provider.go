package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// PaymentProvider is a mock type for the PaymentProvider type
type PaymentProvider struct {
	mock.Mock
}

// Name provides a mock function with given fields:
func (_m *PaymentProvider) Name() entity.PaymentMethod {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() entity.PaymentMethod); ok {
		return rf()
	}

	r0 := ret.Get(0).(entity.PaymentMethod)

	return r0
}

// Validate provides a mock function with given fields:
func (_m *PaymentProvider) Validate() error {
	ret := _m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Initialize provides a mock function with given fields: ctx, req
func (_m *PaymentProvider) Initialize(ctx context.Context, req *entity.PaymentSessionRequest) (*entity.PaymentSession, error) {
	ret := _m.Called(ctx, req)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.PaymentSessionRequest) (*entity.PaymentSession, error)); ok {
		return rf(ctx, req)
	}

	var r0 *entity.PaymentSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.PaymentSession)
	}

	return r0, ret.Error(1)
}

// Verify provides a mock function with given fields: ctx, tx
func (_m *PaymentProvider) Verify(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
	ret := _m.Called(ctx, tx)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.Transaction) (*entity.ProviderPayment, error)); ok {
		return rf(ctx, tx)
	}

	var r0 *entity.ProviderPayment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.ProviderPayment)
	}

	return r0, ret.Error(1)
}

// NewPaymentProvider creates a new instance of PaymentProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPaymentProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentProvider {
	m := &PaymentProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
