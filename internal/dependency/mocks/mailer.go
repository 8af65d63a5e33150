package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/dto"
	mock "github.com/stretchr/testify/mock"
)

// Mailer is a mock type for the Mailer type
type Mailer struct {
	mock.Mock
}

// SendOrderConfirmation provides a mock function with given fields: ctx, to, orderDetails
func (_m *Mailer) SendOrderConfirmation(ctx context.Context, to string, orderDetails *dto.OrderConfirmed) error {
	ret := _m.Called(ctx, to, orderDetails)

	if rf, ok := ret.Get(0).(func(context.Context, string, *dto.OrderConfirmed) error); ok {
		return rf(ctx, to, orderDetails)
	}

	return ret.Error(0)
}

// Start provides a mock function with given fields: ctx
func (_m *Mailer) Start(ctx context.Context) error {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		return rf(ctx)
	}

	return ret.Error(0)
}

// Stop provides a mock function with given fields:
func (_m *Mailer) Stop() error {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() error); ok {
		return rf()
	}

	return ret.Error(0)
}

// NewMailer creates a new instance of Mailer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMailer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
