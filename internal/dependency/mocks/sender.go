package mocks

import (
	"context"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	mock "github.com/stretchr/testify/mock"
)

// Sender is a mock type for the Sender type
type Sender struct {
	mock.Mock
}

// SendWithContext provides a mock function with given fields: ctx, email
func (_m *Sender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	ret := _m.Called(ctx, email)

	if rf, ok := ret.Get(0).(func(context.Context, *mail.SGMailV3) (*rest.Response, error)); ok {
		return rf(ctx, email)
	}

	var r0 *rest.Response
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*rest.Response)
	}

	return r0, ret.Error(1)
}

// NewSender creates a new instance of Sender. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *Sender {
	m := &Sender{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
