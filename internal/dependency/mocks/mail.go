package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Mail is a mock type for the Mail type
type Mail struct {
	mock.Mock
}

// AddMail provides a mock function with given fields: ctx, ser
func (_m *Mail) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	ret := _m.Called(ctx, ser)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.SendEmailRequest) (int, error)); ok {
		return rf(ctx, ser)
	}

	r0 := ret.Get(0).(int)

	return r0, ret.Error(1)
}

// GetAllUnsent provides a mock function with given fields: ctx, withError
func (_m *Mail) GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error) {
	ret := _m.Called(ctx, withError)

	if rf, ok := ret.Get(0).(func(context.Context, bool) ([]entity.SendEmailRequest, error)); ok {
		return rf(ctx, withError)
	}

	var r0 []entity.SendEmailRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.SendEmailRequest)
	}

	return r0, ret.Error(1)
}

// UpdateSent provides a mock function with given fields: ctx, id
func (_m *Mail) UpdateSent(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, int) error); ok {
		return rf(ctx, id)
	}

	return ret.Error(0)
}

// AddError provides a mock function with given fields: ctx, id, errMsg
func (_m *Mail) AddError(ctx context.Context, id int, errMsg string) error {
	ret := _m.Called(ctx, id, errMsg)

	if rf, ok := ret.Get(0).(func(context.Context, int, string) error); ok {
		return rf(ctx, id, errMsg)
	}

	return ret.Error(0)
}

// NewMail creates a new instance of Mail. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMail(t interface {
	mock.TestingT
	Cleanup(func())
}) *Mail {
	m := &Mail{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
