package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Expenses is a mock type for the Expenses type
type Expenses struct {
	mock.Mock
}

// GetExpensesBetween provides a mock function with given fields: ctx, tr
func (_m *Expenses) GetExpensesBetween(ctx context.Context, tr entity.TimeRange) ([]entity.Expense, error) {
	ret := _m.Called(ctx, tr)

	if rf, ok := ret.Get(0).(func(context.Context, entity.TimeRange) ([]entity.Expense, error)); ok {
		return rf(ctx, tr)
	}

	var r0 []entity.Expense
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.Expense)
	}

	return r0, ret.Error(1)
}

// AddExpense provides a mock function with given fields: ctx, e
func (_m *Expenses) AddExpense(ctx context.Context, e *entity.Expense) (int, error) {
	ret := _m.Called(ctx, e)

	if rf, ok := ret.Get(0).(func(context.Context, *entity.Expense) (int, error)); ok {
		return rf(ctx, e)
	}

	r0 := ret.Get(0).(int)

	return r0, ret.Error(1)
}

// NewExpenses creates a new instance of Expenses. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewExpenses(t interface {
	mock.TestingT
	Cleanup(func())
}) *Expenses {
	m := &Expenses{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
