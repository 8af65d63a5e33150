package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// Analytics is a mock type for the Analytics type
type Analytics struct {
	mock.Mock
}

// GetAnalytics provides a mock function with given fields: ctx, days
func (_m *Analytics) GetAnalytics(ctx context.Context, days int) (*entity.AnalyticsData, error) {
	ret := _m.Called(ctx, days)

	if rf, ok := ret.Get(0).(func(context.Context, int) (*entity.AnalyticsData, error)); ok {
		return rf(ctx, days)
	}

	var r0 *entity.AnalyticsData
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.AnalyticsData)
	}

	return r0, ret.Error(1)
}

// NewAnalytics creates a new instance of Analytics. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAnalytics(t interface {
	mock.TestingT
	Cleanup(func())
}) *Analytics {
	m := &Analytics{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
