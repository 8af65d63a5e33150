package mocks

import (
	"context"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	mock "github.com/stretchr/testify/mock"
)

// AnalyticsCache is a mock type for the AnalyticsCache type
type AnalyticsCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, days
func (_m *AnalyticsCache) Get(ctx context.Context, days int) (*entity.AnalyticsData, bool, error) {
	ret := _m.Called(ctx, days)

	if rf, ok := ret.Get(0).(func(context.Context, int) (*entity.AnalyticsData, bool, error)); ok {
		return rf(ctx, days)
	}

	var r0 *entity.AnalyticsData
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.AnalyticsData)
	}
	r1 := ret.Bool(1)

	return r0, r1, ret.Error(2)
}

// Set provides a mock function with given fields: ctx, days, data
func (_m *AnalyticsCache) Set(ctx context.Context, days int, data *entity.AnalyticsData) error {
	ret := _m.Called(ctx, days, data)

	if rf, ok := ret.Get(0).(func(context.Context, int, *entity.AnalyticsData) error); ok {
		return rf(ctx, days, data)
	}

	return ret.Error(0)
}

// Close provides a mock function with given fields:
func (_m *AnalyticsCache) Close() error {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() error); ok {
		return rf()
	}

	return ret.Error(0)
}

// NewAnalyticsCache creates a new instance of AnalyticsCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAnalyticsCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *AnalyticsCache {
	m := &AnalyticsCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
