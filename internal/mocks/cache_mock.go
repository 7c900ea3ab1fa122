// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/service/cache"
	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

// NewMockCache creates a MockCache that asserts its expectations when the test ends.
func NewMockCache(t testingT) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCache) Get(key cache.Key) (*model.Schedule, bool) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.Schedule), args.Bool(1)
}

func (m *MockCache) Set(key cache.Key, value *model.Schedule) {
	m.Called(key, value)
}

func (m *MockCache) Invalidate(key cache.Key) {
	m.Called(key)
}

func (m *MockCache) Clear() {
	m.Called()
}

func (m *MockCache) Stop() {
	m.Called()
}
