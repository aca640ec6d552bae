// Package mocks provides test doubles for the dataforseo client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	dataforseo "github.com/cosmolaser/content-gap/pkg/dataforseo"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// RankedKeywords provides a mock function with given fields: ctx, domain, limit
func (_m *MockClient) RankedKeywords(ctx context.Context, domain string, limit int) (*dataforseo.Response[dataforseo.RankedKeywordsResult], error) {
	ret := _m.Called(ctx, domain, limit)

	if len(ret) == 0 {
		panic("no return value specified for RankedKeywords")
	}

	var r0 *dataforseo.Response[dataforseo.RankedKeywordsResult]
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) (*dataforseo.Response[dataforseo.RankedKeywordsResult], error)); ok {
		return rf(ctx, domain, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int) *dataforseo.Response[dataforseo.RankedKeywordsResult]); ok {
		r0 = rf(ctx, domain, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*dataforseo.Response[dataforseo.RankedKeywordsResult])
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int) error); ok {
		r1 = rf(ctx, domain, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// KeywordIdeas provides a mock function with given fields: ctx, seeds, limit
func (_m *MockClient) KeywordIdeas(ctx context.Context, seeds []string, limit int) (*dataforseo.Response[dataforseo.KeywordIdeasResult], error) {
	ret := _m.Called(ctx, seeds, limit)

	if len(ret) == 0 {
		panic("no return value specified for KeywordIdeas")
	}

	var r0 *dataforseo.Response[dataforseo.KeywordIdeasResult]
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []string, int) (*dataforseo.Response[dataforseo.KeywordIdeasResult], error)); ok {
		return rf(ctx, seeds, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []string, int) *dataforseo.Response[dataforseo.KeywordIdeasResult]); ok {
		r0 = rf(ctx, seeds, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*dataforseo.Response[dataforseo.KeywordIdeasResult])
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, []string, int) error); ok {
		r1 = rf(ctx, seeds, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CompetitorsDomain provides a mock function with given fields: ctx, domain, limit
func (_m *MockClient) CompetitorsDomain(ctx context.Context, domain string, limit int) (*dataforseo.Response[dataforseo.CompetitorsDomainResult], error) {
	ret := _m.Called(ctx, domain, limit)

	if len(ret) == 0 {
		panic("no return value specified for CompetitorsDomain")
	}

	var r0 *dataforseo.Response[dataforseo.CompetitorsDomainResult]
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) (*dataforseo.Response[dataforseo.CompetitorsDomainResult], error)); ok {
		return rf(ctx, domain, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int) *dataforseo.Response[dataforseo.CompetitorsDomainResult]); ok {
		r0 = rf(ctx, domain, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*dataforseo.Response[dataforseo.CompetitorsDomainResult])
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int) error); ok {
		r1 = rf(ctx, domain, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
