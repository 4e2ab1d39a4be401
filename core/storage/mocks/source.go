package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// Source is a mock implementation of storage.ObjectSource
type Source struct {
	mock.Mock
}

func (m *Source) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Source) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if body, ok := args.Get(0).(io.ReadCloser); ok {
		return body, args.Error(1)
	}
	return nil, args.Error(1)
}
