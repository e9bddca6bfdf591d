// Package testing provides mocks and fakes shared by the package tests.
package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/runvoy/sitedeploy/internal/storage"
)

// MockStorage mocks storage.Storage.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

// NewMockStorage creates a MockStorage whose expectations are asserted when the test ends.
func NewMockStorage(t *testing.T) *MockStorage {
	m := &MockStorage{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStorage) Preflight(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CreateBucket(ctx context.Context, bucket, region string) error {
	args := m.Called(ctx, bucket, region)
	return args.Error(0)
}

func (m *MockStorage) ConfigureWebsite(ctx context.Context, bucket, indexDocument, errorDocument string) error {
	args := m.Called(ctx, bucket, indexDocument, errorDocument)
	return args.Error(0)
}

func (m *MockStorage) DisablePublicAccessBlock(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *MockStorage) PutBucketPolicy(ctx context.Context, bucket string, policy []byte) error {
	args := m.Called(ctx, bucket, policy)
	return args.Error(0)
}

func (m *MockStorage) Sync(ctx context.Context, dir, bucket string) (*storage.SyncResult, error) {
	args := m.Called(ctx, dir, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.SyncResult), args.Error(1)
}

func (m *MockStorage) ForceDeleteBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

// MockBuilder mocks the deployer's Builder.
type MockBuilder struct {
	mock.Mock
}

// NewMockBuilder creates a MockBuilder whose expectations are asserted when the test ends.
func NewMockBuilder(t *testing.T) *MockBuilder {
	m := &MockBuilder{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBuilder) Preflight(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBuilder) Build(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBuilder) OutputDir() string {
	args := m.Called()
	return args.String(0)
}
