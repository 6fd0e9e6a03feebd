package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
	"github.com/labelgrid/labelgrid/internal/sqs"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of repository.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Resource), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (repository.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Resource), args.Error(1)
}

func (m *MockRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, query repository.Query) ([]repository.Resource, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Resource), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, resource repository.Resource) (repository.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Resource), args.Error(1)
}

func (m *MockRepository) WithinTransaction(ctx context.Context, fn func(repo repository.Repository) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockTxStore is a mock implementation of service.ProductTxStore
type MockTxStore struct {
	mock.Mock
}

func (m *MockTxStore) CreateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error) {
	args := m.Called(ctx, product, event)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	// Returning nil from the expectation echoes the stored product back.
	if args.Get(0) == nil {
		return product, nil
	}
	return args.Get(0).(*model.Product), nil
}

func (m *MockTxStore) UpdateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error) {
	args := m.Called(ctx, product, event)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return product, nil
	}
	return args.Get(0).(*model.Product), nil
}

func (m *MockTxStore) DeleteProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) error {
	args := m.Called(ctx, product, event)
	return args.Error(0)
}

// MockEventStatusUpdater is a mock implementation of repository.EventStatusUpdater
type MockEventStatusUpdater struct {
	mock.Mock
}

func (m *MockEventStatusUpdater) UpdateStatus(ctx context.Context, eventID uuid.UUID, status model.EventStatus) error {
	args := m.Called(ctx, eventID, status)
	return args.Error(0)
}

// MockPublisher is a mock implementation of service.CatalogPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCatalogMessage(ctx context.Context, msg sqs.CatalogMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
