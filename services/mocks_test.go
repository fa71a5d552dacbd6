package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront-service/models"
)

// --- Mocks for Dependencies ---

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccount(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetCart(ctx context.Context, email string) (models.Cart, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *MockCartRepository) ReplaceCart(ctx context.Context, email string, c models.Cart) error {
	args := m.Called(ctx, email, c)
	return args.Error(0)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogRepository) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
