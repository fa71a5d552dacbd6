package services

import (
	"context"
	"fmt"

	"storefront-service/models"
	"storefront-service/repository"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type catalogServiceImpl struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogServiceImpl{repo: repo}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
