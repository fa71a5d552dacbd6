package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"storefront-service/models"
)

// FileCatalog serves the product list from a static JSON file. The file is
// re-read on every call so edits show up without a restart.
type FileCatalog struct {
	path     string
	validate *validator.Validate
}

func NewFileCatalog(path string) *FileCatalog {
	v := validator.New()
	// Compare prices numerically in validate tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &FileCatalog{path: path, validate: v}
}

func (c *FileCatalog) ListProducts(_ context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", c.path, err)
	}

	products := []models.Product{}
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", c.path, err)
	}

	seen := make(map[int]struct{}, len(products))
	for i := range products {
		if err := c.validate.Struct(products[i]); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
		if _, dup := seen[products[i].ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", products[i].ID)
		}
		seen[products[i].ID] = struct{}{}
	}
	return products, nil
}

func (c *FileCatalog) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
