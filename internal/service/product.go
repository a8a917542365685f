package service

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/events"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/repository"
)

type ProductService interface {
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	GetProducts(ctx context.Context) (Products, error)
	UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (*domain.Product, error)
}

type productService struct {
	repo     repository.ProductRepository
	eventBus *events.EventBus[any]
	logger   hclog.Logger
}

type Products []*domain.Product

func NewProductService(
	repo repository.ProductRepository,
	eventBus *events.EventBus[any],
	logger hclog.Logger) ProductService {
	return &productService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateProduct stores a new product built from a validated input.
func (s *productService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product := input.Product()
	s.logger.Debug("Adding new product", "name", product.Name)

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.logger.Error("Unable to add product", "name", product.Name, "error", err)
		return nil, err
	}

	s.eventBus.Publish(events.ProductAdded{ProductID: created.ID})
	return created, nil
}

// GetProducts returns every stored product in storage order. An empty store
// yields an empty, non-nil slice.
func (s *productService) GetProducts(ctx context.Context) (Products, error) {
	s.logger.Debug("Getting all products")

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Unable to get products", "error", err)
		return nil, err
	}
	if products == nil {
		products = Products{}
	}

	return products, nil
}

// UpdateProduct overwrites the supplied fields and returns the updated product.
func (s *productService) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	s.logger.Debug("Updating product", "id", id)

	updated, err := s.repo.FindAndUpdate(ctx, id, input)
	if err != nil {
		s.logError("Unable to update product", id, err)
		return nil, err
	}

	s.eventBus.Publish(events.ProductUpdated{ProductID: updated.ID})
	return updated, nil
}

// DeleteProduct removes the product and returns it as it was before removal.
func (s *productService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.logger.Debug("Deleting product", "id", id)

	deleted, err := s.repo.FindAndRemove(ctx, id)
	if err != nil {
		s.logError("Unable to delete product", id, err)
		return nil, err
	}

	s.eventBus.Publish(events.ProductDeleted{ProductID: deleted.ID})
	return deleted, nil
}

func (s *productService) logError(msg, id string, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		s.logger.Debug(msg, "id", id, "error", err)
		return
	}
	s.logger.Error(msg, "id", id, "error", err)
}
