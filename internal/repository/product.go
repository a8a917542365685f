package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository is the persistence capability behind the product service.
// FindAndUpdate and FindAndRemove return domain.ErrProductNotFound when no
// product has the given id, including ids that are not valid for the store.
// Any other failure wraps domain.ErrPersistence.
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindAndUpdate(ctx context.Context, id string, patch domain.ProductInput) (*domain.Product, error)
	FindAndRemove(ctx context.Context, id string) (*domain.Product, error)
}

type memoryProductRepository struct {
	products []*domain.Product
	mutex    sync.RWMutex
}

// NewMemoryProductRepository returns an in-process store. Identifiers have
// the same format as the ones generated by MongoDB.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{
		products: []*domain.Product{},
	}
}

func (r *memoryProductRepository) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := checkRequired(product); err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *product
	stored.ID = primitive.NewObjectID().Hex()
	r.products = append(r.products, &stored)

	result := stored
	return &result, nil
}

func (r *memoryProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		product := *p
		products = append(products, &product)
	}
	return products, nil
}

func (r *memoryProductRepository) FindAndUpdate(ctx context.Context, id string, patch domain.ProductInput) (*domain.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			updated := *p
			patch.Apply(&updated)
			if err := checkRequired(&updated); err != nil {
				return nil, err
			}
			r.products[i] = &updated

			result := updated
			return &result, nil
		}
	}

	return nil, domain.ErrProductNotFound
}

func (r *memoryProductRepository) FindAndRemove(ctx context.Context, id string) (*domain.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, product := range r.products {
		if product.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return product, nil
		}
	}

	return nil, domain.ErrProductNotFound
}

// checkRequired mirrors the collection validator of the Mongo store.
func checkRequired(p *domain.Product) error {
	if p.Name == "" || p.Description == "" {
		return fmt.Errorf("%w: document failed validation", domain.ErrPersistence)
	}
	return nil
}
