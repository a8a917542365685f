package repository

import (
	"context"
	"testing"

	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func pen() *domain.Product {
	return &domain.Product{Name: "Pen", Price: 1.5, Quantity: 10, Description: "blue pen"}
}

func TestMemoryInsertAndFindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	created, err := repo.Insert(ctx, pen())
	require.NoError(t, err)
	assert.True(t, primitive.IsValidObjectID(created.ID))

	products, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created, products[0])
}

func TestMemoryInsertRejectsIncompleteDocuments(t *testing.T) {
	repo := NewMemoryProductRepository()

	_, err := repo.Insert(context.Background(), &domain.Product{Name: "Pen"})

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestMemoryFindAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	created, err := repo.Insert(ctx, pen())
	require.NoError(t, err)

	price := 2.0
	updated, err := repo.FindAndUpdate(ctx, created.ID, domain.ProductInput{Price: &price})
	require.NoError(t, err)

	expected := *created
	expected.Price = 2
	assert.Equal(t, &expected, updated)

	// returned values are copies
	updated.Name = "changed"
	products, _ := repo.FindAll(ctx)
	assert.Equal(t, "Pen", products[0].Name)
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	_, err := repo.Insert(ctx, pen())
	require.NoError(t, err)

	testCases := []struct {
		name string
		id   string
	}{
		{"Unknown id", primitive.NewObjectID().Hex()},
		{"Malformed id", "not-an-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.FindAndUpdate(ctx, tc.id, domain.ProductInput{})
			assert.ErrorIs(t, err, domain.ErrProductNotFound)

			_, err = repo.FindAndRemove(ctx, tc.id)
			assert.ErrorIs(t, err, domain.ErrProductNotFound)
		})
	}

	products, _ := repo.FindAll(ctx)
	assert.Len(t, products, 1)
}

func TestMemoryFindAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	first, _ := repo.Insert(ctx, pen())
	second, _ := repo.Insert(ctx, pen())

	removed, err := repo.FindAndRemove(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, removed)

	products, _ := repo.FindAll(ctx)
	require.Len(t, products, 1)
	assert.Equal(t, second.ID, products[0].ID)

	_, err = repo.FindAndRemove(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
