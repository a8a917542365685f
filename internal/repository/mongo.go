package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored shape of a product
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	Description string             `bson:"description"`
}

func (d productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Description: d.Description,
	}
}

type mongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(coll *mongo.Collection) ProductRepository {
	return &mongoProductRepository{coll: coll}
}

func (r *mongoProductRepository) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	doc := productDocument{
		ID:          primitive.NewObjectID(),
		Name:        product.Name,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Description: product.Description,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, persistenceError("inserting product", err)
	}
	return doc.toDomain(), nil
}

func (r *mongoProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, persistenceError("finding products", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceError("decoding products", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (r *mongoProductRepository) FindAndUpdate(ctx context.Context, id string, patch domain.ProductInput) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// malformed ids cannot match anything
		return nil, domain.ErrProductNotFound
	}
	filter := bson.M{"_id": oid}

	var res *mongo.SingleResult
	if patch.IsEmpty() {
		res = r.coll.FindOne(ctx, filter)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		res = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": setFields(patch)}, opts)
	}

	return decodeSingle(res, "updating product")
}

func (r *mongoProductRepository) FindAndRemove(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	return decodeSingle(r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}), "deleting product")
}

// setFields builds the $set document from the supplied fields only
func setFields(patch domain.ProductInput) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	return set
}

func decodeSingle(res *mongo.SingleResult, op string) (*domain.Product, error) {
	var doc productDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, persistenceError(op, err)
	}
	return doc.toDomain(), nil
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}
