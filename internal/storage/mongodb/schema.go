package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// server error code for "collection already exists"
const codeNamespaceExists = 48

// ProductSchema is the $jsonSchema validator of the product collection. It
// repeats the required-field check of the HTTP layer at the storage layer.
var ProductSchema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "price", "quantity", "description"},
		"properties": bson.M{
			"name":        bson.M{"bsonType": "string", "minLength": 1},
			"price":       bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
			"quantity":    bson.M{"bsonType": bson.A{"int", "long", "double"}},
			"description": bson.M{"bsonType": "string", "minLength": 1},
		},
	},
}

// EnsureSchema creates the collection with the product validator, or
// installs the validator on the collection if it already exists.
func EnsureSchema(ctx context.Context, db *mongo.Database, collection string) error {
	opts := options.CreateCollection().SetValidator(ProductSchema)
	err := db.CreateCollection(ctx, collection, opts)
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != codeNamespaceExists {
		return fmt.Errorf("creating collection %s: %w", collection, err)
	}

	cmd := bson.D{
		{Key: "collMod", Value: collection},
		{Key: "validator", Value: ProductSchema},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("updating validator of %s: %w", collection, err)
	}
	return nil
}
