package mongodb

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestOpenRequiresCredentials(t *testing.T) {
	_, err := Open(context.Background(), config.MongoConfig{Host: "localhost", Port: "27017"}, hclog.NewNullLogger())
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
}

func TestConnectionLifecycle(t *testing.T) {
	// mongo.Connect does not dial until the first operation
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)

	conn := NewConnection(client, "inventory", hclog.NewNullLogger())

	assert.Equal(t, "inventory", conn.Database().Name())
	assert.Equal(t, "products", conn.Collection("products").Name())

	assert.NoError(t, conn.Close(context.Background()))
	// second close is a no-op
	assert.NoError(t, conn.Close(context.Background()))
}
