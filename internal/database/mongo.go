// Package database dials the service's backing stores. Connectors
// take a caller-bounded context and return wrapped errors; logging is
// left to the caller.
package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo dials the user store and verifies the connection with
// a ping before handing it out.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Database, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to user store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping user store: %w", err)
	}
	return client.Database(dbName), client, nil
}
