package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Lllllllleong/fileupload/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo connect: empty URI")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoMetadataStore records upload metadata in a MongoDB database.
// Documents get a driver-generated ObjectID.
type MongoMetadataStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoMetadataStore(client *mongo.Client, database string) *MongoMetadataStore {
	return &MongoMetadataStore{client: client, db: client.Database(database)}
}

func (s *MongoMetadataStore) AddRecord(ctx context.Context, collection string, rec models.UploadRecord) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("mongo insert into %s: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (s *MongoMetadataStore) Close() error {
	return s.client.Disconnect(context.Background())
}
