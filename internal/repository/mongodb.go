// Package repository stores rate cards, saved schedules and audit logs in MongoDB.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	RateCardsCollection = "rate_cards"
	SchedulesCollection = "schedules"
	LogsCollection      = "logs"
)

// logsTTLIndex is the name MongoDB derives for the ascending timestamp index.
const logsTTLIndex = "timestamp_1"

const healthCheckTimeout = 2 * time.Second

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression negotiates zstd, snappy or zlib wire compression.
	EnableCompression bool
}

// DefaultMongoConfig returns the pool settings used by the service. Saved schedules can be
// large documents, so sockets get a generous timeout.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and database access.
type MongoDB struct {
	Client    *mongo.Client
	Database  *mongo.Database
	RateCards *mongo.Collection
	Schedules *mongo.Collection
	Logs      *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and creates the collection indexes. The client is
// disconnected again if any step fails.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:    client,
		Database:  db,
		RateCards: db.Collection(RateCardsCollection),
		Schedules: db.Collection(SchedulesCollection),
		Logs:      db.Collection(LogsCollection),
	}
	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *MongoDB) collectionIndexes() map[*mongo.Collection][]mongo.IndexModel {
	return map[*mongo.Collection][]mongo.IndexModel{
		m.RateCards: {
			{Keys: bson.D{{Key: "active", Value: 1}}},
			{Keys: bson.D{{Key: "version", Value: -1}}, Options: options.Index().SetUnique(true)},
		},
		m.Schedules: {
			{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "project.name", Value: 1}}},
		},
		// The timestamp TTL index is owned by SetLogsTTL.
		m.Logs: {
			{Keys: bson.D{{Key: "request_id", Value: 1}}},
			{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
	}
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	for coll, models := range m.collectionIndexes() {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll.Name(), err)
		}
	}
	return nil
}

// SetLogsTTL replaces the expiry index on log timestamps. A ttl under one second keeps logs
// forever.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	_, _ = m.Logs.Indexes().DropOne(ctx, logsTTLIndex)

	seconds := int32(ttl / time.Second)
	if seconds <= 0 {
		return nil
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndex).SetExpireAfterSeconds(seconds),
	})
	if err != nil {
		return fmt.Errorf("create logs ttl index: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server, giving up after two seconds.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
