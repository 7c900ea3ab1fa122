//go:build integration

// Package testutil starts the MongoDB testcontainer shared by the integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is the server image used unless BBS_TEST_MONGO_IMAGE overrides it.
const DefaultMongoImage = "mongo:7.0"

// MongoDBContainer wraps a MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

var (
	sharedContainer    *MongoDBContainer
	sharedContainerErr error
	sharedOnce         sync.Once
	sharedMu           sync.RWMutex
)

// SetupMongoDB starts a dedicated MongoDB container. Prefer the shared container
// from SetupTestMainWithMongoDB when a package runs several integration tests.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := os.Getenv("BBS_TEST_MONGO_IMAGE")
	if image == "" {
		image = DefaultMongoImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start %s container: %w", image, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("container connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the MongoDB container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate container: %w", err)
	}
	return nil
}

// GetSharedMongoDB starts the package-wide container on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		c, err := SetupMongoDB(ctx)
		sharedMu.Lock()
		sharedContainer, sharedContainerErr = c, err
		sharedMu.Unlock()
	})

	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return sharedContainer, sharedContainerErr
}

// SetupTestMainWithMongoDB runs m against a shared container and terminates it afterwards.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if err := sharedContainer.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: shared MongoDB container left running: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the shared container. It panics before
// SetupTestMainWithMongoDB has started one.
func GetSharedContainerURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()

	if sharedContainer == nil {
		panic("testutil: shared MongoDB container not started")
	}
	return sharedContainer.URI
}
