package mongorepo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/dal/mongodb"
	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startMongo(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		require.NoError(t, container.Terminate(terminateCtx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, mappedPort.Port())
}

func newTestRepository(t *testing.T) *OrderRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	client := mongodb.NewClientWithConfig(ctx, mongodb.Config{
		URI:        startMongo(ctx, t),
		Database:   "cam2cart_test",
		Collection: "orders",
	})
	t.Cleanup(func() {
		_ = client.Close(context.Background())
	})
	require.NoError(t, client.Ping(ctx))

	return NewOrderRepository(client)
}

func newOrder(orderID string, createdAt time.Time) order.Order {
	return order.Order{
		OrderID:   orderID,
		Username:  "alice",
		Items:     []order.Item{{ID: 1, Name: "Apple", Quantity: 2, Price: 1.25}},
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
	}
}

func TestOrderRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, order.ErrNotFound)

	first, err := repo.Insert(ctx, newOrder("ORD-1", base))
	require.NoError(t, err)
	assert.Len(t, first.ID, 24)

	_, err = repo.Insert(ctx, newOrder("ORD-2", base.Add(time.Minute)))
	require.NoError(t, err)

	t.Run("duplicate orderId is rejected", func(t *testing.T) {
		_, err := repo.Insert(ctx, newOrder("ORD-1", base))
		require.ErrorIs(t, err, order.ErrDuplicateOrderID)
	})

	t.Run("latest sorts by createdAt", func(t *testing.T) {
		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ORD-2", latest.OrderID)
	})

	t.Run("get by orderId round-trips fields", func(t *testing.T) {
		got, err := repo.GetByOrderID(ctx, "ORD-1")
		require.NoError(t, err)
		assert.Equal(t, first, got)

		_, err = repo.GetByOrderID(ctx, "missing")
		require.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("update overwrites supplied fields only", func(t *testing.T) {
		name := "bob"
		updated, err := repo.Update(ctx, "ORD-1", order.UpdateOrder{Username: &name})
		require.NoError(t, err)
		assert.Equal(t, "bob", updated.Username)
		assert.Equal(t, first.Items, updated.Items)
		assert.Equal(t, first.CreatedAt, updated.CreatedAt)

		items := []order.Item{}
		updated, err = repo.Update(ctx, "ORD-1", order.UpdateOrder{Items: &items})
		require.NoError(t, err)
		assert.Empty(t, updated.Items)
		assert.Equal(t, "bob", updated.Username)
	})

	t.Run("update never upserts", func(t *testing.T) {
		name := "ghost"
		_, err := repo.Update(ctx, "ORD-404", order.UpdateOrder{Username: &name})
		require.ErrorIs(t, err, order.ErrNotFound)

		_, err = repo.GetByOrderID(ctx, "ORD-404")
		require.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("delete reports not found the second time", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "ORD-2")
		require.NoError(t, err)
		assert.Equal(t, "ORD-2", deleted.OrderID)

		_, err = repo.Delete(ctx, "ORD-2")
		require.ErrorIs(t, err, order.ErrNotFound)
	})
}

func TestOrderRepository_UnreachableStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := mongodb.NewClientWithConfig(ctx, mongodb.Config{URI: "not-a-mongo-uri"})
	repo := NewOrderRepository(client)

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, order.ErrStoreUnavailable)
	_, err = repo.Insert(ctx, newOrder("ORD-1", time.Now()))
	require.ErrorIs(t, err, order.ErrStoreUnavailable)
}

func TestOrderRepository_IndexAttemptIsSharedAndBounded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow MongoDB outage test in short mode")
	}

	ctx := context.Background()

	// Nothing listens on port 1, and server selection would wait far longer
	// than indexTimeout.
	client := mongodb.NewClientWithConfig(ctx, mongodb.Config{
		URI:        "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=60000&connectTimeoutMS=500",
		Database:   "cam2cart_test",
		Collection: "orders",
	})
	t.Cleanup(func() {
		_ = client.Close(context.Background())
	})
	repo := NewOrderRepository(client)

	start := time.Now()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.EnsureIndexes(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
	}
	assert.Less(t, time.Since(start), 2*indexTimeout)
	assert.False(t, repo.indexReady.Load())
}
