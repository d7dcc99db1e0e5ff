package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/cam2cart/internal/dal/postgres"
	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/singleflight"
)

const (
	ordersTable = "orders"

	uniqueViolation = "23505"

	migrateTimeout = 10 * time.Second
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	orderColumns = []string{"id", "order_id", "username", "items", "created_at"}
	returning    = "RETURNING " + strings.Join(orderColumns, ", ")
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	ID        string    `db:"id"`
	OrderID   string    `db:"order_id"`
	Username  string    `db:"username"`
	Items     []byte    `db:"items"`
	CreatedAt time.Time `db:"created_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	items := []order.Item{}
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}

	return &order.Order{
		ID:        o.ID,
		OrderID:   o.OrderID,
		Username:  o.Username,
		Items:     items,
		CreatedAt: o.CreatedAt.UTC(),
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) (*OrderDal, error) {
	items, err := encodeItems(o.Items)
	if err != nil {
		return nil, err
	}

	return &OrderDal{
		ID:        o.ID,
		OrderID:   o.OrderID,
		Username:  o.Username,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}, nil
}

func encodeItems(items []order.Item) ([]byte, error) {
	if items == nil {
		items = []order.Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}

	return data, nil
}

// OrderRepository stores orders in a Postgres table with a JSONB items column.
type OrderRepository struct {
	client *postgres.Client

	schemaGroup singleflight.Group
	schemaReady atomic.Bool
}

// NewOrderRepository creates a new Postgres order repository.
func NewOrderRepository(client *postgres.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// EnsureSchema applies the embedded migrations.
// It is retried before every query until it succeeds, so a database that was
// down at startup gets its tables once it comes up. Concurrent callers share
// one attempt, bounded by migrateTimeout.
func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	if r.schemaReady.Load() {
		return nil
	}

	_, err, _ := r.schemaGroup.Do("migrate", func() (any, error) {
		if r.schemaReady.Load() {
			return nil, nil
		}

		// The attempt is shared, so it must outlive the request that started it.
		migrateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), migrateTimeout)
		defer cancel()

		if err := r.client.Migrate(migrateCtx); err != nil {
			return nil, fmt.Errorf("failed to migrate orders schema: %w", err)
		}
		r.schemaReady.Store(true)

		return nil, nil
	})

	return err
}

// Latest returns the order with the most recent created_at.
func (r *OrderRepository) Latest(ctx context.Context) (*order.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From(ordersTable).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryOne(ctx, query, args, "failed to find latest order")
}

// GetByOrderID returns the order with the given order id.
func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryOne(ctx, query, args, "failed to find order")
}

// Insert stores a new order and returns it with its generated row id.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	o.ID = uuid.NewString()

	dal, err := OrderDalFromModel(&o)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Insert(ordersTable).
		Columns(orderColumns...).
		Values(dal.ID, dal.OrderID, dal.Username, dal.Items, dal.CreatedAt).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := r.queryOne(ctx, query, args, "failed to insert order")
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %v", order.ErrDuplicateOrderID, pgErr)
		}

		return nil, err
	}

	return inserted, nil
}

// Update overwrites the supplied fields of the order with the given order id
// and returns the row as it is after the update.
func (r *OrderRepository) Update(
	ctx context.Context,
	orderID string,
	upd order.UpdateOrder,
) (*order.Order, error) {
	if upd.IsEmpty() {
		return r.GetByOrderID(ctx, orderID)
	}

	set := sq.Eq{}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Items != nil {
		items, err := encodeItems(*upd.Items)
		if err != nil {
			return nil, err
		}
		set["items"] = items
	}

	query, args, err := psql.Update(ordersTable).
		SetMap(set).
		Where(sq.Eq{"order_id": orderID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.queryOne(ctx, query, args, "failed to update order")
}

// Delete removes the order with the given order id and returns it.
func (r *OrderRepository) Delete(ctx context.Context, orderID string) (*order.Order, error) {
	query, args, err := psql.Delete(ordersTable).
		Where(sq.Eq{"order_id": orderID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	return r.queryOne(ctx, query, args, "failed to delete order")
}

func (r *OrderRepository) queryOne(
	ctx context.Context,
	query string,
	args []interface{},
	msg string,
) (*order.Order, error) {
	pool, err := r.client.Pool()
	if err != nil {
		return nil, err
	}

	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	var dal OrderDal
	err = pool.QueryRow(ctx, query, args...).Scan(
		&dal.ID,
		&dal.OrderID,
		&dal.Username,
		&dal.Items,
		&dal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	return dal.ToModel()
}
