package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/dal/mongodb"
	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const indexTimeout = 5 * time.Second

// ItemDal represents an order item as stored in MongoDB.
type ItemDal struct {
	ID       float64 `bson:"id"`
	Name     string  `bson:"name"`
	Quantity float64 `bson:"quantity"`
	Price    float64 `bson:"price"`
}

// OrderDal represents an order document as stored in MongoDB.
type OrderDal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OrderID   string             `bson:"orderId"`
	Username  string             `bson:"username"`
	Items     []ItemDal          `bson:"items"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	items := make([]order.Item, len(o.Items))
	for i, item := range o.Items {
		items[i] = order.Item{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &order.Order{
		ID:        o.ID.Hex(),
		OrderID:   o.OrderID,
		Username:  o.Username,
		Items:     items,
		CreatedAt: o.CreatedAt.UTC(),
	}
}

// OrderDalFromModel converts service layer Order model to OrderDal.
// The document id is left empty so that it is generated on insert.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		OrderID:   o.OrderID,
		Username:  o.Username,
		Items:     itemsFromModel(o.Items),
		CreatedAt: o.CreatedAt,
	}
}

func itemsFromModel(items []order.Item) []ItemDal {
	result := make([]ItemDal, len(items))
	for i, item := range items {
		result[i] = ItemDal{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return result
}

// OrderRepository stores orders in a MongoDB collection.
type OrderRepository struct {
	client *mongodb.Client

	indexGroup singleflight.Group
	indexReady atomic.Bool
}

// NewOrderRepository creates a new MongoDB order repository.
func NewOrderRepository(client *mongodb.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// EnsureIndexes creates the unique index on orderId.
// It is retried on every insert until it succeeds, so a store that was down
// at startup still gets the index once it comes up. Concurrent callers share
// one attempt, bounded by indexTimeout.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	if r.indexReady.Load() {
		return nil
	}

	_, err, _ := r.indexGroup.Do("orderId_unique", func() (any, error) {
		if r.indexReady.Load() {
			return nil, nil
		}

		coll, err := r.client.Collection()
		if err != nil {
			return nil, err
		}

		// The attempt is shared, so it must outlive the request that started it.
		indexCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
		defer cancel()

		_, err = coll.Indexes().CreateOne(indexCtx, mongo.IndexModel{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("orderId_unique"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create orderId index: %w", err)
		}
		r.indexReady.Store(true)

		return nil, nil
	})

	return err
}

// Latest returns the order with the most recent createdAt.
func (r *OrderRepository) Latest(ctx context.Context) (*order.Order, error) {
	coll, err := r.client.Collection()
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return decodeOne(coll.FindOne(ctx, bson.D{}, opts), "failed to find latest order")
}

// GetByOrderID returns the order with the given orderId.
func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	coll, err := r.client.Collection()
	if err != nil {
		return nil, err
	}

	return decodeOne(coll.FindOne(ctx, byOrderID(orderID)), "failed to find order")
}

// Insert stores a new order and returns it with its generated document id.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	if err := r.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	coll, err := r.client.Collection()
	if err != nil {
		return nil, err
	}

	dal := OrderDalFromModel(&o)
	dal.ID = primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, dal); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", order.ErrDuplicateOrderID, err)
		}

		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return dal.ToModel(), nil
}

// Update overwrites the supplied fields of the order with the given orderId
// and returns the document as it is after the update. It never upserts.
func (r *OrderRepository) Update(
	ctx context.Context,
	orderID string,
	upd order.UpdateOrder,
) (*order.Order, error) {
	if upd.IsEmpty() {
		return r.GetByOrderID(ctx, orderID)
	}

	coll, err := r.client.Collection()
	if err != nil {
		return nil, err
	}

	set := bson.D{}
	if upd.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *upd.Username})
	}
	if upd.Items != nil {
		set = append(set, bson.E{Key: "items", Value: itemsFromModel(*upd.Items)})
	}

	res := coll.FindOneAndUpdate(
		ctx,
		byOrderID(orderID),
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	return decodeOne(res, "failed to update order")
}

// Delete removes the order with the given orderId and returns it.
func (r *OrderRepository) Delete(ctx context.Context, orderID string) (*order.Order, error) {
	coll, err := r.client.Collection()
	if err != nil {
		return nil, err
	}

	return decodeOne(coll.FindOneAndDelete(ctx, byOrderID(orderID)), "failed to delete order")
}

func byOrderID(orderID string) bson.D {
	return bson.D{{Key: "orderId", Value: orderID}}
}

func decodeOne(res *mongo.SingleResult, msg string) (*order.Order, error) {
	var dal OrderDal
	if err := res.Decode(&dal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	return dal.ToModel(), nil
}
