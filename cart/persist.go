package cart

import (
	"context"
	"encoding/json"
	"time"

	"toyvault/db"
	"toyvault/models"
	"toyvault/rdx"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Persister is the durable-storage port for carts. Implementations must
// round-trip the line-item list losslessly.
type Persister interface {
	Load(ctx context.Context, cartID string) ([]models.LineItem, error)
	Save(ctx context.Context, cartID string, items []models.LineItem) error
}

// MongoPersister keeps one document per cart in the carts collection.
type MongoPersister struct{}

func (MongoPersister) Load(ctx context.Context, cartID string) ([]models.LineItem, error) {
	var doc models.CartDocument
	err := db.CartsCollection.FindOne(ctx, bson.M{"cartid": cartID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

func (MongoPersister) Save(ctx context.Context, cartID string, items []models.LineItem) error {
	doc := models.CartDocument{CartID: cartID, Items: items}
	opts := options.Replace().SetUpsert(true)
	_, err := db.CartsCollection.ReplaceOne(ctx, bson.M{"cartid": cartID}, doc, opts)
	return err
}

// RedisPersister stores the cart as a JSON blob, mirroring the storefront's
// original durable key-value persistence.
type RedisPersister struct {
	TTL time.Duration
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

func (p RedisPersister) Load(ctx context.Context, cartID string) ([]models.LineItem, error) {
	raw, err := rdx.Conn.Get(ctx, cartKey(cartID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (p RedisPersister) Save(ctx context.Context, cartID string, items []models.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	ttl := p.TTL
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}
	return rdx.Conn.Set(ctx, cartKey(cartID), raw, ttl).Err()
}
