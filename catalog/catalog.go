package catalog

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"toyvault/db"
	"toyvault/models"
	"toyvault/rdx"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const cacheTTL = 5 * time.Minute

var group singleflight.Group

// Query narrows a product listing. Empty fields match everything.
type Query struct {
	Category string
	Age      string
	Search   string
}

func (q Query) filter() bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Age != "" {
		filter["ageRange"] = q.Age
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": re}},
			{"description": bson.M{"$regex": re}},
		}
	}
	return filter
}

func (q Query) cacheKey() string {
	return "products:" + q.Category + ":" + q.Age + ":" + q.Search
}

// ListProducts returns products matching the query, reading through the
// Redis cache. Concurrent misses for the same key collapse to one Mongo
// round trip.
func ListProducts(ctx context.Context, q Query) ([]models.Product, error) {
	key := q.cacheKey()
	if cached := rdx.Get(key); cached != "" {
		var products []models.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
	}

	v, err, _ := group.Do(key, func() (interface{}, error) {
		// The flight is shared by every concurrent caller, so it must not
		// die with the first caller's context.
		fctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		products, err := fetchProducts(fctx, q.filter())
		if err != nil {
			return nil, err
		}
		if blob, err := json.Marshal(products); err == nil {
			rdx.SetWithExpiry(key, string(blob), cacheTTL)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}

var fetchProducts = queryProducts

func queryProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cur, err := db.ProductsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"title": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct fetches one product by its URL handle.
func GetProduct(ctx context.Context, handle string) (models.Product, error) {
	key := "product:" + handle
	if cached := rdx.Get(key); cached != "" {
		var p models.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return p, nil
		}
	}

	var p models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"handle": handle}).Decode(&p); err != nil {
		return models.Product{}, err
	}
	if blob, err := json.Marshal(p); err == nil {
		rdx.SetWithExpiry(key, string(blob), cacheTTL)
	}
	return p, nil
}

// InvalidateCache drops cached listings plus the given product entries.
// Admin writes call this so storefront reads see the change.
func InvalidateCache(handles ...string) {
	rdx.DelPrefix("products:")
	for _, h := range handles {
		rdx.Del("product:" + h)
	}
}
