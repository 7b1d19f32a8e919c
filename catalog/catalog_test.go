package catalog

import (
	"context"
	"testing"

	"toyvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQueryFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, Query{}.filter())
}

func TestQueryFilterFields(t *testing.T) {
	f := Query{Category: "stem", Age: "6-8", Search: "dino"}.filter()

	assert.Equal(t, "stem", f["category"])
	assert.Equal(t, "6-8", f["ageRange"])

	re := primitive.Regex{Pattern: "dino", Options: "i"}
	assert.Equal(t, []bson.M{
		{"title": bson.M{"$regex": re}},
		{"description": bson.M{"$regex": re}},
	}, f["$or"])
}

func TestQueryFilterEscapesRegexMeta(t *testing.T) {
	f := Query{Search: "connect (4)"}.filter()

	or := f["$or"].([]bson.M)
	re := or[0]["title"].(bson.M)["$regex"].(primitive.Regex)
	assert.Equal(t, `connect \(4\)`, re.Pattern)
}

func TestListProductsFlightOutlivesCancelledCaller(t *testing.T) {
	orig := fetchProducts
	defer func() { fetchProducts = orig }()

	var flightErr error
	fetchProducts = func(ctx context.Context, _ bson.M) ([]models.Product, error) {
		flightErr = ctx.Err()
		return []models.Product{{Handle: "magna-tiles", Title: "Magna-Tiles"}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	products, err := ListProducts(ctx, Query{Search: "magna"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	// The shared flight runs on its own context, not the dead caller's.
	assert.NoError(t, flightErr)
}

func TestQueryCacheKeyDistinguishesFilters(t *testing.T) {
	keys := map[string]bool{
		Query{}.cacheKey():                 true,
		Query{Category: "stem"}.cacheKey(): true,
		Query{Age: "stem"}.cacheKey():      true,
		Query{Search: "lego"}.cacheKey():   true,
		Query{Category: "lego"}.cacheKey(): true,
	}
	assert.Len(t, keys, 5)
}
