package orders

import (
	"context"
	"time"

	"toyvault/db"
	"toyvault/models"
	"toyvault/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MongoWriter persists order records; it satisfies pay.OrderWriter.
type MongoWriter struct{}

// Create inserts the order with a generated ID and human-readable order
// number, returning the stored record.
func (MongoWriter) Create(ctx context.Context, order models.Order) (models.Order, error) {
	order.OrderID = uuid.NewString()
	order.OrderNumber = utils.NewOrderNumber()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.Status == "" {
		order.Status = "completed"
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func findByNumber(ctx context.Context, orderNumber string) (models.Order, error) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"ordernumber": orderNumber}).Decode(&order)
	return order, err
}
