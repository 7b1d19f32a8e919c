package models

import "time"

// OrderItem is a snapshot of a purchased line item, decoupled from the live
// Product so later catalog edits don't alter historical orders.
type OrderItem struct {
	ID       string  `json:"id" bson:"id"`
	Title    string  `json:"title" bson:"title"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Order is the durable record created after a successful payment capture.
type Order struct {
	OrderID       string      `json:"orderId" bson:"orderid"`
	OrderNumber   string      `json:"orderNumber" bson:"ordernumber"`
	Email         string      `json:"email" bson:"email"`
	FullName      string      `json:"fullName" bson:"fullname"`
	Address       string      `json:"address" bson:"address"`
	City          string      `json:"city" bson:"city"`
	State         string      `json:"state" bson:"state"`
	Zip           string      `json:"zip" bson:"zip"`
	Country       string      `json:"country" bson:"country"`
	Items         []OrderItem `json:"items" bson:"items"`
	TotalAmount   string      `json:"totalAmount" bson:"totalamount"`
	Currency      string      `json:"currency" bson:"currency"`
	PayPalOrderID string      `json:"paypalOrderId,omitempty" bson:"paypalorderid,omitempty"`
	PayPalPayerID string      `json:"paypalPayerId,omitempty" bson:"paypalpayerid,omitempty"`
	Status        string      `json:"status" bson:"status"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdat"`
}
