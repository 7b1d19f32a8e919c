package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection    *mongo.Collection
	CartsCollection       *mongo.Collection
	OrdersCollection      *mongo.Collection
	ContentCollection     *mongo.Collection
	UserCollection        *mongo.Collection
	IdempotencyCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("toyvault")
	ProductsCollection = database.Collection("products")
	CartsCollection = database.Collection("carts")
	OrdersCollection = database.Collection("orders")
	ContentCollection = database.Collection("content")
	UserCollection = database.Collection("users")
	IdempotencyCollection = database.Collection("idempotency")
}
