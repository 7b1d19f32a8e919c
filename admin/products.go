package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"toyvault/catalog"
	"toyvault/db"
	"toyvault/models"
	"toyvault/shopify"
	"toyvault/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handler carries the Shopify relay used to mirror catalog writes.
type Handler struct {
	Shopify *shopify.Client
}

func NewHandler(relay *shopify.Client) *Handler {
	return &Handler{Shopify: relay}
}

func relayPayload(p models.Product) shopify.ProductPayload {
	return shopify.ProductPayload{
		ID:       p.ShopifyID,
		Title:    p.Title,
		BodyHTML: p.Description,
		Handle:   p.Handle,
		Tags:     strings.Join(p.Category, ", "),
		Status:   "active",
	}
}

// relayCreate mirrors the new product to Shopify and returns its Shopify ID,
// 0 when the relay is off or the call failed.
func (h *Handler) relayCreate(ctx context.Context, p models.Product) int64 {
	if h.Shopify == nil || !h.Shopify.Enabled() {
		return 0
	}
	id, err := h.Shopify.CreateProduct(ctx, relayPayload(p))
	if err != nil {
		log.Println("shopify relay create failed:", err)
		return 0
	}
	return id
}

func (h *Handler) relayUpdate(ctx context.Context, p models.Product) {
	if h.Shopify == nil || !h.Shopify.Enabled() || p.ShopifyID == 0 {
		return
	}
	if err := h.Shopify.UpdateProduct(ctx, relayPayload(p)); err != nil {
		log.Println("shopify relay update failed:", err)
	}
}

func (h *Handler) relayDelete(ctx context.Context, shopifyID int64) {
	if h.Shopify == nil || !h.Shopify.Enabled() || shopifyID == 0 {
		return
	}
	if err := h.Shopify.DeleteProduct(ctx, shopifyID); err != nil {
		log.Println("shopify relay delete failed:", err)
	}
}

// CreateProduct adds a product to the local catalog and mirrors it to
// Shopify when the relay is configured. Relay failures do not block the
// local write.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if p.Title == "" || p.Handle == "" || p.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, handle and a positive price are required")
		return
	}
	p.ProductID = uuid.NewString()

	p.ShopifyID = h.relayCreate(ctx, p)

	if _, err := db.ProductsCollection.InsertOne(ctx, p); err != nil {
		log.Println("CreateProduct insert error:", err)
		http.Error(w, "Could not create product", http.StatusInternalServerError)
		return
	}

	catalog.InvalidateCache(p.Handle)

	utils.RespondWithJSON(w, http.StatusCreated, p)
}

// UpdateProduct replaces mutable product fields.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if p.Title != "" {
		update["title"] = p.Title
	}
	if p.Description != "" {
		update["description"] = p.Description
	}
	if p.Price > 0 {
		update["price"] = p.Price
	}
	if p.Category != nil {
		update["category"] = p.Category
	}
	if p.AgeRange != nil {
		update["ageRange"] = p.AgeRange
	}
	update["inStock"] = p.InStock

	res := db.ProductsCollection.FindOneAndUpdate(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Product
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	h.relayUpdate(ctx, updated)
	catalog.InvalidateCache(updated.Handle)
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes the product from the local catalog.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var existing models.Product
	if err := db.ProductsCollection.FindOneAndDelete(ctx, bson.M{"productid": productID}).Decode(&existing); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	h.relayDelete(ctx, existing.ShopifyID)
	catalog.InvalidateCache(existing.Handle)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": true})
}
