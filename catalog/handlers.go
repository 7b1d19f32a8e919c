package catalog

import (
	"context"
	"log"
	"net/http"
	"time"

	"toyvault/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProducts lists products, optionally filtered by ?category=, ?age= and ?q=.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := Query{
		Category: r.URL.Query().Get("category"),
		Age:      r.URL.Query().Get("age"),
		Search:   r.URL.Query().Get("q"),
	}

	products, err := ListProducts(ctx, q)
	if err != nil {
		log.Println("GetProducts error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products})
}

// GetProductByHandle returns one product, 404 when the handle is unknown.
func GetProductByHandle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	p, err := GetProduct(ctx, ps.ByName("handle"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Println("GetProductByHandle error:", err)
		http.Error(w, "Could not retrieve product", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, p)
}
