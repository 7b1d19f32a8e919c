package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"toyvault/models"
	"toyvault/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the cart store over HTTP. The cart is identified by the
// authenticated user or the anonymous X-Cart-ID header.
type Handler struct {
	Manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{Manager: m}
}

func cartResponse(s *Store) utils.M {
	return utils.M{
		"items": s.Items(),
		"total": s.Total(),
	}
}

// AddToCart merges the posted line item into the cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cartID := utils.GetCartIDFromRequest(r)
	if cartID == "" {
		http.Error(w, "Missing cart identity", http.StatusBadRequest)
		return
	}

	var item models.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if item.Key == "" || item.Title == "" || item.Price <= 0 || item.Quantity <= 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}
	if item.ProductID == "" {
		item.ProductID = item.Key
	}

	s := h.Manager.AddItem(ctx, cartID, item)
	utils.RespondWithJSON(w, http.StatusCreated, cartResponse(s))
}

// GetCart returns the ordered line items and the derived total.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cartID := utils.GetCartIDFromRequest(r)
	if cartID == "" {
		http.Error(w, "Missing cart identity", http.StatusBadRequest)
		return
	}

	s := h.Manager.Get(ctx, cartID)
	utils.RespondWithJSON(w, http.StatusOK, cartResponse(s))
}

// UpdateQuantity sets the quantity for one line; zero or less removes it.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cartID := utils.GetCartIDFromRequest(r)
	if cartID == "" {
		http.Error(w, "Missing cart identity", http.StatusBadRequest)
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateQuantity decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	s := h.Manager.UpdateQuantity(ctx, cartID, ps.ByName("key"), payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, cartResponse(s))
}

// RemoveItem deletes one line from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cartID := utils.GetCartIDFromRequest(r)
	if cartID == "" {
		http.Error(w, "Missing cart identity", http.StatusBadRequest)
		return
	}

	s := h.Manager.RemoveItem(ctx, cartID, ps.ByName("key"))
	utils.RespondWithJSON(w, http.StatusOK, cartResponse(s))
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cartID := utils.GetCartIDFromRequest(r)
	if cartID == "" {
		http.Error(w, "Missing cart identity", http.StatusBadRequest)
		return
	}

	s := h.Manager.Clear(ctx, cartID)
	utils.RespondWithJSON(w, http.StatusOK, cartResponse(s))
}
