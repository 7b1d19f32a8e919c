package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"toyvault/models"
	"toyvault/pay"
	"toyvault/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the checkout flow over HTTP.
type Handler struct {
	Orchestrator *Orchestrator
}

func NewHandler(o *Orchestrator) *Handler {
	return &Handler{Orchestrator: o}
}

// StartCheckout creates a session for the current cart. An empty cart is a
// 409 with no session created.
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cartID := utils.GetCartIDFromRequest(r)
	if cartID == "" {
		http.Error(w, "Missing cart identity", http.StatusBadRequest)
		return
	}

	s, err := h.Orchestrator.Begin(ctx, cartID)
	if err != nil {
		if errors.Is(err, pay.ErrInvalidCart) {
			utils.RespondWithError(w, http.StatusConflict, "Your cart is empty")
			return
		}
		log.Println("StartCheckout error:", err)
		http.Error(w, "Failed to start checkout", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, s.Snapshot())
}

// GetSession returns the current state snapshot.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s := h.Orchestrator.Session(ps.ByName("sessionid"))
	if s == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s.Snapshot())
}

// ConfirmShipping validates the posted address. Field errors come back
// together under "fieldErrors" with a 422.
func (h *Handler) ConfirmShipping(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s := h.Orchestrator.Session(ps.ByName("sessionid"))
	if s == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return
	}

	var info models.ShippingInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		log.Println("ConfirmShipping decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	fieldErrs, err := s.ConfirmShipping(info)
	if err != nil {
		utils.RespondWithError(w, http.StatusConflict, "Shipping can no longer be edited")
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"fieldErrors": fieldErrs,
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, s.Snapshot())
}

// EditShipping returns the session to address entry, keeping entered values.
func (h *Handler) EditShipping(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s := h.Orchestrator.Session(ps.ByName("sessionid"))
	if s == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return
	}

	if err := s.EditShipping(); err != nil {
		utils.RespondWithError(w, http.StatusConflict, "Order already completed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s.Snapshot())
}

// CreatePaymentSession opens the provider payment session. Inert unless
// shipping has been confirmed.
func (h *Handler) CreatePaymentSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	s := h.Orchestrator.Session(ps.ByName("sessionid"))
	if s == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return
	}

	order, err := h.Orchestrator.CreatePaymentSession(ctx, s)
	if err != nil {
		if errors.Is(err, ErrWrongState) {
			utils.RespondWithError(w, http.StatusConflict, "Please confirm your shipping address first")
			return
		}
		if errors.Is(err, pay.ErrInvalidCart) {
			utils.RespondWithError(w, http.StatusConflict, "Your cart is empty")
			return
		}
		log.Println("CreatePaymentSession error:", err)
		http.Error(w, "Failed to create payment session", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"providerOrderId": order.ID,
		"approveUrl":      order.ApproveURL,
	})
}

// ConfirmPayment captures the approved provider order and finishes checkout.
// Wrapped by the idempotency middleware in the route table.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	s := h.Orchestrator.Session(ps.ByName("sessionid"))
	if s == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return
	}

	var payload struct {
		ProviderOrderID string `json:"providerOrderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ProviderOrderID == "" {
		http.Error(w, "Missing provider order id", http.StatusBadRequest)
		return
	}

	ev, err := h.Orchestrator.ConfirmPayment(ctx, s, payload.ProviderOrderID)
	if err != nil {
		utils.RespondWithError(w, http.StatusConflict, "Payment cannot be captured in the current state")
		return
	}

	snap := s.Snapshot()
	if !ev.Succeeded {
		utils.RespondWithJSON(w, http.StatusPaymentRequired, utils.M{
			"session": snap,
			"event":   ev,
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"session":     snap,
		"orderNumber": snap.OrderNumber,
	})
}

// CancelPayment records a user cancellation; informational, cart preserved.
func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s := h.Orchestrator.Session(ps.ByName("sessionid"))
	if s == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return
	}

	if _, err := h.Orchestrator.Cancel(s); err != nil {
		utils.RespondWithError(w, http.StatusConflict, "Nothing to cancel")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s.Snapshot())
}

// RetryPayment re-arms the payment step after a failure.
func (h *Handler) RetryPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s := h.Orchestrator.Session(ps.ByName("sessionid"))
	if s == nil {
		http.Error(w, "Checkout session not found", http.StatusNotFound)
		return
	}

	if err := s.RetryPayment(); err != nil {
		utils.RespondWithError(w, http.StatusConflict, "Payment is not in a failed state")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s.Snapshot())
}
