package routes

import (
	"toyvault/admin"
	"toyvault/cart"
	"toyvault/checkout"
	"toyvault/live"
	"toyvault/ratelim"

	"github.com/julienschmidt/httprouter"
)

// Handlers carries the stateful handler sets the route table wires up.
type Handlers struct {
	Cart     *cart.Handler
	Checkout *checkout.Handler
	Admin    *admin.Handler
	Hub      *live.Hub
}

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h Handlers) {
	AddStaticRoutes(router)
	AddCatalogRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter, h.Cart)
	AddCheckoutRoutes(router, rateLimiter, h.Checkout)
	AddAuthRoutes(router, rateLimiter)
	AddAdminRoutes(router, rateLimiter, h.Admin)
	AddOrderRoutes(router, rateLimiter)
	AddLiveRoutes(router, h.Hub)
}
