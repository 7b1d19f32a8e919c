package routes

import (
	"net/http"

	"toyvault/admin"
	"toyvault/auth"
	"toyvault/cart"
	"toyvault/catalog"
	"toyvault/checkout"
	"toyvault/live"
	"toyvault/middleware"
	"toyvault/orders"
	"toyvault/pay"
	"toyvault/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddCatalogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:handle", catalog.GetProductByHandle)
	router.GET("/api/content/:key", admin.GetContent)
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *cart.Handler) {
	router.GET("/api/cart", middleware.OptionalAuth(h.GetCart))
	router.POST("/api/cart/items", rl.Limit(middleware.OptionalAuth(h.AddToCart)))
	router.PUT("/api/cart/items/:key", middleware.OptionalAuth(h.UpdateQuantity))
	router.DELETE("/api/cart/items/:key", middleware.OptionalAuth(h.RemoveItem))
	router.DELETE("/api/cart", middleware.OptionalAuth(h.ClearCart))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *checkout.Handler) {
	router.POST("/api/checkout", rl.Limit(middleware.OptionalAuth(h.StartCheckout)))
	router.GET("/api/checkout/:sessionid", h.GetSession)
	router.POST("/api/checkout/:sessionid/shipping", h.ConfirmShipping)
	router.POST("/api/checkout/:sessionid/shipping/edit", h.EditShipping)
	router.POST("/api/checkout/:sessionid/payment", rl.Limit(h.CreatePaymentSession))
	router.POST("/api/checkout/:sessionid/payment/confirm", rl.Limit(idempotent(middleware.OptionalAuth(h.ConfirmPayment))))
	router.POST("/api/checkout/:sessionid/payment/cancel", h.CancelPayment)
	router.POST("/api/checkout/:sessionid/payment/retry", h.RetryPayment)
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.Refresh))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *admin.Handler) {
	router.POST("/api/admin/products", adminOnly(h.CreateProduct))
	router.PUT("/api/admin/products/:productid", adminOnly(h.UpdateProduct))
	router.DELETE("/api/admin/products/:productid", adminOnly(h.DeleteProduct))
	router.POST("/api/admin/products/:productid/images", adminOnly(h.UploadProductImage))
	router.PUT("/api/admin/content/:key", adminOnly(admin.UpdateContent))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/admin/orders", adminOnly(orders.ListOrders))
	router.GET("/api/admin/orders/:ordernumber", adminOnly(orders.GetOrder))
	router.GET("/api/admin/orders/:ordernumber/receipt", adminOnly(orders.DownloadReceipt))
	router.GET("/api/admin/orders/:ordernumber/qr", adminOnly(orders.OrderQR))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/orders", live.OrderFeedHandler(hub))
}

func adminOnly(next httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(middleware.RequireAdmin(next))
}

// idempotent adapts the Idempotency-Key middleware onto an httprouter handle.
func idempotent(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		pay.IdempotencyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next(w, r, ps)
		})).ServeHTTP(w, r)
	}
}
