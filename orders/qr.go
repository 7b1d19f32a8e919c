package orders

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
)

// OrderQR serves a QR code pointing at the order's tracking page.
func OrderQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := findByNumber(ctx, ps.ByName("ordernumber"))
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:4000"
	}

	png, err := qrcode.Encode(base+"/orders/"+order.OrderNumber, qrcode.Medium, 256)
	if err != nil {
		log.Println("OrderQR encode error:", err)
		http.Error(w, "Could not generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
