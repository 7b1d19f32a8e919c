package orders

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"toyvault/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// DownloadReceipt renders the order receipt as a PDF.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := findByNumber(ctx, ps.ByName("ordernumber"))
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "ToyVault")
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Receipt "+order.OrderNumber)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Date: "+order.CreatedAt.Format("Jan 2, 2006"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, order.FullName)
	pdf.Ln(5)
	pdf.Cell(0, 5, order.Address)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("%s, %s %s", order.City, order.State, order.Zip))
	pdf.Ln(5)
	pdf.Cell(0, 5, order.Country)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 7, "Item", "B", 0, "", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(110, 6, utils.Truncate(item.Title, 60), "", 0, "", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, utils.FormatAmount(item.Price*float64(item.Quantity)), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(130, 8, "Total", "T", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, order.TotalAmount+" "+order.Currency, "T", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 5, "Payment reference: "+order.PayPalOrderID)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", order.OrderNumber))
	if err := pdf.Output(w); err != nil {
		log.Println("DownloadReceipt render error:", err)
	}
}
