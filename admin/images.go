package admin

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"toyvault/catalog"
	"toyvault/db"
	"toyvault/models"
	"toyvault/shopify"
	"toyvault/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "static/productpic"

// UploadProductImage accepts a multipart image, stores a web-sized copy and
// a thumbnail under static/productpic, and appends the image to the product.
func (h *Handler) UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var p models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&p); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Could not parse upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		http.Error(w, "Unsupported image format", http.StatusUnsupportedMediaType)
		return
	}

	if err := utils.EnsureDir(productPicDir); err != nil {
		log.Println("UploadProductImage mkdir error:", err)
		http.Error(w, "Could not store image", http.StatusInternalServerError)
		return
	}

	name := p.Handle + "-" + utils.GenerateRandomDigitString(6)
	fullPath := filepath.Join(productPicDir, name+".jpg")
	thumbPath := filepath.Join(productPicDir, name+"-thumb.jpg")

	web := imaging.Fit(img, 800, 800, imaging.Lanczos)
	if err := imaging.Save(web, fullPath, imaging.JPEGQuality(85)); err != nil {
		log.Println("UploadProductImage save error:", err)
		http.Error(w, "Could not store image", http.StatusInternalServerError)
		return
	}
	thumb := imaging.Thumbnail(img, 300, 300, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(80)); err != nil {
		log.Println("UploadProductImage thumbnail error:", err)
	}

	imageURL := "/" + filepath.ToSlash(fullPath)
	_, err = db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$push": bson.M{"images": imageURL}},
	)
	if err != nil {
		log.Println("UploadProductImage update error:", err)
		http.Error(w, "Could not attach image", http.StatusInternalServerError)
		return
	}

	if h.Shopify != nil && h.Shopify.Enabled() && p.ShopifyID != 0 {
		base := os.Getenv("PUBLIC_BASE_URL")
		if base != "" {
			err := h.Shopify.UploadImage(ctx, p.ShopifyID, shopify.ImagePayload{
				Src: base + imageURL,
				Alt: p.Title,
			})
			if err != nil {
				log.Println("shopify relay image upload failed:", err)
			}
		}
	}

	catalog.InvalidateCache(p.Handle)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"image":     imageURL,
		"thumbnail": "/" + filepath.ToSlash(thumbPath),
	})
}
