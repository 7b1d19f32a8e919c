package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"toyvault/db"
	"toyvault/models"
	"toyvault/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetContent returns one editable site content block (hero copy, banners).
// Public: the storefront renders these.
func GetContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var content models.SiteContent
	err := db.ContentCollection.FindOne(ctx, bson.M{"key": ps.ByName("key")}).Decode(&content)
	if err != nil {
		http.Error(w, "Content not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, content)
}

// UpdateContent upserts a site content block. Admin only.
func UpdateContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	content := models.SiteContent{
		Key:       ps.ByName("key"),
		Value:     payload.Value,
		UpdatedBy: utils.GetUserIDFromRequest(r),
		UpdatedAt: time.Now(),
	}

	_, err := db.ContentCollection.ReplaceOne(ctx,
		bson.M{"key": content.Key},
		content,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		log.Println("UpdateContent error:", err)
		http.Error(w, "Could not update content", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, content)
}
