package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"toyvault/db"
	"toyvault/globals"
	"toyvault/middleware"
	"toyvault/models"
	"toyvault/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func signToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Login verifies admin credentials and issues a signed JWT.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": creds.Username}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, err := signToken(user)
	if err != nil {
		log.Println("Login token signing error:", err)
		http.Error(w, "Could not create session", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token": tokenString,
		"user": utils.M{
			"userid":   user.UserID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Refresh exchanges a still-valid token for a fresh one.
func Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	user := models.User{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}

	tokenString, err := signToken(user)
	if err != nil {
		log.Println("Refresh token signing error:", err)
		http.Error(w, "Could not refresh session", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": tokenString})
}

// Logout is a no-op acknowledgement; tokens are stateless and simply expire.
func Logout(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// EnsureAdminUser creates the bootstrap admin account from ADMIN_USERNAME
// and ADMIN_PASSWORD when no user exists yet.
func EnsureAdminUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"username": username}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         []string{"admin"},
		CreatedAt:    time.Now(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		return err
	}
	log.Println("created bootstrap admin user", username)
	return nil
}
