package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/StellaShiina/inventory-ui/config"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// App configuration
var appConfig = config.LoadConfig()

// Configure replaces the configuration loaded at startup.
func Configure(cfg *config.Config) {
	appConfig = cfg
}

// Claims represents the JWT claims
type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash with a plaintext password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(appConfig.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(appConfig.JWTSecret))
}

// ValidateToken validates the JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(appConfig.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GetTokenFromCookie extracts the JWT token from the cookie
func GetTokenFromCookie(c *gin.Context) (string, error) {
	return c.Cookie(CookieName)
}

// SetTokenCookie sets the JWT token in a cookie
func SetTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(appConfig.TokenTTL/time.Second), "/", "", false, true)
}

// ClearTokenCookie clears the JWT token cookie
func ClearTokenCookie(c *gin.Context) {
	// Set cookie with negative MaxAge to delete it
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
