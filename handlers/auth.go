package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StellaShiina/inventory-ui/auth"
	"github.com/StellaShiina/inventory-ui/db"
	"github.com/StellaShiina/inventory-ui/middleware"
	"github.com/StellaShiina/inventory-ui/validate"
)

type userResponse struct {
	ID        uint   `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func newUserResponse(u db.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Format("02/01/2006 15:04"),
	}
}

// POST /api/register
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)

	if err := validate.Account(fullName, email, username, password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taken, err := exists(db.DB.Where("username = ?", username))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}
	taken, err = exists(db.DB.Where("email = ?", email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	user := db.User{
		FullName: fullName,
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Username: username,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": newUserResponse(user)})
}

func exists(q *gorm.DB) (bool, error) {
	var u db.User
	err := q.First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// POST /api/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if err := validate.Login(username, password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user db.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if err != nil || !auth.CheckPassword(user.Password, password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	auth.SetTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": newUserResponse(user)})
}

// POST /api/logout
func LogoutHandler(c *gin.Context) {
	auth.ClearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GET /api/profile
func ProfileHandler(c *gin.Context) {
	var user db.User
	if err := db.DB.First(&user, middleware.UserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
