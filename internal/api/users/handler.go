package users

import (
	"errors"
	"net/http"

	"artfeed-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Users *users.Store
}

func NewHandler(store *users.Store) *Handler {
	return &Handler{Users: store}
}

func (h *Handler) GetProfile(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.Users.ByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
		"phone":    user.Phone,
		"bio":      user.Bio,
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Bio      string `json:"bio"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Users.UpdateProfile(username, input.Email, input.Phone, input.Bio, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		case errors.Is(err, users.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
