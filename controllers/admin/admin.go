package adminControllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/codedevify/Urbansolz/mailer"
	"github.com/codedevify/Urbansolz/repository"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /admin/login
func Login(admins repository.AdminStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		admin, err := admins.FindByCredentials(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Println("❌ Admin lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		claims := jwt.MapClaims{
			"role":     "admin",
			"username": admin.Username,
			"exp":      time.Now().Add(24 * time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			log.Println("❌ Failed to sign JWT:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed, "role": "admin"})
	}
}

type TestEmailInput struct {
	To string `json:"to" binding:"required,email"`
}

// POST /admin/test-email
func TestEmail(mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TestEmailInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		body := "<p>This is a test message from the store backend. If you are reading it, the mail configuration works.</p>"
		if err := mail.Send(c.Request.Context(), input.To, "Test Email", body); err != nil {
			if errors.Is(err, mailer.ErrNotConfigured) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email is not configured"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test email: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Test email sent"})
	}
}
