package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codedevify/Urbansolz/mailer"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/repository"
)

type PaymentConfigInput struct {
	StripePublishableKey string `json:"stripe_publishable_key" binding:"required"`
	StripeSecretKey      string `json:"stripe_secret_key" binding:"required"`
	StripeWebhookSecret  string `json:"stripe_webhook_secret" binding:"required"`
}

// PUT /admin/payment-config
func UpdatePaymentConfig(settings repository.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PaymentConfigInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cfg := &models.PaymentConfig{
			StripePublishableKey: input.StripePublishableKey,
			StripeSecretKey:      input.StripeSecretKey,
			StripeWebhookSecret:  input.StripeWebhookSecret,
		}
		if err := settings.SavePaymentConfig(c.Request.Context(), cfg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment config"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment config updated"})
	}
}

// GET /admin/payment-config
func GetPaymentConfig(settings repository.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := settings.PaymentConfig(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment config"})
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

type EmailConfigInput struct {
	EmailUser   string `json:"email_user" binding:"required,email"`
	EmailPass   string `json:"email_pass" binding:"required"`
	SellerEmail string `json:"seller_email"`
	SMTPHost    string `json:"smtp_host"`
	SMTPPort    int    `json:"smtp_port"`
}

// PUT /admin/email-config
//
// Saving invalidates the cached config so the next send picks up the new
// credentials immediately.
func UpdateEmailConfig(settings repository.SettingsStore, mailConfig *mailer.ConfigSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input EmailConfigInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cfg := &models.EmailConfig{
			EmailUser:   input.EmailUser,
			EmailPass:   input.EmailPass,
			SellerEmail: input.SellerEmail,
			SMTPHost:    input.SMTPHost,
			SMTPPort:    input.SMTPPort,
		}
		if err := settings.SaveEmailConfig(c.Request.Context(), cfg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save email config"})
			return
		}
		mailConfig.Invalidate()

		c.JSON(http.StatusOK, gin.H{"message": "Email config updated"})
	}
}
