package checkoutControllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/payment"
	"github.com/codedevify/Urbansolz/repository"
)

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// Webhook receives the hosted provider's settlement signal. The signature is
// checked against the raw body before anything is parsed or trusted; routing
// must not touch the body ahead of this handler.
func (ctl *Controller) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	if err := ctl.Stripe.VerifyWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not configured"})
			return
		}
		log.Printf("webhook signature rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
		return
	}

	if event.Type == "checkout.session.completed" {
		ctl.applySessionCompleted(c, event.Data.Object.ID)
	}

	// accepted-but-ignored event types are acknowledged too, so the provider
	// stops redelivering them
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (ctl *Controller) applySessionCompleted(c *gin.Context, sessionID string) {
	ctx := c.Request.Context()

	order, err := ctl.Orders.FindBySessionID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, repository.ErrOrderNotFound) {
			log.Printf("warning: webhook lookup failed for session %s: %v", sessionID, err)
		}
		return
	}

	applied, err := ctl.Orders.TransitionStatus(ctx, order.ID, models.OrderStatusConfirmed)
	if err != nil {
		log.Printf("warning: webhook transition failed for order %s: %v", order.ID.Hex(), err)
		return
	}
	if applied {
		ctl.publish(events.TypeOrderConfirmed, order, models.OrderStatusConfirmed)
	}
}
