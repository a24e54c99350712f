package checkoutControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/middleware"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/payment"
)

const paypalCurrency = "GBP"

// CreatePayPalOrder opens a provider-side order for the cart total. No local
// order exists until the capture succeeds.
func (ctl *Controller) CreatePayPalOrder(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	items, err := ctl.Carts.Items(ctx, sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	total, err := ctl.Carts.Total(ctx, sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to total cart"})
		return
	}

	providerOrderID, err := ctl.PayPal.CreateOrder(ctx, total, paypalCurrency, toLineItems(items))
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider is not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderID": providerOrderID})
}

// CapturePayPalOrder executes the capture and persists the order as Pending,
// converging on the same confirm/cancel mechanics as the hosted rail.
func (ctl *Controller) CapturePayPalOrder(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)
	providerOrderID := c.Param("providerOrderID")
	if providerOrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider order id is required"})
		return
	}

	capture, err := ctl.PayPal.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider is not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	items, err := ctl.Carts.Items(ctx, sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	total, err := ctl.Carts.Total(ctx, sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to total cart"})
		return
	}

	order := &models.Order{
		Items:         toOrderItems(items),
		Total:         total,
		Email:         capture.PayerEmail,
		Status:        models.OrderStatusPending,
		PayPalOrderID: providerOrderID,
	}
	if _, err := ctl.Orders.Create(ctx, order); err != nil {
		// funds are captured provider-side; the record can be recreated from
		// the provider order on manual reconciliation
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save order"})
		return
	}

	if err := ctl.Carts.Clear(ctx, sid); err != nil {
		log.Printf("warning: failed to clear cart after capture: %v", err)
	}

	ctl.sendOrderEmails(ctx, baseURL(c), order)
	ctl.publish(events.TypeOrderCreated, order, models.OrderStatusPending)

	c.JSON(http.StatusOK, gin.H{
		"status":    "COMPLETED",
		"orderID":   order.ID.Hex(),
		"captureID": capture.ID,
	})
}
