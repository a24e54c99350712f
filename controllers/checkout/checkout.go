package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/middleware"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/payment"
	"github.com/codedevify/Urbansolz/repository"
)

// Checkout starts the hosted rail: provider session first, then the Pending
// order, then the notification emails, then the redirect to the hosted page.
// Email failures leave the order in place; the settlement webhook confirms the
// payment independently.
func (ctl *Controller) Checkout(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	items, err := ctl.Carts.Items(ctx, sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	if len(items) == 0 {
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	base := baseURL(c)
	sess, err := ctl.Stripe.CreateSession(ctx, toLineItems(items), base+"/success", base+"/cart")
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider is not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	total, err := ctl.Carts.Total(ctx, sid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to total cart"})
		return
	}

	order := &models.Order{
		Items:           toOrderItems(items),
		Total:           total,
		Email:           email,
		Status:          models.OrderStatusPending,
		StripeSessionID: sess.ID,
	}
	if _, err := ctl.Orders.Create(ctx, order); err != nil {
		// the provider session is orphaned provider-side; it can still be
		// reconciled later from the webhook or a manual lookup
		if errors.Is(err, repository.ErrPersistence) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl.sendOrderEmails(ctx, base, order)
	ctl.publish(events.TypeOrderCreated, order, models.OrderStatusPending)

	c.Redirect(http.StatusSeeOther, sess.URL)
}

// Success is the hosted provider's return URL. The cart is consumed here; the
// order itself is confirmed by the webhook, not by this redirect.
func (ctl *Controller) Success(c *gin.Context) {
	if err := ctl.Carts.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment successful! Your order is confirmed."})
}
