package checkoutControllers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codedevify/Urbansolz/cart"
	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/mailer"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/payment"
	"github.com/codedevify/Urbansolz/repository"
)

// Controller drives both payment rails and applies their settlement signals
// to the order store.
type Controller struct {
	Orders     repository.OrderStore
	Carts      *cart.Service
	Stripe     payment.HostedCheckout
	PayPal     payment.OrderCapture
	Mail       mailer.Sender
	MailConfig *mailer.ConfigSource
	Events     events.Publisher
}

// baseURL is where confirm/cancel links and provider return URLs point.
// PUBLIC_BASE_URL wins over the request host when the app sits behind a proxy.
func baseURL(c *gin.Context) string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func (ctl *Controller) sellerEmail(ctx context.Context) (string, error) {
	cfg, err := ctl.MailConfig.Get(ctx)
	if err != nil {
		return "", err
	}
	return cfg.SellerEmail, nil
}

// notifySeller logs and moves on when the email cannot be sent; notification
// failures never block or reverse a lifecycle transition.
func (ctl *Controller) notifySeller(ctx context.Context, subject, body string) {
	seller, err := ctl.sellerEmail(ctx)
	if err != nil {
		log.Printf("warning: seller email unavailable: %v", err)
		return
	}
	if err := ctl.Mail.Send(ctx, seller, subject, body); err != nil {
		log.Printf("warning: seller notification failed: %v", err)
	}
}

func (ctl *Controller) sendOrderEmails(ctx context.Context, base string, order *models.Order) {
	total := payment.FormatMajor(order.Total)

	buyerBody := fmt.Sprintf(`
		<h3>Order #%s</h3>
		<p>Total: £%s</p>
		<p><a href="%s/order/confirm/%s">Confirm Order</a></p>
		<p><a href="%s/order/cancel/%s">Cancel Order</a></p>`,
		order.ID.Hex(), total, base, order.ID.Hex(), base, order.ID.Hex())
	if err := ctl.Mail.Send(ctx, order.Email, "Confirm Your Order", buyerBody); err != nil {
		log.Printf("warning: buyer confirmation email failed for order %s: %v", order.ID.Hex(), err)
	}

	sellerBody := fmt.Sprintf("<p>From: %s | Total: £%s</p>", order.Email, total)
	ctl.notifySeller(ctx, fmt.Sprintf("New Order #%s", order.ID.Hex()), sellerBody)
}

func (ctl *Controller) publish(eventType string, order *models.Order, status models.OrderStatus) {
	ctl.Events.Publish(events.Event{
		Type:    eventType,
		OrderID: order.ID.Hex(),
		Status:  status,
		Total:   order.Total,
	})
}

func toLineItems(items []cart.Item) []payment.LineItem {
	lines := make([]payment.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, payment.LineItem{
			Name:      it.DisplayName(),
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return lines
}

func toOrderItems(items []cart.Item) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		oi := models.OrderItem{
			DisplayName: it.DisplayName(),
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		}
		if id, err := primitive.ObjectIDFromHex(it.ProductID); err == nil {
			oi.ProductID = id
		}
		out = append(out, oi)
	}
	return out
}
