package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/codedevify/Urbansolz/middleware"
)

// SetupPaymentRoutes registers both payment rails and their settlement
// endpoints. The webhook stays outside the session group: the provider calls
// it server to server and carries no cart cookie.
func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	ctl := deps.Checkout

	session := r.Group("/")
	session.Use(middleware.CartSession())
	{
		session.POST("/checkout", ctl.Checkout)
		session.GET("/success", ctl.Success)

		session.POST("/api/paypal/create-order", ctl.CreatePayPalOrder)
		session.POST("/api/paypal/capture-order/:providerOrderID", ctl.CapturePayPalOrder)
	}

	// Settlement links land from the buyer's mail client, with or without a
	// session cookie.
	r.GET("/order/confirm/:id", ctl.ConfirmOrder)
	r.GET("/order/cancel/:id", ctl.CancelOrder)

	r.POST("/webhook", ctl.Webhook)

	// Live order feed for the admin dashboard.
	r.GET("/ws/orders", deps.Hub.HandleWS)
}
