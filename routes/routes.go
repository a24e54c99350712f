package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/codedevify/Urbansolz/cart"
	checkoutControllers "github.com/codedevify/Urbansolz/controllers/checkout"
	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/mailer"
	"github.com/codedevify/Urbansolz/repository"
)

// Deps carries everything the route groups need. main builds it once.
type Deps struct {
	Orders     repository.OrderStore
	Products   repository.ProductStore
	Settings   repository.SettingsStore
	Admins     repository.AdminStore
	Carts      *cart.Service
	Checkout   *checkoutControllers.Controller
	Mail       mailer.Sender
	MailConfig *mailer.ConfigSource
	Hub        *events.Hub
}

// SetupRoutes is the single entry point that wires up the store, payment,
// and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public storefront routes (session cookie middleware)
	SetupStoreRoutes(r, deps)

	// Payment rails: hosted checkout redirect flow, wallet capture flow,
	// settlement links and the provider webhook
	SetupPaymentRoutes(r, deps)

	// Admin routes (JWT protected)
	SetupAdminRoutes(r, deps)
}
