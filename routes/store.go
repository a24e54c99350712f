package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/codedevify/Urbansolz/controllers/cart"
	productControllers "github.com/codedevify/Urbansolz/controllers/product"
	"github.com/codedevify/Urbansolz/middleware"
)

// SetupStoreRoutes registers the public storefront endpoints. Everything in
// here runs behind the session cookie middleware so the cart follows the
// browser.
func SetupStoreRoutes(r *gin.Engine, deps Deps) {
	store := r.Group("/")
	store.Use(middleware.CartSession())
	{
		store.GET("/products", productControllers.GetProducts(deps.Products))
		store.GET("/products/:category", productControllers.GetProductsByCategory(deps.Products))

		store.GET("/cart", cartControllers.GetCart(deps.Carts))
		store.POST("/cart/add", cartControllers.AddItem(deps.Carts, deps.Products))
		store.POST("/cart/update-variant/:index", cartControllers.UpdateVariant(deps.Carts))
		store.POST("/cart/remove/:index", cartControllers.RemoveItem(deps.Carts))
		store.POST("/cart/clear", cartControllers.ClearCart(deps.Carts))
	}
}
