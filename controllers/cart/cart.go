package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codedevify/Urbansolz/cart"
	"github.com/codedevify/Urbansolz/middleware"
	"github.com/codedevify/Urbansolz/repository"
)

type AddItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Variant   string `json:"variant"`
}

type UpdateVariantInput struct {
	Variant string `json:"variant" binding:"required"`
}

// POST /cart/add
func AddItem(carts *cart.Service, products repository.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		id, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		product, err := products.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		sid := middleware.SessionID(c)
		if err := carts.Add(c.Request.Context(), sid, *product, input.Quantity, input.Variant); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, cart.ErrInvalidQuantity) || errors.Is(err, cart.ErrVariantRequired) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
	}
}

// POST /cart/update-variant/:index
func UpdateVariant(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := indexParam(c)
		if !ok {
			return
		}
		var input UpdateVariantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sid := middleware.SessionID(c)
		if err := carts.UpdateVariant(c.Request.Context(), sid, index, input.Variant); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, cart.ErrBadIndex) || errors.Is(err, cart.ErrVariantRequired) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Variant updated"})
	}
}

// POST /cart/remove/:index
func RemoveItem(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := indexParam(c)
		if !ok {
			return
		}

		sid := middleware.SessionID(c)
		if err := carts.Remove(c.Request.Context(), sid, index); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, cart.ErrBadIndex) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
	}
}

// POST /cart/clear
func ClearCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)
		if err := carts.Clear(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

type cartItemView struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Variant   string  `json:"variant,omitempty"`
	LineTotal float64 `json:"line_total"`
}

// GET /cart
func GetCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)
		items, err := carts.Items(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}
		total, err := carts.Total(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		views := make([]cartItemView, 0, len(items))
		for _, item := range items {
			views = append(views, cartItemView{
				ProductID: item.ProductID,
				Name:      item.DisplayName(),
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
				Variant:   item.Variant,
				LineTotal: item.UnitPrice * float64(item.Quantity),
			})
		}

		c.JSON(http.StatusOK, gin.H{"items": views, "total": total})
	}
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return 0, false
	}
	return index, true
}
