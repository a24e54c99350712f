package adminControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/repository"
)

// GET /admin/orders
func ListOrders(orders repository.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if list == nil {
			list = []models.Order{}
		}
		c.JSON(http.StatusOK, list)
	}
}

type OrderStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// PUT /admin/orders/:id/status
//
// Transitions are applied only while the order is still pending, the same
// rule the buyer-facing links and the webhook follow. A request against an
// already settled order is reported back instead of overwriting it.
func UpdateOrderStatus(orders repository.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var input OrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Status != models.OrderStatusConfirmed && input.Status != models.OrderStatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be Confirmed or Cancelled"})
			return
		}

		applied, err := orders.TransitionStatus(c.Request.Context(), id, input.Status)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		if !applied {
			c.JSON(http.StatusConflict, gin.H{"error": "Order has already been processed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order updated", "status": input.Status})
	}
}
