package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/repository"
)

// GET /products
func GetProducts(products repository.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if list == nil {
			list = []models.Product{}
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /products/:category
func GetProductsByCategory(products repository.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := models.Category(c.Param("category"))
		if category != models.CategoryShoe && category != models.CategoryHat {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown category"})
			return
		}

		list, err := products.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		filtered := make([]models.Product, 0, len(list))
		for _, p := range list {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		c.JSON(http.StatusOK, filtered)
	}
}
