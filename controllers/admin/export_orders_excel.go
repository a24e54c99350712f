package adminControllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/codedevify/Urbansolz/repository"
)

// GET /admin/orders/export
func ExportOrdersToExcel(orders repository.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Email", "Status", "Total", "Items",
			"PaymentRef", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, o := range list {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID.Hex())
			row.AddCell().SetValue(o.Email)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.Total)

			var lines []string
			for _, item := range o.Items {
				lines = append(lines, fmt.Sprintf("%s x%d", item.DisplayName, item.Quantity))
			}
			row.AddCell().SetValue(strings.Join(lines, "; "))

			ref := o.StripeSessionID
			if ref == "" {
				ref = o.PayPalOrderID
			}
			row.AddCell().SetValue(ref)

			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		// Write file to response
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
