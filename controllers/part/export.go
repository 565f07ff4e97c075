package partcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/models"
)

// ExportPartsToExcel is the staff inventory export: every part with its
// category, price and current stock.
func ExportPartsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var parts []models.Part
		if err := db.Preload("Category").Find(&parts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch parts"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Parts")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Name", "Article", "Category", "Manufacturer", "Price", "Stock"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range parts {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			if p.Article != nil {
				row.AddCell().SetValue(*p.Article)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Category.Name)
			row.AddCell().SetValue(p.Manufacturer)
			row.AddCell().SetValue(p.Price.StringFixed(2))
			row.AddCell().SetValue(p.StockCount)
		}

		c.Header("Content-Disposition", `attachment; filename="parts_inventory.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write Excel file"})
		}
	}
}
