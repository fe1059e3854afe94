package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

// ImportProductsFromExcel bulk-creates or updates products from an uploaded
// spreadsheet. Rows carry an optional ID column; rows with a matching ID
// update that product, the rest insert new ones. Malformed rows are skipped,
// not fatal.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			title := get(1)
			description := get(2)
			price, err1 := strconv.ParseFloat(get(3), 64)
			oldPrice, _ := strconv.ParseFloat(get(4), 64)
			stock, _ := strconv.Atoi(get(5))
			image := get(6)
			sku := get(7)
			weight, _ := strconv.ParseFloat(get(8), 64)
			categoryIDStr := get(9)

			if title == "" || err1 != nil || price < 0 {
				skippedCount++
				continue
			}

			var categoryID *uint
			if id, err := strconv.Atoi(categoryIDStr); err == nil && id > 0 {
				cid := uint(id)
				categoryID = &cid
			}

			product := models.Product{
				Title:       title,
				Description: description,
				Price:       price,
				OldPrice:    oldPrice,
				StockCount:  stock,
				Image:       image,
				SKU:         sku,
				Weight:      weight,
				CategoryID:  categoryID,
				Slug:        Slugify(title),
				IsActive:    true,
			}

			if idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.First(&existing, id).Error; err == nil {
						existing.Title = product.Title
						existing.Description = product.Description
						existing.Price = product.Price
						existing.OldPrice = product.OldPrice
						existing.StockCount = product.StockCount
						existing.Image = product.Image
						existing.SKU = product.SKU
						existing.Weight = product.Weight
						existing.CategoryID = product.CategoryID

						if err := db.Save(&existing).Error; err == nil {
							updatedCount++
							continue
						}
					}
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}

func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Title", "Description", "Price", "OldPrice",
			"StockCount", "Image", "SKU", "Weight", "CategoryID",
			"Slug", "IsActive", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.OldPrice)
			row.AddCell().SetValue(p.StockCount)
			row.AddCell().SetValue(p.Image)
			row.AddCell().SetValue(p.SKU)
			row.AddCell().SetValue(p.Weight)
			if p.CategoryID != nil {
				row.AddCell().SetValue(*p.CategoryID)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.IsActive)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
