package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/StellaShiina/inventory-ui/db"
	"github.com/StellaShiina/inventory-ui/inventory"
	"github.com/StellaShiina/inventory-ui/middleware"
	"github.com/StellaShiina/inventory-ui/validate"
)

func userItems(userID uint) ([]db.Item, error) {
	var items []db.Item
	err := db.DB.Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

// findItem loads the caller's item named by :id, answering 404 itself when
// it cannot.
func findItem(c *gin.Context) (db.Item, bool) {
	var it db.Item
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return it, false
	}
	if err := db.DB.Where("id = ? AND user_id = ?", id, middleware.UserID(c)).First(&it).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return it, false
	}
	return it, true
}

// GET /api/items
func ListItems(c *gin.Context) {
	items, err := userItems(middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items"})
		return
	}
	records := db.Records(items)
	report := inventory.BuildReport(records)
	c.JSON(http.StatusOK, gin.H{
		"items":             records,
		"total_value":       report.TotalValue,
		"total_quantity":    report.TotalQuantity,
		"total_items_count": report.TotalItemsCount,
	})
}

// POST /api/items
type CreateItemRequest struct {
	Name     string   `json:"name"`
	ItemType string   `json:"item_type"`
	Quantity *float64 `json:"quantity"`
	Value    *float64 `json:"value"`
}

func CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Quantity == nil || req.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validate.ErrItemIncomplete.Error()})
		return
	}
	draft := inventory.Draft{
		Name:     strings.TrimSpace(req.Name),
		ItemType: strings.TrimSpace(req.ItemType),
		Quantity: int(*req.Quantity),
		Value:    *req.Value,
	}
	if err := validate.Draft(draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it := db.Item{
		UserID:   middleware.UserID(c),
		Name:     draft.Name,
		ItemType: draft.ItemType,
		Quantity: draft.Quantity,
		Value:    draft.Value,
	}
	if err := db.DB.Create(&it).Error; err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, it.Record())
}

// GET /api/items/:id
func GetItem(c *gin.Context) {
	it, ok := findItem(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, it.Record())
}

// PUT /api/items/:id -> partial update
type UpdateItemRequest struct {
	Name     *string  `json:"name"`
	ItemType *string  `json:"item_type"`
	Quantity *float64 `json:"quantity"`
	Value    *float64 `json:"value"`
}

func UpdateItem(c *gin.Context) {
	it, ok := findItem(c)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if req.Name != nil {
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.ItemType != nil {
		it.ItemType = strings.TrimSpace(*req.ItemType)
	}
	if req.Quantity != nil {
		q := int(*req.Quantity)
		if err := validate.Quantity(q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		it.Quantity = q
	}
	if req.Value != nil {
		if err := validate.Value(*req.Value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		it.Value = *req.Value
	}
	if err := db.DB.Save(&it).Error; err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(http.StatusOK, it.Record())
}

// DELETE /api/items/:id
func DeleteItem(c *gin.Context) {
	it, ok := findItem(c)
	if !ok {
		return
	}
	if err := db.DB.Delete(&it).Error; err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// GET /api/reports/summary
func SummaryReport(c *gin.Context) {
	items, err := userItems(middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, inventory.BuildReport(db.Records(items)))
}
