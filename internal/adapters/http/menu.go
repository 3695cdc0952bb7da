package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/barboard/internal/app"
	"github.com/example/barboard/internal/domain"
)

func (h *Handlers) listMenu(c *gin.Context) {
	c.JSON(http.StatusOK, h.Menu.List(true))
}

func (h *Handlers) listMenuAll(c *gin.Context) {
	c.JSON(http.StatusOK, h.Menu.List(false))
}

type menuItemRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Icon      string  `json:"icon"`
	Available bool    `json:"available"`
}

func (h *Handlers) createMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad menu item"})
		return
	}
	item, err := h.Menu.Create(domain.MenuItem{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Icon:     req.Icon,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// menuPatchRequest mirrors app.MenuPatch: absent JSON fields stay nil
// and keep their current values.
type menuPatchRequest struct {
	Name      *string  `json:"name"`
	Category  *string  `json:"category"`
	Price     *float64 `json:"price"`
	Icon      *string  `json:"icon"`
	Available *bool    `json:"available"`
}

func (h *Handlers) updateMenuItem(c *gin.Context) {
	var req menuPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad menu item"})
		return
	}
	item, err := h.Menu.Update(c.Param("id"), app.MenuPatch{
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Icon:      req.Icon,
		Available: req.Available,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) deleteMenuItem(c *gin.Context) {
	if err := h.Menu.Delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
