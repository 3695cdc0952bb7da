package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/barboard/internal/app"
	"github.com/example/barboard/internal/domain"
)

// fail maps the core error taxonomy onto HTTP statuses. Input errors
// are final; only persistence failures are worth a client retry.
func fail(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var pe *domain.PersistenceError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	case errors.As(err, &pe):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "write failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type createOrderRequest struct {
	Table int                `json:"table" binding:"required"`
	Items []domain.OrderItem `json:"items" binding:"required"`
	Notes string             `json:"notes"`
}

func (h *Handlers) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing table or items"})
		return
	}
	order, err := h.Repo.CreateOrder(req.Table, req.Items, req.Notes, caller(c).Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handlers) listOrders(c *gin.Context) {
	filter := app.Filter{
		Status:      domain.OrderStatus(c.Query("status")),
		Window:      app.Window(c.Query("window")),
		NewestFirst: c.Query("sort") == "newest",
	}
	if raw := c.Query("table"); raw != "" {
		table, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad table number"})
			return
		}
		filter.Table = table
	}
	orders, err := h.Repo.ListOrders(filter)
	if err != nil {
		fail(c, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

type setStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *Handlers) setOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad order id"})
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing status"})
		return
	}
	order, err := h.Repo.SetStatus(orderID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handlers) deleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad order id"})
		return
	}
	if err := h.Repo.DeleteOrder(orderID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handlers) clearTable(c *gin.Context) {
	tableNum, err := strconv.Atoi(c.Param("tableNum"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad table number"})
		return
	}
	count, err := h.Repo.ClearTable(tableNum, caller(c).Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "clearedOrders": count})
}

func (h *Handlers) listTables(c *gin.Context) {
	views := app.Overview(h.Repo.Snapshot(), h.Repo.Tables())
	c.JSON(http.StatusOK, views)
}

func (h *Handlers) orderStats(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad date, want YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	stats := app.StatsForDay(h.Repo.Snapshot(), day, h.Repo.Tables())
	c.JSON(http.StatusOK, stats)
}
