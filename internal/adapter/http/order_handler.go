package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/Dineep4/QuickBite/internal/entity"
	"github.com/Dineep4/QuickBite/internal/logging"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

type OrderHandler struct {
	place  *usecase.PlaceOrder
	orders *usecase.Orders
}

func NewOrderHandler(place *usecase.PlaceOrder, orders *usecase.Orders) *OrderHandler {
	return &OrderHandler{place: place, orders: orders}
}

type placeOrderReq struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Items       []struct {
		ItemID string `json:"itemId"`
		// name/price are advisory only; the server reprices from the
		// catalog and ignores them.
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Qty   int     `json:"qty"`
	} `json:"items"`
	Total float64 `json:"total"`
}

// PlaceOrder handles POST /orders/place.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad request body"})
		return
	}

	lines := make([]usecase.RequestedLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.RequestedLine{ItemID: it.ItemID, Qty: it.Qty})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.place.Execute(ctx, usecase.PlaceOrderInput{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		Lines:       lines,
		ClientTotal: req.Total,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	logging.From(c).Info("order_placed",
		"order_id", order.ID, "token", order.Token, "total", order.Total)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "order": order})
}

// MyOrders handles GET /orders/me/:studentId.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.orders.ByStudent(ctx, c.Param("studentId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "orders": orders})
}

// AllOrders handles GET /orders/all.
func (h *OrderHandler) AllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.orders.All(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "orders": orders})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /orders/status/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	updated, err := h.orders.UpdateStatus(ctx, c.Param("id"), domain.Status(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}

	logging.From(c).Info("order_status_updated", "order_id", updated.ID, "status", updated.Status)
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}

// StatsToday handles GET /orders/stats/today.
func (h *OrderHandler) StatsToday(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	n, err := h.orders.CountToday(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "todayOrders": n})
}

// StatsPending handles GET /orders/stats/pending.
func (h *OrderHandler) StatsPending(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	n, err := h.orders.CountPending(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pending": n})
}

// fail maps usecase errors onto status codes. Anything unrecognized is
// a backend fault; its message is kept so operators can diagnose it.
func (h *OrderHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrMissingStudentInfo),
		errors.Is(err, usecase.ErrNoItems),
		errors.Is(err, usecase.ErrInvalidTotal),
		errors.Is(err, usecase.ErrNoValidItems),
		errors.Is(err, usecase.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrTokenConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logging.From(c).Error("order_request_failed", "error", err.Error())
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}
