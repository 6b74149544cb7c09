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

type MenuHandler struct {
	menu *usecase.Menu
}

func NewMenuHandler(menu *usecase.Menu) *MenuHandler {
	return &MenuHandler{menu: menu}
}

type menuItemReq struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Add handles POST /menu/add.
func (h *MenuHandler) Add(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	item, err := h.menu.Add(ctx, req.Name, req.Price, req.Image)
	if err != nil {
		h.fail(c, err)
		return
	}

	logging.From(c).Info("menu_item_added", "item_id", item.ID, "name", item.Name)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "item": item})
}

// All handles GET /menu/all.
func (h *MenuHandler) All(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	items, err := h.menu.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// Update handles PUT /menu/update/:id.
func (h *MenuHandler) Update(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	item, err := h.menu.Update(ctx, &domain.MenuItem{
		ID:    c.Param("id"),
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

// Delete handles DELETE /menu/delete/:id.
func (h *MenuHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.menu.Delete(ctx, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *MenuHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrInvalidMenuItem):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logging.From(c).Error("menu_request_failed", "error", err.Error())
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}
