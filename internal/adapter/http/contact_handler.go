package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/Dineep4/QuickBite/internal/entity"
	"github.com/Dineep4/QuickBite/internal/logging"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

type ContactHandler struct {
	store usecase.ContactStore
}

func NewContactHandler(store usecase.ContactStore) *ContactHandler {
	return &ContactHandler{store: store}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Create handles POST /contact.
func (h *ContactHandler) Create(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name, email and message are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	msg := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.Insert(ctx, msg); err != nil {
		logging.From(c).Error("contact_insert_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "item": msg})
}
