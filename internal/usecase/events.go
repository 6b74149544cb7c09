package usecase

import (
	"time"

	domain "github.com/Dineep4/QuickBite/internal/entity"
)

// Routing keys for the order events exchange.
const (
	RouteOrderPlaced        = "order.placed"
	RouteOrderStatusChanged = "order.status_changed"
)

type OrderPlacedEvent struct {
	OrderID     string    `json:"order_id"`
	StudentID   string    `json:"student_id"`
	Token       string    `json:"token"`
	TokenNumber int       `json:"token_number"`
	Total       float64   `json:"total"`
	PlacedAt    time.Time `json:"placed_at"`
}

type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

func NewOrderPlacedEvent(o *domain.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:     o.ID,
		StudentID:   o.StudentID,
		Token:       o.Token,
		TokenNumber: o.TokenNumber,
		Total:       o.Total,
		PlacedAt:    o.CreatedAt,
	}
}

func NewOrderStatusChangedEvent(o *domain.Order) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		OrderID:   o.ID,
		Token:     o.Token,
		Status:    string(o.Status),
		ChangedAt: time.Now().UTC(),
	}
}
