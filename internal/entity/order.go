package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusCompleted Status = "Completed"
)

// ValidStatus reports whether s is one of the four order states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// TokenPrefix is prepended to the per-day token number to form the
// display token handed to the student ("QB-1", "QB-2", ...).
const TokenPrefix = "QB-"

// OrderLine is a snapshot of a menu item at placement time. Name and
// price are copied, not referenced, so later menu edits never change
// what a historical order says it cost.
type OrderLine struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Qty    int     `json:"qty"`
}

type Order struct {
	ID          string      `json:"id"`
	StudentID   string      `json:"studentId"`
	StudentName string      `json:"studentName"`
	Lines       []OrderLine `json:"items"`
	Total       float64     `json:"total"`
	Status      Status      `json:"status"`

	// OrderDate is the day the order belongs to, truncated to midnight.
	// It is purely a partition key for the daily token sequence;
	// CreatedAt carries the real placement instant.
	OrderDate   time.Time `json:"orderDate"`
	TokenNumber int       `json:"tokenNumber"`
	Token       string    `json:"token"`

	CreatedAt time.Time `json:"createdAt"`
}

// DisplayToken renders the human-facing pickup token for a sequence number.
func DisplayToken(n int) string {
	return fmt.Sprintf("%s%d", TokenPrefix, n)
}

// DayOf truncates t to midnight in t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LineTotal is the amount one line contributes to the order total.
func (l OrderLine) LineTotal() float64 {
	return l.Price * float64(l.Qty)
}
