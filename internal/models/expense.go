package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Expense is an immutable operational expense. Expenses are the only history
// entries that support deletion.
type Expense struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// NewExpense creates an expense with a generated ID.
func NewExpense(label, category string, amount float64, date time.Time) *Expense {
	return &Expense{
		ID:       uuid.New().String(),
		Label:    label,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}

// Validate validates the expense data.
func (e *Expense) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("expense ID is required")
	}

	if strings.TrimSpace(e.Label) == "" {
		return fmt.Errorf("expense label is required")
	}

	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("expense category is required")
	}

	if e.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}

	return nil
}
