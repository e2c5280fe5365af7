package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money spent from the expenses section.
type Expense struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;index" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	User        User            `json:"-"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"42.9"`
	Category    string          `json:"category" example:"Groceries"`
	Description string          `json:"description" example:"Weekly shopping"`
	Date        time.Time       `json:"date" example:"2024-05-04T00:00:00Z"`
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	e.Date = e.Date.In(time.UTC)

	return nil
}

// AfterFind returns the date in UTC.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	e.Date = e.Date.In(time.UTC)
	return e.DefaultModel.AfterFind(tx)
}
