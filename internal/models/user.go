package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is the profile the ledger reads allocation preferences from.
//
// SavingsBalance is tracked alongside the savings section and moves by the
// same signed amount whenever a transaction touches savings.
type User struct {
	DefaultModel
	Name               string          `json:"name" example:"Alex"`
	Email              string          `json:"email" gorm:"uniqueIndex" example:"alex@example.com"`
	SavingsPercent     decimal.Decimal `json:"savingsPercent" gorm:"type:DECIMAL(5,2)" example:"30"`
	ExpensesPercent    decimal.Decimal `json:"expensesPercent" gorm:"type:DECIMAL(5,2)" example:"50"`
	InvestmentsPercent decimal.Decimal `json:"investmentsPercent" gorm:"type:DECIMAL(5,2)" example:"20"`
	LeftoverAction     SectionName     `json:"leftoverAction" example:"savings"`
	SavingsBalance     decimal.Decimal `json:"savingsBalance" gorm:"type:DECIMAL(20,8)" example:"1500"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.LeftoverAction == SectionNone {
		u.LeftoverAction = SectionSavings
	}

	return nil
}
