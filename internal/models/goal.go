package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferType string

const (
	TransferTypeNone       TransferType = ""
	TransferTypeExpense    TransferType = "EXPENSE"
	TransferTypeInvestment TransferType = "INVESTMENT"
)

// Destination returns the section a completed goal pays out to.
func (t TransferType) Destination() SectionName {
	if t == TransferTypeInvestment {
		return SectionInvestments
	}

	return SectionExpenses
}

// SavingGoal is a target amount set aside from savings.
type SavingGoal struct {
	DefaultModel
	UserID        uuid.UUID       `json:"userId" gorm:"type:uuid;index" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	User          User            `json:"-"`
	Name          string          `json:"name" example:"New laptop"`
	Category      string          `json:"category" example:"Electronics"`
	TargetAmount  decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)" example:"1500"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)" example:"400"`
	IsCompleted   bool            `json:"isCompleted" example:"false"`
	TargetDate    time.Time       `json:"targetDate" example:"2025-12-01T00:00:00Z"`
	TransferType  TransferType    `json:"transferType" example:"EXPENSE"`
	Purpose       string          `json:"purpose" example:"Work"`
	TargetItem    string          `json:"targetItem" example:"Framework 13"`
}

func (g *SavingGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Category = strings.TrimSpace(g.Category)
	g.Purpose = strings.TrimSpace(g.Purpose)
	g.TargetItem = strings.TrimSpace(g.TargetItem)
	g.TargetDate = g.TargetDate.In(time.UTC)

	return nil
}

// Remaining returns how much is missing until the target is reached.
func (g SavingGoal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}
