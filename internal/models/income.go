package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IncomeType string

const (
	IncomeTypeRegular          IncomeType = "regular"
	IncomeTypeInvestmentReturn IncomeType = "investment_return"
)

// Income is a single received income.
type Income struct {
	DefaultModel
	UserID       uuid.UUID       `json:"userId" gorm:"type:uuid;index" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	User         User            `json:"-"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"2500"`
	Type         IncomeType      `json:"type" example:"regular"`
	InvestmentID *uuid.UUID      `json:"investmentId" gorm:"type:uuid" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	Description  string          `json:"description" example:"Salary"`
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Description = strings.TrimSpace(i.Description)

	if i.Type == "" {
		i.Type = IncomeTypeRegular
	}

	return nil
}

// IncomePool is the undistributed income of a user.
type IncomePool struct {
	UserID uuid.UUID       `json:"userId" gorm:"type:uuid;primaryKey" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	User   User            `json:"-"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1200"`
	Timestamps
}
