package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investment is money moved out of the investments section into an asset.
//
// It is closed exactly once, when an investment return is recorded for it.
type Investment struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"type:uuid;index" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	User           User            `json:"-"`
	AssetName      string          `json:"assetName" example:"MSCI World ETF"`
	InvestmentType string          `json:"investmentType" example:"etf"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1000"`
	TotalReturn    decimal.Decimal `json:"totalReturn" gorm:"type:DECIMAL(20,8)" example:"1120"`
	IsClosed       bool            `json:"isClosed" example:"false"`
	Notes          string          `json:"notes" example:"Monthly savings plan"`
}

func (i *Investment) BeforeSave(_ *gorm.DB) error {
	i.AssetName = strings.TrimSpace(i.AssetName)
	i.InvestmentType = strings.TrimSpace(i.InvestmentType)
	i.Notes = strings.TrimSpace(i.Notes)

	return nil
}
