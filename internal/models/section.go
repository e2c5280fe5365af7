package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// SectionName names one side of a money movement.
type SectionName string

const (
	SectionNone        SectionName = ""
	SectionSavings     SectionName = "savings"
	SectionExpenses    SectionName = "expenses"
	SectionInvestments SectionName = "investments"
	SectionIncome      SectionName = "income"
)

// BalanceSections are the sections that carry a balance in the Section row.
var BalanceSections = []SectionName{SectionSavings, SectionExpenses, SectionInvestments}

// Valid reports whether s may appear as the source or destination of a transaction.
func (s SectionName) Valid() bool {
	return s == SectionNone || s == SectionIncome || s.HasBalance()
}

// HasBalance reports whether s is one of the three balance-bearing sections.
func (s SectionName) HasBalance() bool {
	return slices.Contains(BalanceSections, s)
}

// Section holds the three balances of a user.
type Section struct {
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;primaryKey" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	User        User            `json:"-"`
	Savings     decimal.Decimal `json:"savings" gorm:"type:DECIMAL(20,8)" example:"1200"`
	Expenses    decimal.Decimal `json:"expenses" gorm:"type:DECIMAL(20,8)" example:"310.5"`
	Investments decimal.Decimal `json:"investments" gorm:"type:DECIMAL(20,8)" example:"800"`
	Timestamps
}

// Balance returns the balance of the named section.
func (s Section) Balance(name SectionName) decimal.Decimal {
	switch name {
	case SectionSavings:
		return s.Savings
	case SectionExpenses:
		return s.Expenses
	case SectionInvestments:
		return s.Investments
	}

	return decimal.Zero
}

// SetBalance sets the balance of the named section. Names without a balance are ignored.
func (s *Section) SetBalance(name SectionName, amount decimal.Decimal) {
	switch name {
	case SectionSavings:
		s.Savings = amount
	case SectionExpenses:
		s.Expenses = amount
	case SectionInvestments:
		s.Investments = amount
	}
}
