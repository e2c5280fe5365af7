package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeAutomatic    TransactionType = "automatic"
	TransactionTypeManual       TransactionType = "manual"
	TransactionTypeLeftover     TransactionType = "leftover"
	TransactionTypeGoalTransfer TransactionType = "goal-transfer"
	TransactionTypeRefund       TransactionType = "refund"
)

// TransactionTypes lists every valid transaction type.
var TransactionTypes = []TransactionType{
	TransactionTypeAutomatic,
	TransactionTypeManual,
	TransactionTypeLeftover,
	TransactionTypeGoalTransfer,
	TransactionTypeRefund,
}

func (t TransactionType) Valid() bool {
	return slices.Contains(TransactionTypes, t)
}

// Transaction is an immutable record of a money movement.
//
// Only the description may change after creation.
type Transaction struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"type:uuid;index" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	User        User            `json:"-"`
	Type        TransactionType `json:"type" gorm:"index" example:"automatic"`
	FromSection SectionName     `json:"fromSection,omitempty" example:"income"`
	ToSection   SectionName     `json:"toSection,omitempty" example:"savings"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"300"`
	Description string          `json:"description" example:"Distribution from income to savings"`
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	return nil
}
