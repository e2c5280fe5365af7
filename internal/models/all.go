package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Owned is the list of all models that belong to a user, in the order
// in which they must be removed when the user is deleted.
//
// It is maintained so that operations that affect all of a user's data do not need
// to explicitly iterate over every single model, reducing the risk of forgetting
// something when adding a new model.
var Owned = []any{
	&Transaction{},
	&Expense{},
	&Income{},
	&Investment{},
	&SavingGoal{},
	&IncomePool{},
	&Section{},
}

// SectionFlow returns the signed sum of all transactions of a user for a section:
// the sum of all amounts flowing into the section minus the sum of all amounts
// flowing out of it.
func SectionFlow(db *gorm.DB, userID uuid.UUID, section SectionName) (decimal.Decimal, error) {
	var outgoingSum, incomingSum decimal.NullDecimal

	err := db.Model(&Transaction{}).
		Where(&Transaction{UserID: userID, FromSection: section}).
		Select("SUM(amount)").
		Row().
		Scan(&outgoingSum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing transactions from %s failed: %w", section, err)
	}

	err = db.Model(&Transaction{}).
		Where(&Transaction{UserID: userID, ToSection: section}).
		Select("SUM(amount)").
		Row().
		Scan(&incomingSum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing transactions to %s failed: %w", section, err)
	}

	return incomingSum.Decimal.Sub(outgoingSum.Decimal), nil
}
