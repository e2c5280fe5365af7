package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Expenses tracks money spent from the expenses section.
type Expenses struct {
	store        *store
	transactions *Transactions
}

// ExpenseCreate holds the fields of a new expense.
type ExpenseCreate struct {
	Amount      decimal.Decimal `json:"amount" example:"42.9"`
	Category    string          `json:"category" example:"Groceries"`
	Description string          `json:"description" example:"Weekly shopping"`
	Date        time.Time       `json:"date" example:"2024-05-04T00:00:00Z"`
}

// ExpenseUpdate holds the fields of an expense to change.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal `json:"amount" example:"45"`
	Category    *string          `json:"category" example:"Groceries"`
	Description *string          `json:"description" example:"Weekly shopping"`
	Date        *time.Time       `json:"date" example:"2024-05-04T00:00:00Z"`
}

func label(e models.Expense) string {
	if e.Description != "" {
		return e.Description
	}

	return e.Category
}

// Create records an expense and takes its amount from the expenses section.
func (e *Expenses) Create(ctx context.Context, userID uuid.UUID, create ExpenseCreate) (expense models.Expense, err error) {
	if !create.Amount.IsPositive() {
		return expense, validationError("the amount must be greater than zero")
	}

	if strings.TrimSpace(create.Category) == "" {
		return expense, validationError("the category must not be empty")
	}

	err = e.store.do(ctx, userID, func(u *unit) error {
		expense = models.Expense{
			UserID:      userID,
			Amount:      create.Amount,
			Category:    create.Category,
			Description: create.Description,
			Date:        create.Date,
		}

		if err := u.tx.Create(&expense).Error; err != nil {
			return err
		}

		_, err := e.transactions.record(u, Entry{
			Type:        models.TransactionTypeManual,
			FromSection: models.SectionExpenses,
			Amount:      expense.Amount,
			Description: fmt.Sprintf("Expense: %s", label(expense)),
		})
		return err
	})

	return expense, err
}

// Get returns one expense of the user.
func (e *Expenses) Get(ctx context.Context, userID, id uuid.UUID) (expense models.Expense, err error) {
	err = e.store.do(ctx, userID, func(u *unit) error {
		return find(u.tx, &expense, "id = ? AND user_id = ?", id, userID)
	})

	return expense, err
}

// List returns the expenses of the user, latest date first.
func (e *Expenses) List(ctx context.Context, userID uuid.UUID, opts PageOptions) (page Page[models.Expense], err error) {
	err = e.store.do(ctx, userID, func(u *unit) error {
		q := u.tx.Model(&models.Expense{}).Where("user_id = ?", userID).Order("date DESC, id DESC")
		page, err = paginate[models.Expense](q, opts)
		return err
	})

	return page, err
}

// Update changes an expense. A changed amount refunds the old amount and
// takes the new one from the expenses section.
func (e *Expenses) Update(ctx context.Context, userID, id uuid.UUID, update ExpenseUpdate) (expense models.Expense, err error) {
	if update.Amount != nil && !update.Amount.IsPositive() {
		return expense, validationError("the amount must be greater than zero")
	}

	if update.Category != nil && strings.TrimSpace(*update.Category) == "" {
		return expense, validationError("the category must not be empty")
	}

	err = e.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.forUpdate(), &expense, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}

		if update.Amount != nil && !update.Amount.Equal(expense.Amount) {
			_, err := e.transactions.record(u, Entry{
				Type:        models.TransactionTypeRefund,
				ToSection:   models.SectionExpenses,
				Amount:      expense.Amount,
				Description: fmt.Sprintf("Refund for updated expense: %s", label(expense)),
			})
			if err != nil {
				return err
			}

			_, err = e.transactions.record(u, Entry{
				Type:        models.TransactionTypeManual,
				FromSection: models.SectionExpenses,
				Amount:      *update.Amount,
				Description: fmt.Sprintf("Updated expense: %s", label(expense)),
			})
			if err != nil {
				return err
			}

			expense.Amount = *update.Amount
		}

		if update.Category != nil {
			expense.Category = *update.Category
		}

		if update.Description != nil {
			expense.Description = *update.Description
		}

		if update.Date != nil {
			expense.Date = *update.Date
		}

		return u.tx.Select("Amount", "Category", "Description", "Date").Updates(&expense).Error
	})

	return expense, err
}

// Delete removes an expense and refunds its amount to the expenses section.
func (e *Expenses) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return e.store.do(ctx, userID, func(u *unit) error {
		var expense models.Expense
		if err := find(u.forUpdate(), &expense, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}

		_, err := e.transactions.record(u, Entry{
			Type:        models.TransactionTypeRefund,
			ToSection:   models.SectionExpenses,
			Amount:      expense.Amount,
			Description: fmt.Sprintf("Refund for deleted expense: %s", label(expense)),
		})
		if err != nil {
			return err
		}

		return u.tx.Delete(&expense).Error
	})
}
