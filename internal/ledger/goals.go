package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sectionledger/backend/internal/events"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Goals manages saving goals and the money moved in and out of them.
//
// A goal is open until its current amount reaches the target. It then
// completes exactly once and pays the target out to its destination section.
// Deleting an open goal returns its current amount to savings.
type Goals struct {
	store        *store
	transactions *Transactions
	locale       language.Tag
}

// GoalCreate holds the fields of a new goal.
type GoalCreate struct {
	Name         string              `json:"name" example:"New laptop"`
	Category     string              `json:"category" example:"Electronics"`
	TargetAmount decimal.Decimal     `json:"targetAmount" example:"1500"`
	TargetDate   time.Time           `json:"targetDate" example:"2025-12-01T00:00:00Z"`
	TransferType models.TransferType `json:"transferType" example:"EXPENSE"`
	Purpose      string              `json:"purpose" example:"Work"`
	TargetItem   string              `json:"targetItem" example:"Framework 13"`
}

// GoalUpdate holds the fields to change on a goal. Nil fields are left untouched.
type GoalUpdate struct {
	Name         *string              `json:"name" example:"New laptop"`
	Category     *string              `json:"category" example:"Electronics"`
	TargetAmount *decimal.Decimal     `json:"targetAmount" example:"1600"`
	TargetDate   *time.Time           `json:"targetDate" example:"2026-01-01T00:00:00Z"`
	TransferType *models.TransferType `json:"transferType" example:"INVESTMENT"`
	Purpose      *string              `json:"purpose" example:"Work"`
	TargetItem   *string              `json:"targetItem" example:"Framework 16"`
}

// Contribution is the outcome of a contribution to a goal.
type Contribution struct {
	Goal      models.SavingGoal `json:"goal"`
	Completed bool              `json:"completed" example:"true"`
	Excess    decimal.Decimal   `json:"excess" example:"200"`
	Message   string            `json:"message" example:"Goal completed! Amount of 800 transferred to expenses section."`
}

// Cancellation is the outcome of deleting a goal.
type Cancellation struct {
	Goal     models.SavingGoal `json:"goal"`
	Refunded decimal.Decimal   `json:"refunded" example:"300"`
}

func validateTransferType(t models.TransferType) error {
	switch t {
	case models.TransferTypeNone, models.TransferTypeExpense, models.TransferTypeInvestment:
		return nil
	}

	return validationError("%q is not a valid transfer type, use EXPENSE or INVESTMENT", t)
}

func (c GoalCreate) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return validationError("the goal name must not be empty")
	}

	if strings.TrimSpace(c.Category) == "" {
		return validationError("the goal category must not be empty")
	}

	if !c.TargetAmount.IsPositive() {
		return validationError("the target amount must be greater than zero")
	}

	return validateTransferType(c.TransferType)
}

// Create creates an open goal with nothing saved yet.
func (g *Goals) Create(ctx context.Context, userID uuid.UUID, create GoalCreate) (goal models.SavingGoal, err error) {
	if err := create.validate(); err != nil {
		return goal, err
	}

	err = g.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.tx, &models.User{}, "id = ?", userID); err != nil {
			return err
		}

		goal = models.SavingGoal{
			UserID:        userID,
			Name:          create.Name,
			Category:      create.Category,
			TargetAmount:  create.TargetAmount,
			CurrentAmount: decimal.Zero,
			TargetDate:    create.TargetDate,
			TransferType:  create.TransferType,
			Purpose:       create.Purpose,
			TargetItem:    create.TargetItem,
		}

		return u.tx.Create(&goal).Error
	})

	return goal, err
}

// Get returns one goal of the user.
func (g *Goals) Get(ctx context.Context, userID, id uuid.UUID) (goal models.SavingGoal, err error) {
	err = g.store.do(ctx, userID, func(u *unit) error {
		return find(u.tx, &goal, "id = ? AND user_id = ?", id, userID)
	})

	return goal, err
}

// List returns all goals of the user, newest first.
func (g *Goals) List(ctx context.Context, userID uuid.UUID) (goals []models.SavingGoal, err error) {
	goals = []models.SavingGoal{}
	err = g.store.do(ctx, userID, func(u *unit) error {
		return u.tx.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&goals).Error
	})

	return goals, err
}

// Update changes the descriptive fields and the target of a goal.
//
// The saved amount and the completion state only change through contributions.
func (g *Goals) Update(ctx context.Context, userID, id uuid.UUID, update GoalUpdate) (goal models.SavingGoal, err error) {
	if update.TransferType != nil {
		if err := validateTransferType(*update.TransferType); err != nil {
			return goal, err
		}
	}

	err = g.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.forUpdate(), &goal, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}

		if update.Name != nil {
			if strings.TrimSpace(*update.Name) == "" {
				return validationError("the goal name must not be empty")
			}
			goal.Name = *update.Name
		}

		if update.Category != nil {
			if strings.TrimSpace(*update.Category) == "" {
				return validationError("the goal category must not be empty")
			}
			goal.Category = *update.Category
		}

		if update.TargetAmount != nil && !update.TargetAmount.Equal(goal.TargetAmount) {
			if goal.IsCompleted {
				return invalidState("the target of a completed goal cannot change")
			}

			if !update.TargetAmount.GreaterThan(goal.CurrentAmount) {
				return validationError("the target amount must be greater than the current amount of %s", goal.CurrentAmount)
			}
			goal.TargetAmount = *update.TargetAmount
		}

		if update.TargetDate != nil {
			goal.TargetDate = *update.TargetDate
		}

		if update.TransferType != nil {
			goal.TransferType = *update.TransferType
		}

		if update.Purpose != nil {
			goal.Purpose = *update.Purpose
		}

		if update.TargetItem != nil {
			goal.TargetItem = *update.TargetItem
		}

		return u.tx.Select("Name", "Category", "TargetAmount", "TargetDate", "TransferType", "Purpose", "TargetItem").Updates(&goal).Error
	})

	return goal, err
}

// Contribute moves amount from savings into the goal.
//
// If the amount exceeds what is missing to the target, only the missing part
// leaves savings and the rest is reported as excess. Reaching the target
// completes the goal and pays the full target out to the goal's destination section.
func (g *Goals) Contribute(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (result Contribution, err error) {
	if !amount.IsPositive() {
		return result, validationError("the amount must be greater than zero")
	}

	err = g.store.do(ctx, userID, func(u *unit) error {
		result = Contribution{Excess: decimal.Zero}

		goal, err := g.lock(u, id)
		if err != nil {
			return err
		}

		if goal.IsCompleted {
			return invalidState("goal %q is already completed", goal.Name)
		}

		section, err := g.transactions.sections.snapshot(u)
		if err != nil {
			return err
		}

		if section.Savings.LessThan(amount) {
			return insufficient(string(models.SectionSavings), section.Savings, amount)
		}

		pulled := amount
		remaining := goal.Remaining()
		if amount.GreaterThan(remaining) {
			pulled = remaining
			result.Excess = amount.Sub(remaining)
		}

		goal.CurrentAmount = goal.CurrentAmount.Add(pulled)
		completes := !goal.CurrentAmount.LessThan(goal.TargetAmount)

		description := fmt.Sprintf("Contribution to savings goal: %s", goal.Name)
		if completes {
			description = fmt.Sprintf("Final contribution to savings goal: %s", goal.Name)
		}

		if pulled.IsPositive() {
			_, err = g.transactions.record(u, Entry{
				Type:        models.TransactionTypeGoalTransfer,
				FromSection: models.SectionSavings,
				Amount:      pulled,
				Description: description,
			})
			if err != nil {
				return err
			}
		}

		if completes {
			if err := g.complete(u, &goal); err != nil {
				return err
			}
		} else if err := u.tx.Model(&goal).Update("current_amount", goal.CurrentAmount).Error; err != nil {
			return err
		}

		result.Goal = goal
		result.Completed = completes
		result.Message = g.message(goal, pulled, result.Excess, completes)
		return nil
	})

	if err == nil && result.Completed {
		log.Debug().Str("user", userID.String()).Str("goal", id.String()).Str("amount", result.Goal.TargetAmount.String()).Msg("goal completed")
	}

	return result, err
}

// complete marks the goal as completed and pays out the target.
func (g *Goals) complete(u *unit, goal *models.SavingGoal) error {
	goal.CurrentAmount = goal.TargetAmount
	goal.IsCompleted = true

	result := u.tx.Model(goal).Where("is_completed = ?", false).Updates(map[string]any{
		"current_amount": goal.CurrentAmount,
		"is_completed":   true,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected != 1 {
		return invalidState("goal %q is already completed", goal.Name)
	}

	destination := goal.TransferType.Destination()
	purchase := "purchase"
	if destination == models.SectionInvestments {
		purchase = "investment"
	}

	description := fmt.Sprintf("Completed goal: %s - %s", goal.Name, goal.Category)
	if goal.Purpose != "" {
		description += fmt.Sprintf(" for %s", goal.Purpose)
	}
	if goal.TargetItem != "" {
		description += fmt.Sprintf(" (%s)", goal.TargetItem)
	}
	description += fmt.Sprintf(" - Ready for %s", purchase)

	_, err := g.transactions.record(u, Entry{
		Type:        models.TransactionTypeGoalTransfer,
		ToSection:   destination,
		Amount:      goal.TargetAmount,
		Description: description,
	})
	if err != nil {
		return err
	}

	u.emit(events.New(events.KindGoalCompleted, u.userID, goal.ID, goal.TargetAmount, string(destination)))
	return nil
}

// message returns the text shown to the user after a contribution.
func (g *Goals) message(goal models.SavingGoal, pulled, excess decimal.Decimal, completed bool) string {
	p := message.NewPrinter(g.locale)
	format := func(d decimal.Decimal) number.Formatter {
		return number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2))
	}

	if !completed {
		return p.Sprintf("Contribution of %v added to goal %s. %v remaining.", format(pulled), goal.Name, format(goal.Remaining()))
	}

	destination := goal.TransferType.Destination()
	msg := p.Sprintf("Goal completed! Amount of %v transferred to %s section.", format(goal.TargetAmount), destination)
	if excess.IsPositive() {
		msg += p.Sprintf(" Excess amount of %v returned to savings.", format(excess))
	}

	purchase := "purchase"
	if destination == models.SectionInvestments {
		purchase = "investment"
	}

	return msg + fmt.Sprintf(" Remember to make the %s when you're ready.", purchase)
}

// TransferToSavings moves amount from an open goal back to savings.
func (g *Goals) TransferToSavings(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (goal models.SavingGoal, err error) {
	if !amount.IsPositive() {
		return goal, validationError("the amount must be greater than zero")
	}

	err = g.store.do(ctx, userID, func(u *unit) error {
		goal, err = g.lock(u, id)
		if err != nil {
			return err
		}

		if goal.IsCompleted {
			return invalidState("the funds of completed goal %q have already been transferred out", goal.Name)
		}

		if amount.GreaterThan(goal.CurrentAmount) {
			return insufficient("goal", goal.CurrentAmount, amount)
		}

		goal.CurrentAmount = goal.CurrentAmount.Sub(amount)
		if err := u.tx.Model(&goal).Update("current_amount", goal.CurrentAmount).Error; err != nil {
			return err
		}

		_, err = g.transactions.record(u, Entry{
			Type:        models.TransactionTypeGoalTransfer,
			ToSection:   models.SectionSavings,
			Amount:      amount,
			Description: fmt.Sprintf("Transfer from savings goal: %s", goal.Name),
		})
		return err
	})

	return goal, err
}

// Delete removes a goal. The saved amount of an open goal is returned to
// savings. A completed goal has already paid out and refunds nothing.
func (g *Goals) Delete(ctx context.Context, userID, id uuid.UUID) (result Cancellation, err error) {
	err = g.store.do(ctx, userID, func(u *unit) error {
		result = Cancellation{Refunded: decimal.Zero}

		goal, err := g.lock(u, id)
		if err != nil {
			return err
		}

		if !goal.IsCompleted && goal.CurrentAmount.IsPositive() {
			_, err := g.transactions.record(u, Entry{
				Type:        models.TransactionTypeGoalTransfer,
				ToSection:   models.SectionSavings,
				Amount:      goal.CurrentAmount,
				Description: fmt.Sprintf("Canceled savings goal: %s", goal.Name),
			})
			if err != nil {
				return err
			}
			result.Refunded = goal.CurrentAmount
		}

		result.Goal = goal
		return u.tx.Delete(&goal).Error
	})

	return result, err
}

func (g *Goals) lock(u *unit, id uuid.UUID) (models.SavingGoal, error) {
	var goal models.SavingGoal
	err := find(u.forUpdate(), &goal, "id = ? AND user_id = ?", id, u.userID)
	return goal, err
}
