package ledger

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Accounts manages the user profiles the ledger belongs to.
type Accounts struct {
	store *store
}

// UserCreate holds the fields of a new user.
type UserCreate struct {
	Name               string             `json:"name" example:"Alex"`
	Email              string             `json:"email" example:"alex@example.com"`
	SavingsPercent     decimal.Decimal    `json:"savingsPercent" example:"30"`
	ExpensesPercent    decimal.Decimal    `json:"expensesPercent" example:"50"`
	InvestmentsPercent decimal.Decimal    `json:"investmentsPercent" example:"20"`
	LeftoverAction     models.SectionName `json:"leftoverAction" example:"savings"`
}

// Preferences holds the allocation preferences to change.
type Preferences struct {
	Name               *string             `json:"name" example:"Alex"`
	SavingsPercent     *decimal.Decimal    `json:"savingsPercent" example:"30"`
	ExpensesPercent    *decimal.Decimal    `json:"expensesPercent" example:"50"`
	InvestmentsPercent *decimal.Decimal    `json:"investmentsPercent" example:"20"`
	LeftoverAction     *models.SectionName `json:"leftoverAction" example:"savings"`
}

// validatePercentages checks that every percentage is between 0 and 100
// and that together they do not exceed 100.
func validatePercentages(savings, expenses, investments decimal.Decimal) error {
	for name, p := range map[string]decimal.Decimal{"savings": savings, "expenses": expenses, "investments": investments} {
		if p.IsNegative() || p.GreaterThan(hundred) {
			return validationError("the %s percentage must be between 0 and 100", name)
		}
	}

	if savings.Add(expenses).Add(investments).GreaterThan(hundred) {
		return validationError("the percentages must not add up to more than 100")
	}

	return nil
}

func validateLeftover(s models.SectionName) error {
	if s != models.SectionNone && !s.HasBalance() {
		return validationError("%q is not a valid leftover action", s)
	}

	return nil
}

// Open creates a user together with empty sections and an empty income pool.
func (a *Accounts) Open(ctx context.Context, create UserCreate) (user models.User, err error) {
	if strings.TrimSpace(create.Name) == "" {
		return user, validationError("the name must not be empty")
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(create.Email)); err != nil {
		return user, validationError("%q is not a valid email address", create.Email)
	}

	if err := validatePercentages(create.SavingsPercent, create.ExpensesPercent, create.InvestmentsPercent); err != nil {
		return user, err
	}

	if err := validateLeftover(create.LeftoverAction); err != nil {
		return user, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return user, err
	}

	err = a.store.do(ctx, id, func(u *unit) error {
		user = models.User{
			DefaultModel:       models.DefaultModel{ID: id},
			Name:               create.Name,
			Email:              create.Email,
			SavingsPercent:     create.SavingsPercent,
			ExpensesPercent:    create.ExpensesPercent,
			InvestmentsPercent: create.InvestmentsPercent,
			LeftoverAction:     create.LeftoverAction,
			SavingsBalance:     decimal.Zero,
		}

		if err := u.tx.Create(&user).Error; err != nil {
			return err
		}

		zero := decimal.Zero
		if err := u.tx.Create(&models.Section{UserID: id, Savings: zero, Expenses: zero, Investments: zero}).Error; err != nil {
			return err
		}

		return u.tx.Create(&models.IncomePool{UserID: id, Amount: zero}).Error
	})

	return user, err
}

// Get returns the profile of a user.
func (a *Accounts) Get(ctx context.Context, userID uuid.UUID) (user models.User, err error) {
	err = a.store.do(ctx, userID, func(u *unit) error {
		return find(u.tx, &user, "id = ?", userID)
	})

	return user, err
}

// UpdatePreferences changes the name and the allocation preferences of a user.
// The resulting set of percentages is validated as a whole.
func (a *Accounts) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs Preferences) (user models.User, err error) {
	if prefs.Name != nil && strings.TrimSpace(*prefs.Name) == "" {
		return user, validationError("the name must not be empty")
	}

	if prefs.LeftoverAction != nil {
		if err := validateLeftover(*prefs.LeftoverAction); err != nil {
			return user, err
		}
	}

	err = a.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.forUpdate(), &user, "id = ?", userID); err != nil {
			return err
		}

		if prefs.Name != nil {
			user.Name = *prefs.Name
		}
		if prefs.SavingsPercent != nil {
			user.SavingsPercent = *prefs.SavingsPercent
		}
		if prefs.ExpensesPercent != nil {
			user.ExpensesPercent = *prefs.ExpensesPercent
		}
		if prefs.InvestmentsPercent != nil {
			user.InvestmentsPercent = *prefs.InvestmentsPercent
		}
		if prefs.LeftoverAction != nil {
			user.LeftoverAction = *prefs.LeftoverAction
		}

		if err := validatePercentages(user.SavingsPercent, user.ExpensesPercent, user.InvestmentsPercent); err != nil {
			return err
		}

		return u.tx.Select("Name", "SavingsPercent", "ExpensesPercent", "InvestmentsPercent", "LeftoverAction").Updates(&user).Error
	})

	return user, err
}

// Close deletes a user and everything that belongs to them.
func (a *Accounts) Close(ctx context.Context, userID uuid.UUID) error {
	err := a.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.forUpdate(), &models.User{}, "id = ?", userID); err != nil {
			return err
		}

		for _, model := range models.Owned {
			if err := u.tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}

		return u.tx.Delete(&models.User{}, "id = ?", userID).Error
	})

	if err == nil {
		log.Info().Str("user", userID.String()).Msg("closed account")
	}

	return err
}
