package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Delta maps balance-bearing sections to a signed change of their balance.
type Delta map[models.SectionName]decimal.Decimal

// Sections owns the three section balances of every user.
type Sections struct {
	store        *store
	transactions *Transactions
}

// Snapshot returns the current balances of the user.
func (s *Sections) Snapshot(ctx context.Context, userID uuid.UUID) (section models.Section, err error) {
	err = s.store.do(ctx, userID, func(u *unit) error {
		section, err = s.snapshot(u)
		return err
	})

	return section, err
}

// Adjustment sets sections to new balances.
type Adjustment struct {
	Savings     *decimal.Decimal `json:"savings" example:"1200"`
	Expenses    *decimal.Decimal `json:"expenses" example:"300"`
	Investments *decimal.Decimal `json:"investments" example:"0"`
	Description string           `json:"description" example:"Correction after bank statement"`
}

// Adjust sets the given sections to the requested balances. Every difference is
// recorded as a manual transaction into or out of the section, so the balances
// keep matching the ledger.
func (s *Sections) Adjust(ctx context.Context, userID uuid.UUID, adjustment Adjustment) (section models.Section, err error) {
	targets := map[models.SectionName]*decimal.Decimal{
		models.SectionSavings:     adjustment.Savings,
		models.SectionExpenses:    adjustment.Expenses,
		models.SectionInvestments: adjustment.Investments,
	}

	for name, target := range targets {
		if target != nil && target.IsNegative() {
			return models.Section{}, validationError("the %s balance must not be negative", name)
		}
	}

	err = s.store.do(ctx, userID, func(u *unit) error {
		current, err := s.snapshot(u)
		if err != nil {
			return err
		}

		for _, name := range models.BalanceSections {
			target := targets[name]
			if target == nil {
				continue
			}

			diff := target.Sub(current.Balance(name))
			description := adjustment.Description
			if description == "" {
				description = fmt.Sprintf("Manual adjustment of %s", name)
			}

			entry := Entry{Type: models.TransactionTypeManual, Amount: diff.Abs(), Description: description}
			switch {
			case diff.IsPositive():
				entry.ToSection = name
			case diff.IsNegative():
				entry.FromSection = name
			default:
				continue
			}

			if _, err := s.transactions.record(u, entry); err != nil {
				return err
			}
		}

		section, err = s.snapshot(u)
		return err
	})

	return section, err
}

func (s *Sections) snapshot(u *unit) (models.Section, error) {
	var section models.Section
	err := find(u.tx, &section, "user_id = ?", u.userID)
	return section, err
}

// applyDelta adds every delta to the corresponding balance. It fails
// without writing anything if any balance would become negative.
func (s *Sections) applyDelta(u *unit, delta Delta) (models.Section, error) {
	for name := range delta {
		if !name.HasBalance() {
			return models.Section{}, validationError("%q is not a section with a balance", name)
		}
	}

	var section models.Section
	err := find(u.forUpdate(), &section, "user_id = ?", u.userID)
	if err != nil {
		return section, err
	}

	for _, name := range models.BalanceSections {
		d, ok := delta[name]
		if !ok || d.IsZero() {
			continue
		}

		balance := section.Balance(name)
		next := balance.Add(d)
		if next.IsNegative() {
			return section, insufficient(string(name), balance, d.Neg())
		}
		section.SetBalance(name, next)
	}

	err = u.tx.Model(&section).Updates(map[string]any{
		"savings":     section.Savings,
		"expenses":    section.Expenses,
		"investments": section.Investments,
	}).Error

	return section, err
}
