package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sectionledger/backend/internal/events"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Allocation is how an amount of income is split across the sections.
type Allocation struct {
	Total           decimal.Decimal    `json:"total"`
	Savings         decimal.Decimal    `json:"savings"`
	Expenses        decimal.Decimal    `json:"expenses"`
	Investments     decimal.Decimal    `json:"investments"`
	Leftover        decimal.Decimal    `json:"leftover"`
	LeftoverSection models.SectionName `json:"leftoverSection"`
}

// Allocate splits total by the percentages of the user. Every share is rounded
// down to whole units. Whatever the rounding leaves over goes to the leftover section.
func Allocate(total decimal.Decimal, user models.User) Allocation {
	share := func(percent decimal.Decimal) decimal.Decimal {
		return percent.Mul(total).Div(hundred).Floor()
	}

	a := Allocation{
		Total:           total,
		Savings:         share(user.SavingsPercent),
		Expenses:        share(user.ExpensesPercent),
		Investments:     share(user.InvestmentsPercent),
		LeftoverSection: user.LeftoverAction,
	}

	if !a.LeftoverSection.HasBalance() {
		a.LeftoverSection = models.SectionSavings
	}

	a.Leftover = total.Sub(a.Savings).Sub(a.Expenses).Sub(a.Investments)
	return a
}

// Distributor moves the income pool into the sections.
type Distributor struct {
	store        *store
	transactions *Transactions
	income       *IncomePool
}

// Distribute splits all undistributed income of the user across the sections
// according to the user's percentages and returns the new balances.
//
// The percentage shares are recorded first, then the leftover. The income pool
// is emptied in the same unit of work.
func (d *Distributor) Distribute(ctx context.Context, userID uuid.UUID) (section models.Section, err error) {
	if err := d.income.ensure(ctx, userID); err != nil {
		return section, err
	}

	err = d.store.do(ctx, userID, func(u *unit) error {
		var user models.User
		if err := find(u.tx, &user, "id = ?", userID); err != nil {
			return err
		}

		if err := validatePercentages(user.SavingsPercent, user.ExpensesPercent, user.InvestmentsPercent); err != nil {
			return err
		}

		pool, err := d.income.pool(u)
		if err != nil {
			return err
		}

		if !pool.Amount.IsPositive() {
			return validationError("no income available to distribute")
		}

		allocation := Allocate(pool.Amount, user)

		shares := []struct {
			section models.SectionName
			amount  decimal.Decimal
		}{
			{models.SectionSavings, allocation.Savings},
			{models.SectionExpenses, allocation.Expenses},
			{models.SectionInvestments, allocation.Investments},
		}

		for _, share := range shares {
			if !share.amount.IsPositive() {
				continue
			}

			_, err := d.transactions.record(u, Entry{
				Type:        models.TransactionTypeAutomatic,
				FromSection: models.SectionIncome,
				ToSection:   share.section,
				Amount:      share.amount,
				Description: fmt.Sprintf("Distribution from income to %s", share.section),
			})
			if err != nil {
				return err
			}
		}

		if allocation.Leftover.IsPositive() {
			_, err := d.transactions.record(u, Entry{
				Type:        models.TransactionTypeLeftover,
				FromSection: models.SectionIncome,
				ToSection:   allocation.LeftoverSection,
				Amount:      allocation.Leftover,
				Description: fmt.Sprintf("Distribution of remaining amount to %s", allocation.LeftoverSection),
			})
			if err != nil {
				return err
			}
		}

		if err := d.income.deduct(u, pool.Amount); err != nil {
			return err
		}

		u.emit(events.New(events.KindIncomeDistributed, userID, userID, pool.Amount, string(allocation.LeftoverSection)))

		section, err = d.transactions.sections.snapshot(u)
		return err
	})

	if err == nil {
		log.Debug().Str("user", userID.String()).Str("savings", section.Savings.String()).Str("expenses", section.Expenses.String()).Str("investments", section.Investments.String()).Msg("distributed income")
	}

	return section, err
}
