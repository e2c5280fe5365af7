package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/models"
	"github.com/sectionledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Summaries reports on the ledger of past months.
type Summaries struct {
	store *store
}

// SectionSummary is the money that flowed into and out of one section.
type SectionSummary struct {
	Section models.SectionName `json:"section" example:"savings"`
	In      decimal.Decimal    `json:"in" example:"900"`
	Out     decimal.Decimal    `json:"out" example:"150"`
	Net     decimal.Decimal    `json:"net" example:"750"`
}

// MonthSummary is the activity of a user in one calendar month.
type MonthSummary struct {
	Month        types.Month      `json:"month" example:"2024-05-01T00:00:00Z"`
	Income       decimal.Decimal  `json:"income" example:"3000"`
	Sections     []SectionSummary `json:"sections"`
	Transactions int              `json:"transactions" example:"12"`
}

// Month sums up the transactions and the income of the user in month.
func (s *Summaries) Month(ctx context.Context, userID uuid.UUID, month types.Month) (summary MonthSummary, err error) {
	if month.IsZero() {
		return summary, validationError("the month must be set")
	}

	start := time.Time(month)
	end := time.Time(month.AddDate(0, 1))

	err = s.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.tx, &models.User{}, "id = ?", userID); err != nil {
			return err
		}

		var transactions []models.Transaction
		err := u.tx.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).Find(&transactions).Error
		if err != nil {
			return err
		}

		var incomes []models.Income
		err = u.tx.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).Find(&incomes).Error
		if err != nil {
			return err
		}

		summary = summarize(month, transactions, incomes)
		return nil
	})

	return summary, err
}

func summarize(month types.Month, transactions []models.Transaction, incomes []models.Income) MonthSummary {
	summary := MonthSummary{
		Month:        month,
		Income:       decimal.Zero,
		Transactions: len(transactions),
	}

	flows := map[models.SectionName]*SectionSummary{}
	for _, name := range models.BalanceSections {
		flows[name] = &SectionSummary{Section: name, In: decimal.Zero, Out: decimal.Zero}
	}

	for _, t := range transactions {
		if f, ok := flows[t.FromSection]; ok {
			f.Out = f.Out.Add(t.Amount)
		}
		if f, ok := flows[t.ToSection]; ok {
			f.In = f.In.Add(t.Amount)
		}
	}

	for _, name := range models.BalanceSections {
		f := flows[name]
		f.Net = f.In.Sub(f.Out)
		summary.Sections = append(summary.Sections, *f)
	}

	for _, i := range incomes {
		summary.Income = summary.Income.Add(i.Amount)
	}

	return summary
}
