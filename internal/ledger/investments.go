package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/events"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Investments tracks money moved from the investments section into assets.
type Investments struct {
	store        *store
	transactions *Transactions
}

// InvestmentCreate holds the fields of a new investment.
type InvestmentCreate struct {
	AssetName      string          `json:"assetName" example:"MSCI World ETF"`
	InvestmentType string          `json:"investmentType" example:"etf"`
	Amount         decimal.Decimal `json:"amount" example:"1000"`
	Notes          string          `json:"notes" example:"Monthly savings plan"`
}

// InvestmentUpdate holds the descriptive fields of an investment to change.
type InvestmentUpdate struct {
	AssetName      *string `json:"assetName" example:"MSCI World ETF"`
	InvestmentType *string `json:"investmentType" example:"etf"`
	Notes          *string `json:"notes" example:"Monthly savings plan"`
}

// Create buys an investment with money from the investments section.
func (i *Investments) Create(ctx context.Context, userID uuid.UUID, create InvestmentCreate) (investment models.Investment, err error) {
	if strings.TrimSpace(create.AssetName) == "" {
		return investment, validationError("the asset name must not be empty")
	}

	if !create.Amount.IsPositive() {
		return investment, validationError("the amount must be greater than zero")
	}

	err = i.store.do(ctx, userID, func(u *unit) error {
		_, err := i.transactions.record(u, Entry{
			Type:        models.TransactionTypeManual,
			FromSection: models.SectionInvestments,
			Amount:      create.Amount,
			Description: fmt.Sprintf("Investment in %s", strings.TrimSpace(create.AssetName)),
		})
		if err != nil {
			return err
		}

		investment = models.Investment{
			UserID:         userID,
			AssetName:      create.AssetName,
			InvestmentType: create.InvestmentType,
			Amount:         create.Amount,
			TotalReturn:    decimal.Zero,
			Notes:          create.Notes,
		}

		return u.tx.Create(&investment).Error
	})

	return investment, err
}

// Get returns one investment of the user.
func (i *Investments) Get(ctx context.Context, userID, id uuid.UUID) (investment models.Investment, err error) {
	err = i.store.do(ctx, userID, func(u *unit) error {
		return find(u.tx, &investment, "id = ? AND user_id = ?", id, userID)
	})

	return investment, err
}

// List returns the investments of the user, newest first.
func (i *Investments) List(ctx context.Context, userID uuid.UUID, opts PageOptions) (page Page[models.Investment], err error) {
	err = i.store.do(ctx, userID, func(u *unit) error {
		q := u.tx.Model(&models.Investment{}).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
		page, err = paginate[models.Investment](q, opts)
		return err
	})

	return page, err
}

// Update changes the descriptive fields of an investment. The amount is fixed.
func (i *Investments) Update(ctx context.Context, userID, id uuid.UUID, update InvestmentUpdate) (investment models.Investment, err error) {
	err = i.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.forUpdate(), &investment, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}

		if update.AssetName != nil {
			if strings.TrimSpace(*update.AssetName) == "" {
				return validationError("the asset name must not be empty")
			}
			investment.AssetName = *update.AssetName
		}

		if update.InvestmentType != nil {
			investment.InvestmentType = *update.InvestmentType
		}

		if update.Notes != nil {
			investment.Notes = *update.Notes
		}

		return u.tx.Select("AssetName", "InvestmentType", "Notes").Updates(&investment).Error
	})

	return investment, err
}

// Delete removes an investment. An open investment is refunded to the
// investments section. A closed one has already returned its money as income.
func (i *Investments) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return i.store.do(ctx, userID, func(u *unit) error {
		var investment models.Investment
		if err := find(u.forUpdate(), &investment, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}

		if !investment.IsClosed {
			_, err := i.transactions.record(u, Entry{
				Type:        models.TransactionTypeRefund,
				ToSection:   models.SectionInvestments,
				Amount:      investment.Amount,
				Description: fmt.Sprintf("Refund for deleted investment: %s", investment.AssetName),
			})
			if err != nil {
				return err
			}
		}

		return u.tx.Delete(&investment).Error
	})
}

// close marks the investment as closed with its total return. An
// investment can be closed only once.
func (i *Investments) close(u *unit, id uuid.UUID, totalReturn decimal.Decimal) (models.Investment, error) {
	var investment models.Investment
	if err := find(u.forUpdate(), &investment, "id = ? AND user_id = ?", id, u.userID); err != nil {
		return investment, err
	}

	if investment.IsClosed {
		return investment, invalidState("investment %q is already closed", investment.AssetName)
	}

	investment.IsClosed = true
	investment.TotalReturn = totalReturn

	result := u.tx.Model(&investment).Where("is_closed = ?", false).Updates(map[string]any{
		"is_closed":    true,
		"total_return": totalReturn,
	})
	if result.Error != nil {
		return investment, result.Error
	}

	if result.RowsAffected != 1 {
		return investment, invalidState("investment %q is already closed", investment.AssetName)
	}

	u.emit(events.New(events.KindInvestmentClosed, u.userID, investment.ID, totalReturn, investment.AssetName))
	return investment, nil
}
