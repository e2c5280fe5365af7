package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm/clause"
)

// IncomePool tracks income that has been received but not distributed yet.
type IncomePool struct {
	store        *store
	transactions *Transactions
	investments  *Investments
	repairs      singleflight.Group
	repaired     sync.Map
}

// IncomeCreate describes received income.
type IncomeCreate struct {
	Amount       decimal.Decimal   `json:"amount" example:"2500"`
	Type         models.IncomeType `json:"type" example:"regular"`
	InvestmentID *uuid.UUID        `json:"investmentId" example:"0190b3e2-5b7e-7c4a-9d1f-4f5e6a7b8c9d"`
	Description  string            `json:"description" example:"Salary"`
}

func (c IncomeCreate) validate() error {
	if !c.Amount.IsPositive() {
		return validationError("the amount must be greater than zero")
	}

	switch c.Type {
	case "", models.IncomeTypeRegular:
		if c.InvestmentID != nil {
			return validationError("only investment returns can reference an investment")
		}
	case models.IncomeTypeInvestmentReturn:
		if c.InvestmentID == nil || *c.InvestmentID == uuid.Nil {
			return validationError("an investment return must reference an investment")
		}
	default:
		return validationError("%q is not a valid income type", c.Type)
	}

	return nil
}

// Add records received income and makes it available for distribution.
//
// An investment return closes the referenced investment.
func (p *IncomePool) Add(ctx context.Context, userID uuid.UUID, create IncomeCreate) (income models.Income, err error) {
	if err := create.validate(); err != nil {
		return income, err
	}

	if err := p.ensure(ctx, userID); err != nil {
		return income, err
	}

	err = p.store.do(ctx, userID, func(u *unit) error {
		income = models.Income{
			UserID:       userID,
			Amount:       create.Amount,
			Type:         create.Type,
			InvestmentID: create.InvestmentID,
		}

		description := create.Description
		if create.Type == models.IncomeTypeInvestmentReturn {
			investment, err := p.investments.close(u, *create.InvestmentID, create.Amount)
			if err != nil {
				return err
			}

			if description == "" {
				description = fmt.Sprintf("Return from investment: %s", investment.AssetName)
			}
		}

		if description == "" {
			description = "Income received"
		}
		income.Description = description

		if err := u.tx.Create(&income).Error; err != nil {
			return err
		}

		if err := p.increment(u, create.Amount); err != nil {
			return err
		}

		_, err := p.transactions.record(u, Entry{
			Type:        models.TransactionTypeManual,
			ToSection:   models.SectionIncome,
			Amount:      create.Amount,
			Description: description,
		})
		return err
	})

	return income, err
}

// List returns the income history of a user, newest first.
func (p *IncomePool) List(ctx context.Context, userID uuid.UUID, opts PageOptions) (page Page[models.Income], err error) {
	err = p.store.do(ctx, userID, func(u *unit) error {
		q := u.tx.Model(&models.Income{}).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
		page, err = paginate[models.Income](q, opts)
		return err
	})

	return page, err
}

// Total returns the undistributed income of the user.
func (p *IncomePool) Total(ctx context.Context, userID uuid.UUID) (total decimal.Decimal, err error) {
	if err := p.ensure(ctx, userID); err != nil {
		return total, err
	}

	err = p.store.do(ctx, userID, func(u *unit) error {
		pool, err := p.pool(u)
		total = pool.Amount
		return err
	})

	return total, err
}

// Deduct removes amount from the undistributed income.
func (p *IncomePool) Deduct(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationError("the amount must be greater than zero")
	}

	if err := p.ensure(ctx, userID); err != nil {
		return err
	}

	return p.store.do(ctx, userID, func(u *unit) error {
		return p.deduct(u, amount)
	})
}

// TransferToSection moves income directly into one section without distributing it.
func (p *IncomePool) TransferToSection(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, section models.SectionName, description string) (transaction models.Transaction, err error) {
	if !section.HasBalance() {
		return transaction, validationError("%q is not a section with a balance", section)
	}

	if !amount.IsPositive() {
		return transaction, validationError("the amount must be greater than zero")
	}

	if description == "" {
		description = fmt.Sprintf("Transfer from income to %s", section)
	}

	if err := p.ensure(ctx, userID); err != nil {
		return transaction, err
	}

	err = p.store.do(ctx, userID, func(u *unit) error {
		if err := p.deduct(u, amount); err != nil {
			return err
		}

		transaction, err = p.transactions.record(u, Entry{
			Type:        models.TransactionTypeManual,
			FromSection: models.SectionIncome,
			ToSection:   section,
			Amount:      amount,
			Description: description,
		})
		return err
	})

	return transaction, err
}

// ensure repairs a missing pool row on the first access to a user's pool in
// this process. Concurrent first accesses share one repair, which outlives the
// cancellation of any single caller. Rows lost later are repaired by pool.
func (p *IncomePool) ensure(ctx context.Context, userID uuid.UUID) error {
	if _, ok := p.repaired.Load(userID); ok {
		return nil
	}

	_, err, _ := p.repairs.Do(userID.String(), func() (any, error) {
		return nil, p.store.do(context.WithoutCancel(ctx), userID, repairPool)
	})
	if err != nil {
		return err
	}

	p.repaired.Store(userID, struct{}{})
	return nil
}

// repairPool creates the pool row from the income history if it is missing.
func repairPool(u *unit) error {
	var count int64
	if err := u.tx.Model(&models.IncomePool{}).Where("user_id = ?", u.userID).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	if err := find(u.tx, &models.User{}, "id = ?", u.userID); err != nil {
		return err
	}

	var sum decimal.NullDecimal
	err := u.tx.Model(&models.Income{}).Where("user_id = ?", u.userID).Select("SUM(amount)").Row().Scan(&sum)
	if err != nil {
		return err
	}

	return u.tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.IncomePool{UserID: u.userID, Amount: sum.Decimal}).Error
}

// pool loads the pool row of the unit's user, repairing it if needed.
func (p *IncomePool) pool(u *unit) (models.IncomePool, error) {
	var pool models.IncomePool
	err := find(u.forUpdate(), &pool, "user_id = ?", u.userID)
	if err == nil || !isNotFound(err) {
		return pool, err
	}

	if err := repairPool(u); err != nil {
		return pool, err
	}

	err = find(u.forUpdate(), &pool, "user_id = ?", u.userID)
	return pool, err
}

func (p *IncomePool) increment(u *unit, amount decimal.Decimal) error {
	pool, err := p.pool(u)
	if err != nil {
		return err
	}

	return u.tx.Model(&pool).Update("amount", pool.Amount.Add(amount)).Error
}

func (p *IncomePool) deduct(u *unit, amount decimal.Decimal) error {
	pool, err := p.pool(u)
	if err != nil {
		return err
	}

	if amount.GreaterThan(pool.Amount) {
		return insufficient("income", pool.Amount, amount)
	}

	return u.tx.Model(&pool).Update("amount", pool.Amount.Sub(amount)).Error
}
