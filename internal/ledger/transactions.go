package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/events"
	"github.com/sectionledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Entry describes a money movement to record.
type Entry struct {
	Type        models.TransactionType `json:"type" example:"manual"`
	FromSection models.SectionName     `json:"fromSection" example:"savings"`
	ToSection   models.SectionName     `json:"toSection" example:"expenses"`
	Amount      decimal.Decimal        `json:"amount" example:"120"`
	Description string                 `json:"description" example:"Rebalancing"`
}

func (e Entry) validate() error {
	if !e.Type.Valid() {
		return validationError("%q is not a valid transaction type", e.Type)
	}

	if !e.Amount.IsPositive() {
		return validationError("the amount must be greater than zero")
	}

	for _, s := range []models.SectionName{e.FromSection, e.ToSection} {
		if !s.Valid() {
			return validationError("%q is not a valid section", s)
		}
	}

	if e.FromSection == models.SectionNone && e.ToSection == models.SectionNone {
		return validationError("at least one of fromSection and toSection must be set")
	}

	if e.FromSection == e.ToSection {
		return validationError("fromSection and toSection must be different")
	}

	return nil
}

// delta returns the balance changes the entry causes in the sections.
func (e Entry) delta() Delta {
	delta := Delta{}

	if e.FromSection.HasBalance() {
		delta[e.FromSection] = delta[e.FromSection].Sub(e.Amount)
	}

	if e.ToSection.HasBalance() {
		delta[e.ToSection] = delta[e.ToSection].Add(e.Amount)
	}

	return delta
}

// Transactions is the append-only record of all money movements.
type Transactions struct {
	store    *store
	sections *Sections
}

// Record validates the entry, applies it to the balances and persists it.
//
// Entries from or to the income pool are rejected. Income only moves through
// the income pool and the distribution, which keep the pool in step.
func (l *Transactions) Record(ctx context.Context, userID uuid.UUID, entry Entry) (transaction models.Transaction, err error) {
	if entry.FromSection == models.SectionIncome || entry.ToSection == models.SectionIncome {
		return transaction, validationError("income can only be moved by adding, transferring or distributing it")
	}

	err = l.store.do(ctx, userID, func(u *unit) error {
		transaction, err = l.record(u, entry)
		return err
	})

	return transaction, err
}

// record is Record inside an existing unit of work.
func (l *Transactions) record(u *unit, entry Entry) (models.Transaction, error) {
	if err := entry.validate(); err != nil {
		return models.Transaction{}, err
	}

	if delta := entry.delta(); len(delta) > 0 {
		if _, err := l.sections.applyDelta(u, delta); err != nil {
			return models.Transaction{}, err
		}
	}

	var savingsChange decimal.Decimal
	if entry.FromSection == models.SectionSavings {
		savingsChange = entry.Amount.Neg()
	} else if entry.ToSection == models.SectionSavings {
		savingsChange = entry.Amount
	}

	if !savingsChange.IsZero() {
		if err := adjustSavingsBalance(u, savingsChange); err != nil {
			return models.Transaction{}, err
		}
	}

	transaction := models.Transaction{
		UserID:      u.userID,
		Type:        entry.Type,
		FromSection: entry.FromSection,
		ToSection:   entry.ToSection,
		Amount:      entry.Amount,
		Description: entry.Description,
	}

	if err := u.tx.Create(&transaction).Error; err != nil {
		return models.Transaction{}, err
	}

	u.recorded = append(u.recorded, transaction.Type)
	u.emit(events.New(events.KindTransactionRecorded, u.userID, transaction.ID, transaction.Amount, string(transaction.Type)))

	return transaction, nil
}

// adjustSavingsBalance moves the savings balance of the user profile by amount.
func adjustSavingsBalance(u *unit, amount decimal.Decimal) error {
	var user models.User
	if err := find(u.forUpdate(), &user, "id = ?", u.userID); err != nil {
		return err
	}

	return u.tx.Model(&user).Update("savings_balance", user.SavingsBalance.Add(amount)).Error
}

// Get returns a single transaction of the user.
func (l *Transactions) Get(ctx context.Context, userID, id uuid.UUID) (transaction models.Transaction, err error) {
	err = l.store.do(ctx, userID, func(u *unit) error {
		return find(u.tx, &transaction, "id = ? AND user_id = ?", id, userID)
	})

	return transaction, err
}

// UpdateDescription changes the description of a transaction. No other
// field of a transaction can ever change.
func (l *Transactions) UpdateDescription(ctx context.Context, userID, id uuid.UUID, description string) (transaction models.Transaction, err error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return transaction, validationError("the description must not be empty")
	}

	err = l.store.do(ctx, userID, func(u *unit) error {
		if err := find(u.forUpdate(), &transaction, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}

		transaction.Description = description
		return u.tx.Model(&transaction).Update("description", description).Error
	})

	return transaction, err
}

// TransactionFilter selects the transactions to list.
type TransactionFilter struct {
	PageOptions
	Type string `form:"type" json:"type" example:"automatic"`
}

// TransactionPage is a page of transactions. ValidTypes lists all values
// the type filter accepts besides "all".
type TransactionPage struct {
	Page[models.Transaction]
	ValidTypes []models.TransactionType `json:"validTypes"`
}

// List returns the transactions of a user, newest first.
func (l *Transactions) List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) (page TransactionPage, err error) {
	page.ValidTypes = models.TransactionTypes

	t := models.TransactionType(filter.Type)
	if filter.Type != "" && filter.Type != "all" && !t.Valid() {
		return page, validationError("%q is not a valid transaction type", filter.Type)
	}

	err = l.store.do(ctx, userID, func(u *unit) error {
		q := u.tx.Model(&models.Transaction{}).Where("user_id = ?", userID)
		if t.Valid() {
			q = q.Where("type = ?", t)
		}

		page.Page, err = paginate[models.Transaction](q.Order("created_at DESC, id DESC"), filter.PageOptions)
		return err
	})

	return page, err
}
