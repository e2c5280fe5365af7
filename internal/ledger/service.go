// Package ledger moves money between the sections of a user and keeps
// every balance equal to the signed sum of the recorded transactions.
//
// Every exported operation that writes runs as one atomic unit of work:
// either all of its transactions and balance updates commit, or none do.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/sectionledger/backend/internal/events"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Service bundles all ledger components. They share one store handle.
type Service struct {
	Accounts     *Accounts
	Sections     *Sections
	Transactions *Transactions
	Income       *IncomePool
	Distribution *Distributor
	Goals        *Goals
	Investments  *Investments
	Expenses     *Expenses
	Summaries    *Summaries

	store *store
}

type options struct {
	timeout   time.Duration
	attempts  int
	backoff   time.Duration
	publisher events.Publisher
	locale    language.Tag
}

type Option func(*options)

// WithTimeout bounds every single attempt of a unit of work.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithAttempts sets how often a unit of work is tried when it fails with a retryable error.
func WithAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.attempts = n
		}
	}
}

// WithBackoff sets the base delay between attempts.
func WithBackoff(d time.Duration) Option {
	return func(o *options) {
		o.backoff = d
	}
}

// WithPublisher sets the publisher committed events are sent to.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) {
		if p != nil {
			o.publisher = p
		}
	}
}

// WithLocale sets the locale amounts in messages are formatted for.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// New creates the ledger on top of db.
func New(db *gorm.DB, opts ...Option) *Service {
	o := options{
		timeout:   5 * time.Second,
		attempts:  3,
		backoff:   50 * time.Millisecond,
		publisher: events.Nop{},
		locale:    language.English,
	}

	for _, opt := range opts {
		opt(&o)
	}

	s := &store{
		db:        db,
		timeout:   o.timeout,
		attempts:  o.attempts,
		backoff:   o.backoff,
		publisher: o.publisher,
	}

	sections := &Sections{store: s}
	transactions := &Transactions{store: s, sections: sections}
	sections.transactions = transactions
	income := &IncomePool{store: s, transactions: transactions}
	investments := &Investments{store: s, transactions: transactions}
	income.investments = investments

	return &Service{
		Accounts:     &Accounts{store: s},
		Sections:     sections,
		Transactions: transactions,
		Income:       income,
		Distribution: &Distributor{store: s, transactions: transactions, income: income},
		Goals:        &Goals{store: s, transactions: transactions, locale: o.locale},
		Investments:  investments,
		Expenses:     &Expenses{store: s, transactions: transactions},
		Summaries:    &Summaries{store: s},
		store:        s,
	}
}

// Ping checks that the store can be reached.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.store.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.store.timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	return nil
}
